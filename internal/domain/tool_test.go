package domain

import "testing"

func TestTool_BeforeSave_BuildsSearchText(t *testing.T) {
	tool := &Tool{
		Name:        "AdWriter",
		Description: "Generates ad copy",
		SubCategory: "Copywriting",
		Tags:        []string{"marketing", "Ads"},
	}

	if err := tool.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}

	want := "adwriter generates ad copy copywriting marketing ads"
	if tool.SearchText != want {
		t.Errorf("SearchText = %q; want %q", tool.SearchText, want)
	}
}

func TestTool_BeforeSave_EmptyFields(t *testing.T) {
	tool := &Tool{Name: "Solo"}

	if err := tool.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if tool.SearchText != "solo  " {
		t.Errorf("SearchText = %q", tool.SearchText)
	}
}

func TestIdentity_Anonymous(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{"zero identity", Identity{}, true},
		{"registered user", Identity{UserID: 1}, false},
		{"guest", Identity{GuestID: "guest:abc", Guest: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Anonymous(); got != tt.want {
				t.Errorf("Anonymous() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestIdentity_CanRate(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{"registered user", Identity{UserID: 1}, true},
		{"guest", Identity{GuestID: "guest:abc", Guest: true}, false},
		{"anonymous", Identity{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.CanRate(); got != tt.want {
				t.Errorf("CanRate() = %v; want %v", got, tt.want)
			}
		})
	}
}
