package category

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/vira-library/catalog/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Category{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestListActive_FiltersAndOrders(t *testing.T) {
	db := setupTestDB(t)
	cats := []domain.Category{
		{Name: "video", DisplayName: "Video", SortOrder: 3, IsActive: true},
		{Name: "legacy", DisplayName: "Legacy", SortOrder: 1, IsActive: false},
		{Name: "writing", DisplayName: "Writing", SortOrder: 1, IsActive: true},
		{Name: "design", DisplayName: "Design", SortOrder: 2, IsActive: true},
	}
	for i := range cats {
		if err := db.Create(&cats[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	repo := NewCategoryRepository(db)
	got, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}

	want := []string{"writing", "design", "video"}
	if len(got) != len(want) {
		t.Fatalf("len=%d; want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestListActive_EmptyTable(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t))

	got, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if got == nil {
		t.Error("got nil; want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len=%d; want 0", len(got))
	}
}
