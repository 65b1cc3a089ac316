package domain

import "context"

// DefaultCategoryIcon is the placeholder icon used when a tool's category
// has no matching Category row.
const DefaultCategoryIcon = "starFull"

// Category is a named grouping with display metadata. Read-only from the
// catalog's perspective; tools reference it by category-name match.
type Category struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"size:255;not null" json:"display_name"`
	IconName    string `gorm:"size:100" json:"icon_name"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `gorm:"index" json:"sort_order"`
	IsActive    bool   `gorm:"index" json:"is_active"`
}

// CategoryRepository defines the data access interface for categories.
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]Category, error)
}

// CategoryService defines the business logic interface for categories.
//
// Counts follows an explicit returns-empty-on-failure policy: counts are
// decorative filter badges, so any failure degrades to an empty map instead
// of propagating an error.
type CategoryService interface {
	List(ctx context.Context) ([]Category, error)
	Counts(ctx context.Context, viewer Identity) map[string]int
}
