package domain

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Pricing tiers for a tool.
const (
	PricingFree     = "free"
	PricingPaid     = "paid"
	PricingFreemium = "freemium"
)

// FilterAll is the sentinel value meaning "no filter" for the category and
// pricing dimensions.
const FilterAll = "all"

// Sort fields accepted by the tool listing.
const (
	SortCreatedAt = "created_at"
	SortName      = "name"
	SortCategory  = "category"
	SortRating    = "rating"
)

// Sort directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Tool represents a catalog entry.
type Tool struct {
	BaseModel
	Name           string   `gorm:"size:255;not null" json:"name"`
	Description    string   `gorm:"type:text" json:"description"`
	Link           string   `gorm:"size:2048;not null" json:"link"`
	Category       string   `gorm:"size:100;index;not null" json:"category"`
	SubCategory    string   `gorm:"size:100" json:"sub_category"`
	PriceStructure string   `gorm:"size:20;index" json:"price_structure"`
	PriceDetails   string   `gorm:"size:500" json:"price_details"`
	Tags           []string `gorm:"serializer:json" json:"tags"`
	Logo           string   `gorm:"size:2048" json:"logo"`
	Screenshots    []string `gorm:"serializer:json" json:"screenshots"`
	Comments       string   `gorm:"type:text" json:"comments"`
	IsFavourite    bool     `gorm:"index" json:"is_favourite"`
	SearchText     string   `gorm:"type:text" json:"-"`
	CreatedBy      uint     `gorm:"index" json:"created_by"`
	UpdatedBy      uint     `json:"updated_by"`
}

// BeforeSave maintains the precomputed search index field. All searchable
// text is folded to lower case so term matching is case-insensitive.
func (t *Tool) BeforeSave(*gorm.DB) error {
	parts := []string{t.Name, t.Description, t.SubCategory}
	parts = append(parts, t.Tags...)
	t.SearchText = strings.ToLower(strings.Join(parts, " "))
	return nil
}

// ToolRow is a tool row with its rating aggregates joined in-query.
// Aggregates default to zero when no ratings exist.
type ToolRow struct {
	Tool          `gorm:"embedded"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// ToolView is a ToolRow enriched with resolved category display metadata.
type ToolView struct {
	ToolRow
	CategoryDisplayName string `json:"category_display_name"`
	CategoryIcon        string `json:"category_icon"`
}

// ToolFilter is the transient filter state a listing query is composed from.
// Zero values (and the FilterAll sentinel) mean "criterion not applied".
type ToolFilter struct {
	Category      string
	Pricing       string
	Search        string
	FavoritesOnly bool
	SortField     string
	SortOrder     string
	Window        PageWindow
}

// ToolInput carries the writable fields for creating or updating a tool.
type ToolInput struct {
	Name           string
	Description    string
	Link           string
	Category       string
	SubCategory    string
	PriceStructure string
	PriceDetails   string
	Tags           []string
	Logo           string
	Screenshots    []string
	Comments       string
}

// Suggestion is a lightweight type-ahead projection of a tool.
type Suggestion struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ToolRepository defines the data access interface for tools.
type ToolRepository interface {
	Create(ctx context.Context, tool *Tool) error
	GetByID(ctx context.Context, id uint) (*ToolRow, error)
	List(ctx context.Context, filter ToolFilter) (*PageResult[ToolRow], error)
	Update(ctx context.Context, tool *Tool) error
	Delete(ctx context.Context, id uint) error
	SetFavourite(ctx context.Context, id uint, favourite bool) (*ToolRow, error)
	Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error)
	CountByCategory(ctx context.Context, ownerID uint) (map[string]int, error)
}

// ToolService defines the business logic interface for tools.
type ToolService interface {
	List(ctx context.Context, filter ToolFilter) (*PageResult[ToolView], error)
	Get(ctx context.Context, id uint) (*ToolView, error)
	Create(ctx context.Context, actor Identity, input ToolInput) (*ToolView, error)
	Update(ctx context.Context, actor Identity, id uint, input ToolInput) (*ToolView, error)
	Delete(ctx context.Context, id uint) error
	SetFavourite(ctx context.Context, id uint, favourite bool) (*ToolView, error)
	Suggest(ctx context.Context, query string) ([]Suggestion, error)
	Export(ctx context.Context, filter ToolFilter) ([][]string, error)
}
