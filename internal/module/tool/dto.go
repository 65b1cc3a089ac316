package tool

import "github.com/vira-library/catalog/internal/domain"

// ListToolsQuery represents the filter state accepted by the listing and
// export endpoints.
type ListToolsQuery struct {
	Category      string `form:"category"`
	Pricing       string `form:"pricing" binding:"omitempty,oneof=all free paid freemium"`
	Search        string `form:"search"`
	FavoritesOnly bool   `form:"favorites_only"`
	Sort          string `form:"sort" binding:"omitempty,oneof=created_at name category rating"`
	Order         string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Filter converts the query parameters into the domain filter state.
func (q ListToolsQuery) Filter() domain.ToolFilter {
	return domain.ToolFilter{
		Category:      q.Category,
		Pricing:       q.Pricing,
		Search:        q.Search,
		FavoritesOnly: q.FavoritesOnly,
		SortField:     q.Sort,
		SortOrder:     q.Order,
		Window:        domain.PageWindow{Page: q.Page, Limit: q.Limit},
	}
}

// ToolRequest represents the input for creating or updating a tool.
type ToolRequest struct {
	Name           string   `json:"name" form:"name" binding:"required,max=255"`
	Description    string   `json:"description" form:"description"`
	Link           string   `json:"link" form:"link" binding:"required,url"`
	Category       string   `json:"category" form:"category" binding:"required,max=100"`
	SubCategory    string   `json:"sub_category" form:"sub_category" binding:"omitempty,max=100"`
	PriceStructure string   `json:"price_structure" form:"price_structure" binding:"omitempty,oneof=free paid freemium"`
	PriceDetails   string   `json:"price_details" form:"price_details" binding:"omitempty,max=500"`
	Tags           []string `json:"tags" form:"tags"`
	Logo           string   `json:"logo" form:"logo" binding:"omitempty,url"`
	Screenshots    []string `json:"screenshots" form:"screenshots" binding:"omitempty,dive,url"`
	Comments       string   `json:"comments" form:"comments"`
}

// Input converts the request into the domain input value.
func (r ToolRequest) Input() domain.ToolInput {
	return domain.ToolInput{
		Name:           r.Name,
		Description:    r.Description,
		Link:           r.Link,
		Category:       r.Category,
		SubCategory:    r.SubCategory,
		PriceStructure: r.PriceStructure,
		PriceDetails:   r.PriceDetails,
		Tags:           r.Tags,
		Logo:           r.Logo,
		Screenshots:    r.Screenshots,
		Comments:       r.Comments,
	}
}

// FavoriteRequest represents the input for setting the favorite flag.
// A pointer distinguishes an explicit false from a missing field.
type FavoriteRequest struct {
	Favourite *bool `json:"favourite" binding:"required"`
}
