package domain

import (
	"math"
	"time"
)

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageWindow holds an optional pagination window. A zero value means
// "return all matching rows", bounded by the repository's default cap.
type PageWindow struct {
	Page  int
	Limit int
}

// Windowed reports whether an explicit page/limit pair was requested.
func (w PageWindow) Windowed() bool {
	return w.Page > 0 && w.Limit > 0
}

// PageResult is a generic container for paginated query results.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResult creates a PageResult with computed TotalPages. A zero window
// produces a single page holding all items.
func NewPageResult[T any](items []T, total int64, w PageWindow) *PageResult[T] {
	if items == nil {
		items = []T{}
	}

	if !w.Windowed() {
		return &PageResult[T]{Items: items, Total: total, Page: 1, PageSize: len(items), TotalPages: 1}
	}

	totalPages := int(math.Ceil(float64(total) / float64(w.Limit)))
	return &PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       w.Page,
		PageSize:   w.Limit,
		TotalPages: totalPages,
	}
}
