package pkg

import (
	"slices"

	"gorm.io/gorm"

	"github.com/vira-library/catalog/internal/domain"
)

// defaultRowCap bounds unwindowed queries, mirroring the default row cap a
// hosted tabular backend applies when no range is requested.
const defaultRowCap = 1000

// Window returns a GORM scope that applies LIMIT and OFFSET for the given
// page window. An empty window returns all rows bounded by defaultRowCap.
func Window(w domain.PageWindow) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !w.Windowed() {
			return db.Limit(defaultRowCap)
		}
		offset := (w.Page - 1) * w.Limit
		return db.Offset(offset).Limit(w.Limit)
	}
}

// Order returns a GORM scope that applies ORDER BY for the given column and
// direction. Columns not present in the allowed list, and directions other
// than asc/desc, fall back to the provided default clause. Column names are
// restricted to an allowlist, never interpolated from raw input.
func Order(column, direction string, allowed []string, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if direction != domain.OrderAsc && direction != domain.OrderDesc {
			return db.Order(fallback)
		}
		if !slices.Contains(allowed, column) {
			return db.Order(fallback)
		}
		return db.Order(column + " " + direction)
	}
}
