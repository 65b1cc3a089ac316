package category

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vira-library/catalog/internal/domain"
)

// categoryRepository implements domain.CategoryRepository using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository backed by the given GORM database.
func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

// ListActive returns active categories in sort order.
func (r *categoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&cats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []domain.Category{}, nil
		}
		return nil, domain.NewAppError(domain.CodeInternal, "database error", err)
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	return cats, nil
}
