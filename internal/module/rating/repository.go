package rating

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vira-library/catalog/internal/domain"
)

// ratingRepository implements domain.RatingRepository using GORM.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new RatingRepository backed by the given GORM database.
func NewRatingRepository(db *gorm.DB) domain.RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating, or overwrites score and review when the
// (tool, user) pair already has one. The unique index on that pair is the
// conflict target, giving last-write-wins semantics.
func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tool_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return mapError(err)
	}
	return nil
}

// GetByToolAndUser retrieves the single rating for a (tool, user) pair.
func (r *ratingRepository) GetByToolAndUser(ctx context.Context, toolID, userID uint) (*domain.Rating, error) {
	var rating domain.Rating
	err := r.db.WithContext(ctx).
		Where("tool_id = ? AND user_id = ?", toolID, userID).
		First(&rating).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &rating, nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}
