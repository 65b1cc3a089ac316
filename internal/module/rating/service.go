package rating

import (
	"context"
	"strings"

	"github.com/vira-library/catalog/internal/domain"
)

// ratingService implements domain.RatingService.
type ratingService struct {
	repo  domain.RatingRepository
	tools domain.ToolRepository
}

// NewRatingService creates a new RatingService with the given repositories.
func NewRatingService(repo domain.RatingRepository, tools domain.ToolRepository) domain.RatingService {
	return &ratingService{repo: repo, tools: tools}
}

// Rate upserts the actor's rating for a tool. A registered identity is
// required; a score outside 1-5 (zero included) is rejected before any
// store access. Aggregate statistics are recomputed on the next list read,
// never incrementally here.
func (s *ratingService) Rate(ctx context.Context, actor domain.Identity, toolID uint, score int, review string) (*domain.Rating, error) {
	if !actor.CanRate() {
		return nil, domain.ErrUnauthorized
	}
	if score < 1 || score > 5 {
		return nil, domain.NewAppError(domain.CodeValidation, "rating must be between 1 and 5", nil)
	}

	if _, err := s.tools.GetByID(ctx, toolID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		ToolID: toolID,
		UserID: actor.UserID,
		Rating: score,
		Review: strings.TrimSpace(review),
	}

	if err := s.repo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored row, including the original
	// creation time when this was an overwrite.
	return s.repo.GetByToolAndUser(ctx, toolID, actor.UserID)
}

// UserRating returns the actor's own rating for a tool, or ErrNotFound.
func (s *ratingService) UserRating(ctx context.Context, actor domain.Identity, toolID uint) (*domain.Rating, error) {
	if !actor.CanRate() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.GetByToolAndUser(ctx, toolID, actor.UserID)
}
