package domain

import "context"

// Rating is a user's score and optional review for a tool. At most one
// rating exists per (tool, user) pair; writes are upserts with
// last-write-wins semantics.
type Rating struct {
	BaseModel
	ToolID uint   `gorm:"uniqueIndex:idx_ratings_tool_user;not null" json:"tool_id"`
	UserID uint   `gorm:"uniqueIndex:idx_ratings_tool_user;not null" json:"user_id"`
	Rating int    `gorm:"not null" json:"rating"`
	Review string `gorm:"type:text" json:"review"`
}

// RatingRepository defines the data access interface for ratings.
type RatingRepository interface {
	Upsert(ctx context.Context, rating *Rating) error
	GetByToolAndUser(ctx context.Context, toolID, userID uint) (*Rating, error)
}

// RatingService defines the business logic interface for ratings.
type RatingService interface {
	Rate(ctx context.Context, actor Identity, toolID uint, score int, review string) (*Rating, error)
	UserRating(ctx context.Context, actor Identity, toolID uint) (*Rating, error)
}
