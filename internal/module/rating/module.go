package rating

import (
	"github.com/gin-gonic/gin"

	"github.com/vira-library/catalog/internal/middleware"
)

// RatingModule implements the app.Module interface for the rating domain.
type RatingModule struct {
	handler *RatingHandler
}

// NewModule creates a new RatingModule with the given handler.
// Panics if h is nil.
func NewModule(h *RatingHandler) *RatingModule {
	if h == nil {
		panic("rating.NewModule: handler must not be nil")
	}
	return &RatingModule{handler: h}
}

// RegisterRoutes registers rating API routes. Both require a registered
// (non-guest) identity.
func (m *RatingModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/tools/:id/rating", middleware.RequireUser(), m.handler.Rate)
	api.GET("/tools/:id/rating", middleware.RequireUser(), m.handler.Mine)
}
