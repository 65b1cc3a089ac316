package rating

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vira-library/catalog/internal/domain"
	"github.com/vira-library/catalog/internal/middleware"
	"github.com/vira-library/catalog/internal/pkg"
)

// RateRequest represents the input for submitting a rating.
// min=1 rejects a zero score before the service is reached.
type RateRequest struct {
	Rating int    `json:"rating" form:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review" form:"review" binding:"omitempty,max=2000"`
}

// RatingHandler handles REST API requests for tool ratings.
type RatingHandler struct {
	svc domain.RatingService
}

// NewRatingHandler creates a new RatingHandler with the given service.
func NewRatingHandler(svc domain.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

// Rate handles POST /api/v1/tools/:id/rating.
func (h *RatingHandler) Rate(c *gin.Context) {
	toolID, err := parseToolID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req RateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	rating, err := h.svc.Rate(c.Request.Context(), middleware.GetIdentity(c), toolID, req.Rating, req.Review)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rating)
}

// Mine handles GET /api/v1/tools/:id/rating, returning the caller's rating
// for the tool, or null when none exists.
func (h *RatingHandler) Mine(c *gin.Context) {
	toolID, err := parseToolID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	rating, err := h.svc.UserRating(c.Request.Context(), middleware.GetIdentity(c), toolID)
	if err != nil {
		if domain.IsNotFound(err) {
			pkg.Success(c, nil)
			return
		}
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, rating)
}

func parseToolID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid tool id")
	}
	return uint(id), nil
}
