package category

import (
	"github.com/gin-gonic/gin"

	"github.com/vira-library/catalog/internal/domain"
	"github.com/vira-library/catalog/internal/middleware"
	"github.com/vira-library/catalog/internal/pkg"
)

// CategoryHandler handles REST API requests for categories.
type CategoryHandler struct {
	svc domain.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler with the given service.
func NewCategoryHandler(svc domain.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.svc.List(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, cats)
}

// Counts handles GET /api/v1/categories/counts. Always 200; failures
// degrade to an empty map inside the service.
func (h *CategoryHandler) Counts(c *gin.Context) {
	counts := h.svc.Counts(c.Request.Context(), middleware.GetIdentity(c))
	pkg.Success(c, counts)
}
