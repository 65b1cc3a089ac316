package tool

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vira-library/catalog/internal/domain"
	"github.com/vira-library/catalog/internal/middleware"
	"github.com/vira-library/catalog/internal/pkg"
)

// ToolHandler handles REST API requests for the tool resource.
type ToolHandler struct {
	svc       domain.ToolService
	suggester *Suggester
}

// NewToolHandler creates a new ToolHandler with the given service.
func NewToolHandler(svc domain.ToolService) *ToolHandler {
	return &ToolHandler{svc: svc, suggester: NewSuggester(svc)}
}

// List handles GET /api/v1/tools.
func (h *ToolHandler) List(c *gin.Context) {
	var q ListToolsQuery
	if !pkg.BindAndValidate(c, &q) {
		return
	}

	result, err := h.svc.List(c.Request.Context(), q.Filter())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Get handles GET /api/v1/tools/:id.
func (h *ToolHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	view, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, view)
}

// Create handles POST /api/v1/tools.
func (h *ToolHandler) Create(c *gin.Context) {
	var req ToolRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	view, err := h.svc.Create(c.Request.Context(), middleware.GetIdentity(c), req.Input())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "success",
		Data:    view,
	})
}

// Update handles PUT /api/v1/tools/:id.
func (h *ToolHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req ToolRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	view, err := h.svc.Update(c.Request.Context(), middleware.GetIdentity(c), id, req.Input())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, view)
}

// Delete handles DELETE /api/v1/tools/:id.
func (h *ToolHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Favorite handles PATCH /api/v1/tools/:id/favorite.
func (h *ToolHandler) Favorite(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req FavoriteRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	view, err := h.svc.SetFavourite(c.Request.Context(), id, *req.Favourite)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, view)
}

// Suggestions handles GET /api/v1/tools/suggestions.
// Always responds 200 with a (possibly empty) list: suggestions never
// surface errors.
func (h *ToolHandler) Suggestions(c *gin.Context) {
	suggestions := h.suggester.Refresh(c.Request.Context(), c.Query("q"))
	pkg.Success(c, suggestions)
}

// Export handles GET /api/v1/tools/export. The full filtered set is
// serialized; an empty result produces a header-only file.
func (h *ToolHandler) Export(c *gin.Context) {
	var q ListToolsQuery
	if !pkg.BindAndValidate(c, &q) {
		return
	}

	records, err := h.svc.Export(c.Request.Context(), q.Filter())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename(time.Now())+`"`)
	c.Status(http.StatusOK)

	if err := WriteCSV(c.Writer, records); err != nil {
		// Headers are already out; nothing useful left to send.
		_ = c.Error(err)
	}
}

// parseID extracts and validates the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
