package tool

import (
	"github.com/gin-gonic/gin"

	"github.com/vira-library/catalog/internal/middleware"
)

// ToolModule implements the app.Module interface for the tool domain.
type ToolModule struct {
	handler *ToolHandler
}

// NewModule creates a new ToolModule with the given handler.
// Panics if h is nil.
func NewModule(h *ToolHandler) *ToolModule {
	if h == nil {
		panic("tool.NewModule: handler must not be nil")
	}
	return &ToolModule{handler: h}
}

// RegisterRoutes registers tool API routes. Reads are open; the favorite
// toggle needs any identity (guests included); create/update/delete need a
// registered user.
func (m *ToolModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/tools", m.handler.List)
	api.GET("/tools/suggestions", m.handler.Suggestions)
	api.GET("/tools/export", m.handler.Export)
	api.GET("/tools/:id", m.handler.Get)

	api.PATCH("/tools/:id/favorite", middleware.RequireIdentity(), m.handler.Favorite)

	api.POST("/tools", middleware.RequireUser(), m.handler.Create)
	api.PUT("/tools/:id", middleware.RequireUser(), m.handler.Update)
	api.DELETE("/tools/:id", middleware.RequireUser(), m.handler.Delete)
}
