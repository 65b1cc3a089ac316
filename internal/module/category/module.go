package category

import "github.com/gin-gonic/gin"

// CategoryModule implements the app.Module interface for the category domain.
type CategoryModule struct {
	handler *CategoryHandler
}

// NewModule creates a new CategoryModule with the given handler.
// Panics if h is nil.
func NewModule(h *CategoryHandler) *CategoryModule {
	if h == nil {
		panic("category.NewModule: handler must not be nil")
	}
	return &CategoryModule{handler: h}
}

// RegisterRoutes registers category API routes.
func (m *CategoryModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/categories", m.handler.List)
	api.GET("/categories/counts", m.handler.Counts)
}
