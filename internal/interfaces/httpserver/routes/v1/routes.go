package v1

import (
	"github.com/gin-gonic/gin"

	"atlas-cms/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	files := group.Group("/files")
	files.POST("", r.handlers.Files.Create)
	files.POST("/batch", r.handlers.Files.CreateBatch)
	files.GET("", r.handlers.Files.List)
	files.GET("/dropdown", r.handlers.Files.Dropdown)
	files.GET("/:id", r.handlers.Files.Get)
	files.PUT("/:id", r.handlers.Files.Update)
	files.DELETE("/:id", r.handlers.Files.Delete)
	files.DELETE("", r.handlers.Files.DeleteMany)

	areas := group.Group("/areas")
	areas.POST("", r.handlers.Areas.Create)
	areas.GET("", r.handlers.Areas.List)
	areas.GET("/dropdown", r.handlers.Areas.Dropdown)
	areas.GET("/:id", r.handlers.Areas.Get)
	areas.PUT("/:id", r.handlers.Areas.Update)
	areas.DELETE("/:id", r.handlers.Areas.Delete)

	group.GET("/languages", r.handlers.Languages.List)
}
