package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/gadget-store-api/internal/interface/http"
	"github.com/oksasatya/gadget-store-api/internal/interface/middleware"
)

// CatalogModule serves the product catalog under /api/apps. Reads are
// public; writes require an admin token.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
	Authn   gin.HandlerFunc
}

func NewCatalogModule(h *handlers.CatalogHandler, authn gin.HandlerFunc) *CatalogModule {
	return &CatalogModule{Handler: h, Authn: authn}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/apps")
	g.GET("", m.Handler.List)
	g.GET("/search", m.Handler.Search)

	admin := g.Group("")
	admin.Use(m.Authn, middleware.RequireAdmin())
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
