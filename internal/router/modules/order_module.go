package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/gadget-store-api/internal/interface/http"
	"github.com/oksasatya/gadget-store-api/internal/interface/middleware"
)

// OrderModule: checkout is public, order administration is admin-only.
type OrderModule struct {
	Handler *handlers.OrderHandler
	Authn   gin.HandlerFunc
}

func NewOrderModule(h *handlers.OrderHandler, authn gin.HandlerFunc) *OrderModule {
	return &OrderModule{Handler: h, Authn: authn}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/orders")
	g.POST("", m.Handler.Place)

	admin := g.Group("")
	admin.Use(m.Authn, middleware.RequireAdmin())
	{
		admin.GET("", m.Handler.List)
		admin.PUT("/:id/status", m.Handler.UpdateStatus)
	}
}
