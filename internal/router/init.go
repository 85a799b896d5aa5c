package router

import (
	"github.com/oksasatya/gadget-store-api/internal/container"
	handlers "github.com/oksasatya/gadget-store-api/internal/interface/http"
	"github.com/oksasatya/gadget-store-api/internal/interface/middleware"
	"github.com/oksasatya/gadget-store-api/internal/router/modules"
)

// InitModules builds handlers from the container and registers every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	authn := middleware.Authenticate(c.JWT, c.Denylist, c.Logger)

	r.AddRoot(modules.NewSystemModule())
	if c.Config.MetricsEnabled {
		r.AddRoot(modules.NewMetricsModule())
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.AuthService(), c.Logger), authn))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(c.CatalogService(), c.Logger, c.Config.UploadMaxBytes), authn))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(c.OrderService(), c.Logger), authn))
}
