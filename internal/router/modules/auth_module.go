package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/gadget-store-api/internal/interface/http"
)

// AuthModule wires sign-up, sign-in and identity routes.
// Public: POST /api/auth/signup, POST /api/auth/signin
// Protected: GET /api/auth/me, POST /api/auth/signout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Authn   gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, authn gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Authn: authn}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/signup", m.Handler.Signup)
	g.POST("/signin", m.Handler.Signin)

	auth := g.Group("/")
	auth.Use(m.Authn)
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/signout", m.Handler.Signout)
	}
}
