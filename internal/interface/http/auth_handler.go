package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/application"
	"github.com/oksasatya/gadget-store-api/internal/interface/middleware"
	"github.com/oksasatya/gadget-store-api/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// bcrypt only looks at the first 72 bytes; longer passwords are refused.
type signupRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"max=254"`
	Password string `json:"password" binding:"max=72"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" binding:"max=72"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "invalid payload", err)
		return
	}
	res, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "signup successful", nil)
}

// Signin POST /api/auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, "invalid payload", err)
		return
	}
	res, err := h.Svc.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "signin successful", nil)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// Signout POST /api/auth/signout
func (h *AuthHandler) Signout(c *gin.Context) {
	revoked, err := h.Svc.Signout(c.Request.Context(), middleware.ClaimsFrom(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"signed_out": true, "revoked": revoked}, "signed out", nil)
}
