package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
	"github.com/oksasatya/gadget-store-api/pkg/response"
)

// Gin context keys set by Authenticate.
const (
	CtxClaims    = "claims"
	CtxUserID    = "userID"
	CtxUserRole  = "userRole"
	CtxUserEmail = "userEmail"
)

// Authenticate validates the bearer token and, when a denylist is given,
// rejects revoked tokens. Denylist lookups that fail are logged and the
// token is accepted.
func Authenticate(jwt *helpers.JWTManager, denylist *helpers.TokenDenylist, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			response.Error[any](c, http.StatusUnauthorized, "Authentication token is required.", nil)
			return
		}
		token := bearerToken(header)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "Invalid or expired token.", nil)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "Invalid or expired token.", nil)
			return
		}

		if denylist != nil && claims.ID != "" {
			revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil && logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("token denylist lookup failed")
			}
			if revoked {
				response.Error[any](c, http.StatusUnauthorized, "Invalid or expired token.", nil)
				return
			}
		}

		c.Set(CtxClaims, claims)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, entity.ParseRole(claims.Role))
		c.Set(CtxUserEmail, claims.Email)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(CtxUserRole)
		if r, ok := role.(entity.Role); !ok || r != entity.RoleAdmin {
			response.Error[any](c, http.StatusForbidden, "Only admin users can perform this action.", nil)
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Authenticate.
func ClaimsFrom(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
