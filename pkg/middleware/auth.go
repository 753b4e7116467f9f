package middleware

import (
	"bitwise74/job-portal/internal/model"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/security"
	"errors"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireAuth only lets requests through that carry a valid bearer token.
// The verified identity is stored as userID and role on the gin context and
// on the request context.
func RequireAuth(tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, raw, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		raw = strings.TrimSpace(raw)

		if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
			apierr.Respond(c, apierr.Unauthorized("Missing or invalid authorization header"))
			return
		}

		id, err := tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				apierr.Respond(c, apierr.Unauthorized("Token has expired"))
				return
			}

			apierr.Respond(c, apierr.Unauthorized("Invalid token"))
			return
		}

		c.Set("userID", id.UserID)
		c.Set("role", id.Role)
		c.Request = c.Request.WithContext(security.WithIdentity(c.Request.Context(), *id))

		c.Next()
	}
}

// RequireRole has to run after RequireAuth
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok {
			apierr.Respond(c, apierr.Unauthorized("Missing or invalid authorization header"))
			return
		}

		if !slices.Contains(roles, id.Role) {
			apierr.Respond(c, apierr.Forbidden("Insufficient permissions"))
			return
		}

		c.Next()
	}
}

// Identity returns whoever RequireAuth let through
func Identity(c *gin.Context) (security.Identity, bool) {
	return security.IdentityFrom(c.Request.Context())
}
