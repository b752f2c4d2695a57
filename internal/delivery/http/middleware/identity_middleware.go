package middleware

import (
	"net/http"
	"strings"

	"alumni-portal-backend/internal/delivery/http/response"
	"alumni-portal-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Headers set by the portal's auth gateway after token verification. Token
// issuance and verification live outside this service; we trust the gateway's
// verdict unconditionally.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// IdentityMiddleware extracts the verified {user, role} pair from the gateway
// headers and stores it in the request context.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(HeaderUserID)
		role := strings.ToUpper(strings.TrimSpace(c.GetHeader(HeaderUserRole)))

		if rawID == "" || role == "" {
			response.Error(c, http.StatusUnauthorized, "Missing identity headers", nil)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid user id", nil)
			c.Abort()
			return
		}

		if role != domain.RoleAlumni && role != domain.RoleStudent {
			response.Error(c, http.StatusUnauthorized, "Unknown role", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID.String())
		c.Set(string(domain.KeyUserRole), role)

		c.Next()
	}
}

// IdentityFromContext rebuilds the Identity stored by IdentityMiddleware.
// The bool result is false when the middleware did not run.
func IdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	rawID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if rawID == "" || role == "" {
		return domain.Identity{}, false
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return domain.Identity{}, false
	}
	return domain.Identity{UserID: userID, Role: role}, true
}
