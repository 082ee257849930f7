package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/api/response"
	"github.com/propside/portal-go/internal/permission"
	"github.com/propside/portal-go/pkg/types"
)

// RequirePermission gates a route on the static role/action table. The
// services check again before mutating; this keeps unauthorized requests from
// reaching them at all.
func RequirePermission(action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet("claims").(*types.Claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}

		if !permission.Allowed(claims.Role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Forbidden"})
			return
		}

		c.Next()
	}
}
