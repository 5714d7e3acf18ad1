package rbac

import (
	"net/http"

	"github.com/Mthinuay/SingularXpress/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on a resource/action pair. The subject is the
// user ID set by the auth middleware.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("user_id")
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(EnforceRequest{
			UserID:   userID.(string),
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to evaluate permission", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
