package middleware

import (
	"github.com/Mthinuay/SingularXpress/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger carrying the request ID
// and, when authenticated, the user ID. Handlers and services pull it back
// out via contextutil.GetLogger.
func ContextLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := base

		if requestID := contextutil.GetRequestID(c.Request.Context()); requestID != "" {
			logger = logger.With(zap.String("request_id", requestID))
		}

		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(string); ok && id != "" {
				logger = logger.With(zap.String("user_id", id))
				ctx := contextutil.WithUserID(c.Request.Context(), id)
				c.Request = c.Request.WithContext(ctx)
			}
		}

		ctx := contextutil.WithLogger(c.Request.Context(), logger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
