package taxtable

import (
	"github.com/Mthinuay/SingularXpress/internal/middleware"
	"github.com/Mthinuay/SingularXpress/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	taxTables := r.Group("/tax-tables")
	taxTables.Use(middleware.AuthMiddleware())
	taxTables.Use(middleware.ContextLogger(logger))
	{
		taxTables.POST("",
			middleware.RateLimitByUser(0.1, 1),
			rbac.Authorize(rbacService, "taxtable", "upload"),
			handler.Upload,
		)

		taxTables.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "taxtable", "read"),
			handler.GetHistory,
		)

		taxTables.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "taxtable", "read"),
			handler.GetByID,
		)

		taxTables.GET("/:id/entries",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "taxtable", "read"),
			handler.GetEntries,
		)

		taxTables.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "taxtable", "manage"),
			handler.Update,
		)

		taxTables.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			rbac.Authorize(rbacService, "taxtable", "manage"),
			handler.Delete,
		)
	}
}
