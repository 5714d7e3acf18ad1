package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "employee", "read"),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			rbac.Authorize(rbacService, "employee", "read"),
			handler.GetOptions,
		)

		employees.GET("/by-id-number/:idNumber",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "employee", "read"),
			handler.GetByIDNumber,
		)

		employees.GET("/:employeeNumber",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "employee", "read"),
			handler.GetByEmployeeNumber,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "employee", "create"),
			handler.Create,
		)

		employees.PUT("/:employeeNumber",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "employee", "update"),
			handler.Update,
		)

		employees.DELETE("/:employeeNumber",
			middleware.RateLimitByUser(0.05, 1),
			rbac.Authorize(rbacService, "employee", "delete"),
			handler.Delete,
		)
	}
}
