package user

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
	auth := r.Group("/auth")
	auth.Use(middleware.ContextLogger(logger))
	{
		// Endpoint publik, dibatasi ketat per IP.
		auth.POST("/login", middleware.RateLimitByUser(1, 5), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.POST("/forgot-password", middleware.RateLimitByUser(0.2, 2), handler.ForgotPassword)
		auth.POST("/verify-otp", middleware.RateLimitByUser(0.5, 3), handler.VerifyOTP)
		auth.POST("/update-password", middleware.RateLimitByUser(0.2, 2), handler.UpdatePassword)
	}

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "user", "read"),
			handler.GetAll,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			rbac.Authorize(rbacService, "user", "read"),
			handler.GetByID,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "user", "manage"),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			rbac.Authorize(rbacService, "user", "manage"),
			handler.Update,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			rbac.Authorize(rbacService, "user", "manage"),
			handler.Delete,
		)
	}
}
