package rbac

import (
	"github.com/Mthinuay/SingularXpress/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", handler.Enforce)

		group.GET("/roles", Authorize(service, "role", "read"), handler.ListRoles)
		group.GET("/roles/:id", Authorize(service, "role", "read"), handler.GetRole)
		group.POST("/roles", Authorize(service, "role", "manage"), handler.CreateRole)
		group.PUT("/roles/:id", Authorize(service, "role", "manage"), handler.UpdateRole)
		group.DELETE("/roles/:id", Authorize(service, "role", "manage"), handler.DeleteRole)

		group.GET("/permissions", Authorize(service, "role", "manage"), handler.ListPermissions)
	}
}
