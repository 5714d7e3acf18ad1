package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Mthinuay/SingularXpress/internal/employee"
	"github.com/Mthinuay/SingularXpress/internal/messaging/kafka"
	"github.com/Mthinuay/SingularXpress/internal/rbac"
	"github.com/Mthinuay/SingularXpress/internal/shared/counter"
	"github.com/Mthinuay/SingularXpress/internal/shared/filestore"
	"github.com/Mthinuay/SingularXpress/internal/taxtable"
	"github.com/Mthinuay/SingularXpress/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	uploadRoot string,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	taxTableRepo := taxtable.NewRepository(db)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	fileStore := filestore.NewLocalStore(uploadRoot)
	mailer := user.NewLogMailer(logger)

	userService := user.NewService(userRepo, mailer, logger)
	employeeService := employee.NewService(employeeRepo, counterRepo, outboxRepo, rdb, logger)
	taxTableService := taxtable.NewService(db, taxTableRepo, taxtable.NewParser(logger), fileStore, outboxRepo, rdb, logger)

	// --- Handlers ---
	userHandler := user.NewHandler(userService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	taxTableHandler := taxtable.NewHandler(taxTableService, logger)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler, rbacService, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		taxtable.RegisterRoutes(api, taxTableHandler, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
