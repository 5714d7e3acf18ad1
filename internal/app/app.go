package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mthinuay/SingularXpress/internal/middleware"
	"github.com/Mthinuay/SingularXpress/internal/shared/connection"
)

const defaultUploadRoot = "wwwroot"

// BuildApp menyiapkan infrastruktur (DB, Redis) dan mendaftarkan seluruh rute.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID())
	router.Use(cors.New(corsConfig()))

	uploadRoot := os.Getenv("UPLOAD_DIR")
	if uploadRoot == "" {
		uploadRoot = defaultUploadRoot
	}
	// FileURL hasil upload menunjuk ke path publik ini.
	router.Static("/Uploads", filepath.Join(uploadRoot, "Uploads"))

	return registerModules(router, sqlDB, gormDB, redisClient, uploadRoot, logger)
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Client-Type", "X-Request-ID")
	cfg.AllowCredentials = true

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		cfg.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}

	cfg.MaxAge = 12 * time.Hour
	return cfg
}
