package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"network-registry.backend/internal/config"
	"network-registry.backend/internal/infrastructure/models"
	"network-registry.backend/internal/infrastructure/repositories"
	"network-registry.backend/internal/interfaces/http/handlers"
	"network-registry.backend/internal/interfaces/http/middleware"
	"network-registry.backend/internal/usecases"
	"network-registry.backend/pkg/jwt"
	"network-registry.backend/pkg/logger"
	"network-registry.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	sqlDB.SetMaxIdleConns(cfg.Database.MinConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database not available: %w", err)
	}
	logger.Info(context.Background(), "Connected to PostgreSQL")

	if err := db.AutoMigrate(&models.Network{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)

	networkRepo := repositories.NewNetworkRepository(db)
	networkUsecase := usecases.NewNetworkUsecase(networkRepo)
	networkHandler := handlers.NewNetworkHandler(networkUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	registerRoutes(r, routeDeps{
		networkHandler: networkHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
	})

	logger.Info(context.Background(), "Starting server", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
