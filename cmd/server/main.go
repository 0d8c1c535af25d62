package main

import (
	"log"
	"net/http"
	"os"

	_ "eldenbuilds/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"eldenbuilds/internal/auth"
	"eldenbuilds/internal/cache"
	"eldenbuilds/internal/config"
	"eldenbuilds/internal/db"
	"eldenbuilds/internal/handler"
	"eldenbuilds/internal/model"
	"eldenbuilds/internal/repository"
	"eldenbuilds/internal/router"
	"eldenbuilds/internal/service"
)

// @title Elden Builds API
// @version 1.0
// @description Build sharing API with user accounts and JWT sessions.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Build{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Provision the schema before accepting traffic. A failed migration
	// aborts startup rather than serving 500s against missing tables.
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Build{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	buildRepo := repository.NewBuildRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	buildService := service.NewBuildService(buildRepo, userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	buildHandler := handler.NewBuildHandler(buildService)

	// Register routes
	router.Register(
		e,
		cfg,
		sessionStore,
		authHandler,
		buildHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
