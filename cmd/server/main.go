package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskmanager/docs"
	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/db"
	"taskmanager/internal/handler"
	"taskmanager/internal/logger"
	"taskmanager/internal/middleware"
	"taskmanager/internal/repository"
	"taskmanager/internal/router"
	"taskmanager/internal/service"
)

// @title Task Management API
// @version 1.0
// @description Personal task tracking with due-date filtering and JWT authentication.
// @host localhost:3002
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gormDB, err := db.Open(cfg)
	if err != nil {
		zl.Fatal("database init", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		zl.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.ResetDB {
		zl.Warn("RESET_DB set, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			zl.Fatal("reset database", zap.Error(err))
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		zl.Fatal("migrate database", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewPasswordHasher()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, hasher)
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		zl,
		middleware.Auth(jwtService, userService),
		handler.NewHealthHandler(sqlDB),
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewTaskHandler(taskService),
	)

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	zl.Info("swagger documentation available", zap.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		zl.Info("server listening", zap.String("addr", addr), zap.String("driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
}
