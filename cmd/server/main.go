package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"threadai/internal/ai"
	"threadai/internal/auth"
	"threadai/internal/cache"
	"threadai/internal/config"
	"threadai/internal/db"
	"threadai/internal/handler"
	"threadai/internal/logger"
	"threadai/internal/model"
	"threadai/internal/repository"
	"threadai/internal/router"
	"threadai/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Thread.AI API
// @version 1.0.0
// @description AI fashion discovery platform API: Google sign-in, posts, private drafts and outfit generation.
// @host localhost:8000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logger.New(os.Stdout, cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(appLog)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		appLog.Warn("RESET_DB=true detected, dropping all tables")
		tables := model.All()
		for i := len(tables) - 1; i >= 0; i-- {
			if err := gormDB.Migrator().DropTable(tables[i]); err != nil {
				appLog.Warn("drop table failed", "error", err)
			}
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("%v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		appLog.Warn("redis unavailable, running without cache", "addr", cfg.RedisAddr, "error", err)
	}
	cancelPing()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	draftRepo := repository.NewDraftRepository(gormDB)

	// Auth components
	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("jwt init: %v", err)
	}
	tokenStore := auth.NewTokenStore(cacheClient)
	var verifier auth.IdentityVerifier = auth.NewGoogleVerifier(cfg.GoogleClientID)
	if cfg.MockGoogleAuth {
		appLog.Warn("AUTH_MOCK_GOOGLE enabled, every Google token signs in as the development user")
		verifier = auth.NewDevVerifier()
	}

	var generator ai.Generator = ai.NewPlaceholderGenerator(cfg.AIPlaceholderDelay)
	if cfg.AIAPIURL != "" {
		generator = ai.NewRemoteGenerator(cfg.AIAPIURL, cfg.AIAPIKey, cfg.AITimeout)
	}

	// Services
	userService := service.NewUserService(userRepo, cacheClient)
	postService := service.NewPostService(postRepo, userRepo)
	draftService := service.NewDraftService(draftRepo, userRepo)
	authService := service.NewAuthService(userService, jwtService, tokenStore, verifier)
	aiService := service.NewAIService(generator, cfg.MaxFileSize)

	e := echo.New()
	router.Register(
		e,
		cfg,
		appLog,
		authService,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewPostHandler(postService),
		handler.NewDraftHandler(draftService),
		handler.NewAIHandler(aiService),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		appLog.Info("server starting", "addr", addr, "env", cfg.AppEnv, "db", cfg.DBDriver, "docs", "/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server shutdown", "error", err)
	}
	if err := cacheClient.Close(); err != nil {
		appLog.Error("close redis", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
