package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"learnhub/database"
	"learnhub/internal/config"
	"learnhub/internal/microservices/http-api/cache"
	"learnhub/internal/microservices/http-api/handler"
	"learnhub/internal/microservices/http-api/middleware"
	"learnhub/internal/microservices/http-api/repository"
	"learnhub/internal/microservices/http-api/service"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// 2. Connect to the database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// 3. Redis summary cache (optional, the API works without it)
	var summaryCache *cache.SummaryCache
	if cfg.CacheEnabled {
		summaryCache, err = cache.NewSummaryCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			logger.Warn("redis unavailable, running without summary cache", "error", err)
			summaryCache = nil
		} else {
			defer summaryCache.Close()
		}
	}

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// 5. Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	courseService := service.NewCourseService(courseRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo)
	progressService := service.NewProgressService(progressRepo, courseRepo, summaryCache, logger)
	courseProgressService := service.NewCourseProgressService(courseRepo, progressRepo, enrollmentRepo, summaryCache, logger)
	streakService := service.NewStreakService(progressRepo)

	// 6. Handlers
	authHandler := handler.NewAuthHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService, courseProgressService)
	progressHandler := handler.NewProgressHandler(progressService, courseProgressService, streakService)

	// 7. Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))
	courseHandler.RegisterRoutes(api.Group("/courses"))

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	enrollmentHandler.RegisterRoutes(authed.Group("/enrollments"))
	progressHandler.RegisterRoutes(authed.Group("/progress"))

	admin := authed.Group("/courses")
	admin.Use(middleware.RequireRole("admin"))
	courseHandler.RegisterAdminRoutes(admin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
