package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/config"
	"reviewhub/internal/database"
	"reviewhub/internal/handler"
	"reviewhub/internal/mailer"
	"reviewhub/internal/middleware"
	"reviewhub/internal/ratelimit"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

func main() {
	// 1. Load and validate config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// 2. Connect to the database (runs migrations)
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// 3. Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 4. Outbound dependencies
	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom)
	} else {
		logger.Warn("SMTP_HOST not set, confirmation codes go to the log")
		sender = mailer.NewLogSender(logger)
	}

	var resend ratelimit.ResendLimiter = ratelimit.Unlimited{}
	if limiter, err := ratelimit.NewRedisResendLimiter(cfg.RedisURL, cfg.RedisPassword, cfg.ResendInterval, logger); err != nil {
		logger.Warn("redis unavailable, resend throttling disabled", "error", err)
	} else {
		resend = limiter
	}

	// 5. Services
	authService := service.NewAuthService(userRepo, sender, resend, cfg, logger)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, reviewRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, cfg.MinScore, cfg.MaxScore)
	commentService := service.NewCommentService(commentRepo, reviewRepo, titleRepo)

	// 6. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthRequired(authService, userRepo)
	authOptional := middleware.AuthOptional(authService, userRepo)
	adminOnly := []gin.HandlerFunc{authRequired, middleware.AdminOrReadOnly()}

	api := r.Group("/api/v1")
	{
		handler.NewAuthHandler(authService).RegisterRoutes(api)

		users := api.Group("", authRequired)
		handler.NewUserHandler(userService).RegisterRoutes(users)

		// Catalog and content reads are public; the auth-optional middleware
		// still resolves a caller so object policies see who is asking.
		public := api.Group("", authOptional)
		handler.NewCategoryHandler(categoryService).RegisterRoutes(public, adminOnly...)
		handler.NewGenreHandler(genreService).RegisterRoutes(public, adminOnly...)
		handler.NewTitleHandler(titleService).RegisterRoutes(public, adminOnly...)
		handler.NewReviewHandler(reviewService).RegisterRoutes(public, authRequired)
		handler.NewCommentHandler(commentService).RegisterRoutes(public, authRequired)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting HTTP server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
