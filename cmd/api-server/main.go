package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"lexihub/database"
	"lexihub/internal/cache"
	"lexihub/internal/config"
	"lexihub/internal/handler"
	"lexihub/internal/middleware"
	"lexihub/internal/repository"
	"lexihub/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	translationRepo := repository.NewTranslationRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	sourceRepo := repository.NewSourceRepository(db)
	relRepo := repository.NewRelationshipRepository(db)

	// Services
	metadataCache := cache.NewMetadataCache(cfg, logger)
	mailer := service.NewSMTPMailer(cfg)
	authService := service.NewAuthService(userRepo, mailer, cfg, logger)
	userService := service.NewUserService(userRepo)
	entryService := service.NewEntryService(entryRepo, relRepo, voteRepo, metadataCache, cfg)
	translationService := service.NewTranslationService(translationRepo, entryRepo, voteRepo)
	voteService := service.NewVoteService(voteRepo, translationRepo)
	commentService := service.NewCommentService(commentRepo, entryRepo)
	sourceService := service.NewSourceService(sourceRepo)
	backupService := service.NewBackupService(cfg, logger)

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(authService, userRepo)
	optionalAuth := middleware.OptionalAuth(authService, userRepo)

	api := r.Group("/api/v1")

	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(api.Group("/auth"), requireAuth)

	userHandler := handler.NewUserHandler(userService)
	userHandler.RegisterRoutes(api.Group("/users"), requireAuth)

	entryHandler := handler.NewEntryHandler(entryService)
	entryHandler.RegisterRoutes(api.Group("/entries"), requireAuth, optionalAuth)
	entryHandler.RegisterRelationshipRoutes(api.Group("/relationships"), requireAuth)

	translationGroup := api.Group("/translations")
	translationHandler := handler.NewTranslationHandler(translationService)
	translationHandler.RegisterRoutes(translationGroup, requireAuth, optionalAuth)
	voteHandler := handler.NewVoteHandler(voteService)
	voteHandler.RegisterRoutes(translationGroup, requireAuth)

	commentHandler := handler.NewCommentHandler(commentService)
	commentHandler.RegisterRoutes(api.Group("/comments"), requireAuth)

	sourceHandler := handler.NewSourceHandler(sourceService)
	sourceHandler.RegisterRoutes(api.Group("/sources"), requireAuth)

	backupHandler := handler.NewBackupHandler(backupService)
	backupHandler.RegisterRoutes(api.Group("/backup"), requireAuth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "environment", cfg.Environment)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
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
