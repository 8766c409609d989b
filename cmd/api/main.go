package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/johnquangdev/meetmind/docs"
	"github.com/johnquangdev/meetmind/internal/adapter/handler"
	"github.com/johnquangdev/meetmind/internal/adapter/repository"
	"github.com/johnquangdev/meetmind/internal/domain/repositories"
	"github.com/johnquangdev/meetmind/internal/infrastructure/cache"
	"github.com/johnquangdev/meetmind/internal/infrastructure/database"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external/notion"
	"github.com/johnquangdev/meetmind/internal/infrastructure/external/trello"
	httpmw "github.com/johnquangdev/meetmind/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meetmind/internal/infrastructure/storage"
	exportuc "github.com/johnquangdev/meetmind/internal/usecase/export"
	meetinguc "github.com/johnquangdev/meetmind/internal/usecase/meeting"
	summaryuc "github.com/johnquangdev/meetmind/internal/usecase/summary"
	pkgai "github.com/johnquangdev/meetmind/pkg/ai"
	"github.com/johnquangdev/meetmind/pkg/config"
	"github.com/johnquangdev/meetmind/pkg/jwt"
	"github.com/johnquangdev/meetmind/pkg/metrics"
	"github.com/johnquangdev/meetmind/pkg/retry"
	pkgvalidator "github.com/johnquangdev/meetmind/pkg/validator"
)

// @title           MeetMind API
// @version         1.0
// @description     Turns meeting transcripts into summaries, key points and action items, and exports them to Notion and Trello

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{"X-Meeting-ID", "X-Decode-Stage", echo.HeaderXRequestID},
		AllowCredentials: true,
	}))

	logger.Info("🔧 Initializing dependencies...")
	m := metrics.NewMetrics()
	checks := map[string]handler.HealthCheck{}

	// Meeting history
	var (
		db       *gorm.DB
		meetings repositories.MeetingRepository
	)
	if cfg.HistoryEnabled() {
		logger.Info("📦 Connecting to database...")
		db, err = database.NewPostgresDB(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			if cfg.IsProduction() {
				logger.Fatal("DB_AUTO_MIGRATE is enabled in production; run `meetmindctl migrate up` instead")
			}
			if _, err := database.Migrate(db, database.MigrationSource(cfg.Database.MigrationsDir), database.Up, 0, logger); err != nil {
				logger.Fatal("Failed to apply migrations", zap.Error(err))
			}
		}

		meetings = repository.NewMeetingRepository(db)
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	} else {
		logger.Warn("⚠️  DB_HOST not set, meeting history disabled")
	}

	// Summary cache
	summaryCache, err := cache.NewStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	if summaryCache != nil {
		defer summaryCache.Close()
		logger.Info("🗄️  Summary cache ready", zap.String("driver", cfg.Cache.Driver))
	}

	// Object storage
	var objects *storage.MinIOClient
	if cfg.ArchiveEnabled() {
		logger.Info("📦 Connecting to object storage...")
		objects, err = storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		checks["storage"] = objects.Ping
	} else {
		logger.Warn("⚠️  STORAGE_ENDPOINT not set, raw output archive and audio uploads disabled")
	}

	// Model and transcription
	logger.Info("🤖 Initializing AI components...")
	chat := pkgai.NewChatClientFromConfig(&cfg.Model)
	logger.Info("✅ Model selected",
		zap.String("provider", string(chat.Provider())),
		zap.String("model", chat.Model()))

	var transcriber summaryuc.Transcriber
	if cfg.AssemblyAI.APIKey != "" {
		transcriber = pkgai.NewAssemblyAIClient(&cfg.AssemblyAI, "")
	}

	modelRetry := retry.DefaultPolicy
	modelRetry.MaxElapsedTime = cfg.Model.MaxRetry

	deps := summaryuc.Deps{
		Model:       chat,
		Transcriber: transcriber,
		Metrics:     m,
		Logger:      logger,
		CacheTTL:    cfg.Cache.TTL,
		Retry:       modelRetry,
	}
	if summaryCache != nil {
		deps.Cache = summaryCache
	}
	if objects != nil {
		deps.Storage = objects
	}
	if meetings != nil {
		deps.Meetings = meetings
	}
	summaryService := summaryuc.NewService(deps)

	exportService := exportuc.NewService(exportuc.Deps{
		Notion: notion.NewClient(&cfg.Notion),
		Trello: trello.NewClient(&cfg.Trello),
		TrelloDefault: trello.Credentials{
			APIKey: cfg.Trello.Key,
			Token:  cfg.Trello.Token,
			ListID: cfg.Trello.ListID,
		},
		Concurrency: cfg.Trello.Concurrency,
		Metrics:     m,
		Logger:      logger,
	})

	// Routes
	logger.Info("🛣️  Setting up routes...")
	opts := handler.RouterOptions{HealthChecks: checks}
	if meetings != nil {
		opts.MeetingHandler = handler.NewMeetingHandler(meetinguc.NewService(meetings), logger)
	}
	if objects != nil {
		opts.ArchiveHandler = handler.NewArchiveHandler(objects, logger)
	}
	if cfg.JWT.AccessSecret != "" {
		jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
		render := func(c echo.Context, err error) error { return handler.HandleError(logger, c, err) }
		opts.AuthMW = httpmw.EchoAuth(jwtManager, render)
		opts.OptionalAuthMW = httpmw.OptionalAuth(jwtManager)
		opts.ScopeMW = func(scope string) echo.MiddlewareFunc { return httpmw.RequireScope(scope, render) }
	} else {
		logger.Warn("⚠️  JWT_ACCESS_SECRET not set, meeting history and archive are public")
	}

	router := handler.NewRouter(cfg,
		handler.NewSummaryHandler(summaryService, logger),
		handler.NewExportHandler(exportService, logger),
		opts,
	)
	router.Setup(e)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
