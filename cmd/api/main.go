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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/omniscope-hq/meeting-intel/pkg/validator"

	"github.com/omniscope-hq/meeting-intel/internal/adapter/handler"
	"github.com/omniscope-hq/meeting-intel/internal/adapter/repository"
	"github.com/omniscope-hq/meeting-intel/internal/infrastructure/cache"
	"github.com/omniscope-hq/meeting-intel/internal/infrastructure/database"
	"github.com/omniscope-hq/meeting-intel/internal/usecase/intelligence"
	pkgai "github.com/omniscope-hq/meeting-intel/pkg/ai"
	"github.com/omniscope-hq/meeting-intel/pkg/config"
	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis. The cache is a fast path only, so a missing Redis
	// degrades to database-backed dedup instead of failing startup.
	log.Println("📦 Connecting to Redis...")
	var intelCache *cache.IntelCache
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable, continuing without dedup cache: %v", err)
	} else {
		defer redisClient.Close()
		intelCache = cache.NewIntelCache(redisClient, logger)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize AI analyzer
	log.Println("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	analyzer := intelligence.NewAnalyzer(groqClient, logger)

	// Initialize Fathom client
	log.Println("🎥 Initializing Fathom client...")
	fathomClient := fathom.NewClient(&cfg.Fathom)
	if !fathomClient.HasAPIKey() {
		log.Println("⚠️  FATHOM_API_KEY not set; batch import and webhook registration are disabled")
	}

	// Initialize intelligence service
	log.Println("🧠 Initializing intelligence service...")
	var dedupCache intelligence.DedupCache
	var cursorStore intelligence.CursorStore
	if intelCache != nil {
		dedupCache = intelCache
		cursorStore = intelCache
	}
	pipeline := intelligence.NewPipeline(meetingRepo, contactRepo, companyRepo, taskRepo, dedupCache, logger)
	intelService := intelligence.NewService(analyzer, pipeline, fathomClient, cursorStore, logger)

	// Initialize handlers
	log.Println("🪝 Initializing handlers...")
	webhookHandler := handler.NewWebhookHandler(intelService, logger)
	adminHandler := handler.NewAdminHandler(intelService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, webhookHandler, adminHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/api/webhook/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
