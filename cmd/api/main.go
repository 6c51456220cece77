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

	_ "github.com/meetwise/meetwise/docs"
	"github.com/meetwise/meetwise/internal/adapter/handler"
	"github.com/meetwise/meetwise/internal/adapter/repository"
	"github.com/meetwise/meetwise/internal/infrastructure/cache"
	"github.com/meetwise/meetwise/internal/infrastructure/database"
	"github.com/meetwise/meetwise/internal/infrastructure/email"
	"github.com/meetwise/meetwise/internal/infrastructure/external/jira"
	"github.com/meetwise/meetwise/internal/infrastructure/external/livekit"
	"github.com/meetwise/meetwise/internal/infrastructure/external/oauth"
	"github.com/meetwise/meetwise/internal/infrastructure/storage"
	"github.com/meetwise/meetwise/internal/usecase/auth"
	"github.com/meetwise/meetwise/internal/usecase/extraction"
	"github.com/meetwise/meetwise/internal/usecase/meeting"
	"github.com/meetwise/meetwise/internal/usecase/processing"
	"github.com/meetwise/meetwise/internal/usecase/summary"
	pkgai "github.com/meetwise/meetwise/pkg/ai"
	"github.com/meetwise/meetwise/pkg/config"
	"github.com/meetwise/meetwise/pkg/jwt"
	pkgvalidator "github.com/meetwise/meetwise/pkg/validator"
)

// @title           Meetwise API
// @version         1.0
// @description     Meeting transcription, summarization and action item tracking.

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	// Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Run migrations with cmd/migrate instead.")
		}
		if err := database.RunMigrations(db, logger); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Cache (Redis, or in-memory for local runs)
	log.Println("📦 Connecting to cache...")
	cacheStore, err := cache.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// Repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	jobRepo := repository.NewJobRepository(db)
	recordingRepo := repository.NewRecordingRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	actionItemRepo := repository.NewActionItemRepository(db)

	// Auth stack
	log.Println("🔐 Initializing auth stack...")
	googleProvider := oauth.NewGoogleProvider(cfg.OAuth.Google)
	stateManager := oauth.NewStateManager(cacheStore)
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	oauthService := auth.NewOAuthService(userRepo, sessionRepo, googleProvider, stateManager, jwtManager, logger)

	// LiveKit
	log.Println("🎥 Initializing LiveKit client...")
	livekitClient := livekit.NewClient(&cfg.LiveKit, cfg.LiveKit.UseMock)
	if cfg.LiveKit.UseMock {
		log.Println("⚠️  LiveKit running in MOCK mode (no real server needed)")
	}
	egressClient := livekit.NewEgressClient(&cfg.LiveKit, &cfg.Storage, logger)

	// Object storage
	log.Println("🪣 Initializing object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Speech-to-text and extraction
	log.Println("🤖 Initializing analysis components...")
	sttClient := pkgai.NewAssemblyAIClient(&cfg.AssemblyAI)
	summarizer := summary.NewService(logger)

	extractionCfg := extraction.Config{
		Strategy:       cfg.Extraction.Strategy,
		MinSimilarity:  cfg.Extraction.MinSimilarity,
		DedupThreshold: cfg.Extraction.DedupThreshold,
		MinTaskLength:  cfg.Extraction.MinTaskLength,
	}
	var extractionOpts []extraction.Option
	if cfg.Extraction.Strategy == "model" && cfg.Groq.APIKey != "" {
		extractionOpts = append(extractionOpts, extraction.WithChatClient(pkgai.NewGroqClient(&cfg.Groq)))
	}
	extractor := extraction.NewService(extractionCfg, logger, extractionOpts...)

	// Notifications; both are optional and the pipeline tolerates nil
	var emailSender processing.EmailSender
	if smtpSender, err := email.NewSMTPSender(&cfg.SMTP, logger); err != nil {
		log.Printf("⚠️  Email digests disabled: %v", err)
	} else {
		emailSender = smtpSender
	}

	var issueTracker processing.IssueTracker
	if jiraClient, err := jira.NewClient(&cfg.Jira, logger); err != nil {
		log.Printf("⚠️  Jira sync disabled: %v", err)
	} else {
		issueTracker = jiraClient
	}

	// Services
	log.Println("✨ Initializing services...")
	meetingService := meeting.NewMeetingService(
		meetingRepo, participantRepo, userRepo, jobRepo,
		livekitClient, cfg.LiveKit.Host, logger,
	)
	processingService := processing.NewProcessingService(
		jobRepo, meetingRepo, participantRepo, transcriptRepo, summaryRepo, actionItemRepo,
		sttClient, extractor, summarizer, emailSender, issueTracker, cfg, logger,
	)

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if err := processingService.Start(workerCtx); err != nil {
		log.Fatalf("Failed to start processing workers: %v", err)
	}

	// Periodic cleanup of expired and revoked sessions
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				if err := sessionRepo.DeleteExpired(workerCtx, time.Now().Add(-24*time.Hour)); err != nil {
					logger.Warn("session cleanup failed", zap.Error(err))
				}
			}
		}
	}()

	// Handlers
	log.Println("🛣️  Setting up routes...")
	authHandler := handler.NewAuth(oauthService, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, processingService, minioClient, logger)
	summaryHandler := handler.NewSummaryHandler(meetingService, transcriptRepo, summaryRepo, actionItemRepo, logger)
	actionItemHandler := handler.NewActionItemHandler(actionItemRepo, meetingRepo, issueTracker, logger)
	webhookHandler := handler.NewWebhookHandler(
		meetingService, processingService,
		meetingRepo, participantRepo, recordingRepo,
		egressClient, minioClient, cfg.Storage.BucketName,
		cfg.LiveKit.APIKey, cfg.LiveKit.APISecret,
		logger,
	)
	transcriptWebhook := handler.NewTranscriptWebhookHandler(processingService, cacheStore, cfg.AssemblyAI.WebhookSecret, logger)
	storageTest := handler.NewStorageTest(minioClient, logger)

	router := handler.NewRouter(
		cfg, oauthService,
		authHandler, meetingHandler, summaryHandler, actionItemHandler,
		webhookHandler, transcriptWebhook, storageTest,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	if err := processingService.Stop(); err != nil {
		log.Printf("⚠️  Worker pool shutdown: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
