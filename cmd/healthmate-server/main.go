package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/healthmate/healthmate/internal/config"
	"github.com/healthmate/healthmate/internal/domain/document"
	"github.com/healthmate/healthmate/internal/domain/identity"
	"github.com/healthmate/healthmate/internal/domain/insight"
	"github.com/healthmate/healthmate/internal/domain/timeline"
	"github.com/healthmate/healthmate/internal/domain/vitals"
	"github.com/healthmate/healthmate/internal/platform/auth"
	"github.com/healthmate/healthmate/internal/platform/db"
	"github.com/healthmate/healthmate/internal/platform/genai"
	"github.com/healthmate/healthmate/internal/platform/middleware"
	"github.com/healthmate/healthmate/internal/platform/respond"
	"github.com/healthmate/healthmate/internal/platform/storage"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthmate-server",
		Short: "HealthMate health record API server",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(indexesCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Ensure MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			client, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoConnectRetries, logger)
			if err != nil {
				return fmt.Errorf("connecting to mongo: %w", err)
			}
			defer client.Disconnect(context.Background())

			if err := db.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
				return fmt.Errorf("ensuring indexes: %w", err)
			}
			logger.Info().Msg("indexes ensured")
			return nil
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoConnectRetries, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer client.Disconnect(context.Background())
	database := client.Database(cfg.MongoDatabase)
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongo")

	store, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure object storage")
	}

	ai := genai.NewClient(genai.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = respond.HTTPErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M", fmt.Sprintf("%dM", cfg.MaxFileSize/(1<<20)+1)))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", db.HealthHandler(client))

	// Rate limit after auth so authenticated traffic is bucketed per
	// user rather than per IP.
	rateLimit := middleware.RateLimit(middleware.DefaultRateLimitConfig())
	public := e.Group("/api/v1", rateLimit)
	private := e.Group("/api/v1", auth.Middleware(issuer), rateLimit)

	// Repositories
	userRepo := identity.NewMongoRepository(database)
	docRepo := document.NewMongoRepository(database)
	vitalsRepo := vitals.NewMongoRepository(database)
	insightRepo := insight.NewMongoRepository(database)

	// Identity
	identitySvc := identity.NewService(userRepo, issuer)
	identity.NewHandler(identitySvc).RegisterRoutes(public, private)

	// Documents, with insights cleaned up alongside their document
	docSvc := document.NewService(docRepo, store, insight.NewSource(insightRepo), logger, document.ServiceConfig{
		MaxFileSize:  cfg.MaxFileSize,
		StrictDelete: cfg.StorageDeleteStrict,
	})
	document.NewHandler(docSvc, logger).RegisterRoutes(private)

	// Vitals
	vitalsSvc := vitals.NewService(vitalsRepo)
	vitals.NewHandler(vitalsSvc).RegisterRoutes(private)

	// AI insights
	insightSvc := insight.NewService(insightRepo, docRepo, ai, logger)
	insight.NewHandler(insightSvc).RegisterRoutes(private)

	// Timeline
	timelineSvc := timeline.NewService(docRepo, vitalsRepo)
	timeline.NewHandler(timelineSvc).RegisterRoutes(private)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
