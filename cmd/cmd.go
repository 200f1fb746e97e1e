package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-board-backend/internal/config"
	"job-board-backend/internal/handlers"
	"job-board-backend/internal/middleware"
	"job-board-backend/internal/repository"
	"job-board-backend/internal/repository/memory"
	"job-board-backend/internal/repository/mongostore"
	"job-board-backend/internal/repository/postgres"
	"job-board-backend/internal/services"
	"job-board-backend/internal/tokenstore"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultConfigPath = "config.yaml"

func Run() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Log)

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}()
	log.Info().Str("driver", cfg.Database.Driver).Msg("Database connection established")

	checks := map[string]handlers.Pinger{"store": store.Ping}

	// Token revocation is optional
	var revoker services.TokenRevoker
	if cfg.Redis.Addr != "" {
		denylist := tokenstore.NewRedisDenylist(tokenstore.NewRedis(cfg.Redis))
		if err := denylist.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		}
		defer denylist.Close()
		revoker = denylist
		checks["redis"] = denylist.Ping
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Token revocation enabled")
	}

	uploader, err := services.NewS3Uploader(ctx, cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create S3 uploader")
	}

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, revoker)
	hub := services.NewNotificationHub()
	userService := services.NewUserService(store.Users, uploader, tokenService)
	jobService := services.NewJobPostService(store, uploader, cfg.Jobs.CascadeDeleteApplicants)
	applicantService := services.NewApplicantService(store, uploader, hub)

	maxBytes := cfg.Upload.MaxUploadBytes()

	router := handlers.NewRouter(handlers.Router{
		Auth:           handlers.NewAuthHandler(userService, tokenService, cfg.JWT, maxBytes),
		Users:          handlers.NewUserHandler(userService, maxBytes),
		JobPosts:       handlers.NewJobPostHandler(jobService, maxBytes),
		Applicants:     handlers.NewApplicantHandler(applicantService, maxBytes),
		WebSocket:      handlers.NewWebSocketHandler(hub, tokenService, cfg.JWT.CookieName, cfg.Server.AllowedOrigins),
		Health:         handlers.NewHealthHandler(checks),
		Tokens:         tokenService,
		CookieName:     cfg.JWT.CookieName,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		LoginLimiter:   middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
		TrustProxy:     cfg.Server.TrustProxy,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openStore connects the configured backend and prepares its schema
func openStore(ctx context.Context, cfg config.DatabaseConfig) (*repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			client.Disconnect(ctx)
			return nil, err
		}
		return mongostore.New(client, db), nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return postgres.New(pool), nil

	case config.DriverMemory:
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// setupLogger configures zerolog logger
func setupLogger(cfg config.LogConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch cfg.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
