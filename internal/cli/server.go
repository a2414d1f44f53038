package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-host-service/internal/app"
	"quiz-host-service/internal/config"
	"quiz-host-service/internal/infra/filestore"
	"quiz-host-service/internal/infra/media"
	"quiz-host-service/internal/infra/memory"
	"quiz-host-service/internal/infra/postgres"
	redisstore "quiz-host-service/internal/infra/redis"
	transport "quiz-host-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz host API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	if cfg.Auth.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD is not set; admin login is disabled")
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "5000"
	}

	sessions, closeSessions, err := buildSessionStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSessions()

	documents, closeDocuments, err := buildDocumentStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDocuments()

	mediaStore, err := buildMediaStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opts := []app.SessionOption{}
	if cfg.Auth.HashCost > 0 {
		opts = append(opts, app.WithHashCost(cfg.Auth.HashCost))
	}
	manager := app.NewSessionManager(
		sessions,
		cfg.Auth.AdminPassword,
		config.TTLDuration(cfg.Auth.SessionTTL, 24*time.Hour),
		opts...,
	)

	tokens, err := buildTransport(cfg)
	if err != nil {
		return err
	}

	handler := transport.NewRouter(transport.Deps{
		Sessions:       manager,
		Transport:      tokens,
		Quizzes:        app.NewQuizService(documents),
		Players:        app.NewPlayerService(documents),
		Results:        app.NewResultService(documents, logger),
		Media:          app.NewMediaService(mediaStore, cfg.Uploads.MaxBytes),
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// No WriteTimeout: the leaderboard websocket is long-lived.
	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting quiz host", "port", finalPort, "env", cfg.Server.Env, "storage", cfg.Storage.Driver, "transport", cfg.Auth.Transport)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildSessionStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (app.SessionStore, func(), error) {
	if cfg.Redis.Addr == "" {
		return memory.NewSessionStore(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("sessions stored in redis", "addr", cfg.Redis.Addr)
	return redisstore.NewSessionStore(client), func() { client.Close() }, nil
}

func buildDocumentStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (app.DocumentStore, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.NewDocumentStore(), func() {}, nil
	case "postgres":
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		cached := memory.NewDocumentCache(postgres.NewDocumentStore(pool), config.TTLDuration(cfg.Storage.CacheTTL, 30*time.Second))
		return cached, pool.Close, nil
	case "file", "":
		store, err := filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("documents stored on disk", "dir", cfg.Storage.DataDir)
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func buildMediaStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (app.MediaStore, error) {
	switch cfg.Uploads.Driver {
	case "s3":
		store, err := media.NewS3Store(media.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("uploads stored in s3", "endpoint", cfg.S3.Endpoint, "bucket", cfg.S3.Bucket)
		return store, nil
	case "disk", "":
		return media.NewDiskStore(cfg.Uploads.Dir)
	default:
		return nil, fmt.Errorf("unknown uploads driver %q", cfg.Uploads.Driver)
	}
}

func buildTransport(cfg config.Config) (transport.TokenTransport, error) {
	switch cfg.Auth.Transport {
	case "bearer":
		return transport.BearerTransport{}, nil
	case "cookie", "":
		name := cfg.Auth.CookieName
		if name == "" {
			name = "authToken"
		}
		return transport.CookieTransport{Name: name, Secure: cfg.Production()}, nil
	default:
		return nil, fmt.Errorf("unknown auth transport %q", cfg.Auth.Transport)
	}
}
