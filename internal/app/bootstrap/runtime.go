package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orderdesk/orderdesk/internal/adapters/cache"
	httpadapter "github.com/orderdesk/orderdesk/internal/adapters/http"
	"github.com/orderdesk/orderdesk/internal/adapters/postgres"
	"github.com/orderdesk/orderdesk/internal/adapters/security"
	"github.com/orderdesk/orderdesk/internal/application"
	"github.com/orderdesk/orderdesk/internal/ports"
)

// Runtime is the fully wired service: config, storage, cache, and the
// assembled HTTP router.
type Runtime struct {
	Config Config
	Router http.Handler

	db    *gorm.DB
	redis *redis.Client
}

// NewRuntime connects every adapter and wires the application service.
func NewRuntime(cfg Config) (*Runtime, error) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	logger := slog.Default().With(slog.String("service", "orderdesk"), slog.String("layer", "bootstrap"))

	db, err := postgres.Connect(cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := postgres.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	repos := postgres.NewRepositories(db)

	var redisClient *redis.Client
	var dashboardCache ports.DashboardCache
	if cfg.Redis.URL != "" {
		redisClient, err = cache.Connect(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		dashboardCache = cache.NewRedisDashboardCache(redisClient)
		logger.Info("dashboard cache enabled")
	}

	if cfg.Auth.BotToken == "" {
		logger.Warn("bot token not configured, telegram assertions will be rejected")
	}

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			Production:           cfg.Production(),
			BotTokenConfigured:   cfg.Auth.BotToken != "",
			DevAllowUserIDHeader: cfg.Auth.AllowUserIDHeader,
			DashboardCacheTTL:    time.Duration(cfg.Dashboard.CacheTTLSeconds) * time.Second,
		},
		Users:     repos.Users,
		Clients:   repos.Clients,
		Orders:    repos.Orders,
		Tasks:     repos.Tasks,
		Notes:     repos.Notes,
		Templates: repos.Templates,
		Reminders: repos.Reminders,
		Dashboard: repos.Dashboard,
		Cache:     dashboardCache,
		Verifier:  security.NewTelegramVerifier(cfg.Auth.BotToken, time.Duration(cfg.Auth.MaxAgeSeconds)*time.Second),
		Tokens:    security.NewTokenCodec(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTLSeconds)*time.Second),
	})

	return &Runtime{
		Config: cfg,
		Router: httpadapter.NewRouter(service, postgres.Ping(db)),
		db:     db,
		redis:  redisClient,
	}, nil
}

// RunAPI serves HTTP until SIGINT/SIGTERM, then drains in-flight
// requests before closing the connections.
func (rt *Runtime) RunAPI() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", rt.Config.HTTP.Port),
		Handler:           rt.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger := slog.Default().With(slog.String("service", "orderdesk"), slog.String("layer", "bootstrap"))
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.Int("port", rt.Config.HTTP.Port), slog.String("env", rt.Config.Env))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}

	rt.Close()
	return nil
}

// Close releases the database and cache connections.
func (rt *Runtime) Close() {
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
