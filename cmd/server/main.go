// Package main is the entry point for the Roomie Hub API server.
//
// The process wires the layers together and owns their lifecycles:
//   - Domain: profile aggregate and compatibility scoring
//   - Application: command and query handlers (CQRS)
//   - Infrastructure: postgres repository, redis cache, event bus, NATS relay
//   - Interface: HTTP API
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roomie-hub/roomie-hub/config"
	"github.com/roomie-hub/roomie-hub/internal/application/command"
	"github.com/roomie-hub/roomie-hub/internal/application/query"
	"github.com/roomie-hub/roomie-hub/internal/domain/matching"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/auth"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/messaging"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/persistence/postgres"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/persistence/redis"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/scheduler"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/scheduler/jobs"
	httpserver "github.com/roomie-hub/roomie-hub/internal/interface/http"
	"github.com/roomie-hub/roomie-hub/internal/metrics"
	"github.com/roomie-hub/roomie-hub/pkg/logger"
	"github.com/roomie-hub/roomie-hub/pkg/retry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	slogger := setupSlog(cfg)
	log := logger.New(logger.Options{
		Level:     logger.ParseLevel(cfg.Logging.Level),
		AddCaller: cfg.App.Debug,
	})

	slogger.Info("starting roomie-hub",
		"env", string(cfg.App.Environment),
		"version", cfg.App.Version,
		"debug", cfg.App.Debug,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. POSTGRES
	// ─────────────────────────────────────────────────────────────────────────
	var dbConn *postgres.Connection
	err = retry.ConnectRetrier().Do(ctx, func(ctx context.Context) error {
		var connErr error
		dbConn, connErr = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		return connErr
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		slogger.Info("closing database connection")
		dbConn.Close()
	}()
	slogger.Info("database connection established")

	if cfg.Database.Migrate {
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		slogger.Info("migrations applied")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. REDIS (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var redisCache *redis.Cache
	if !cfg.Redis.Disabled {
		redisCfg := redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}
		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			slogger.Warn("redis unavailable, caching and sessions disabled", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
			slogger.Info("redis connection established", "addr", redisCfg.Addr())
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. EVENT BUS + NATS RELAY
	// ─────────────────────────────────────────────────────────────────────────
	busCfg := messaging.DefaultInMemoryEventBusConfig()
	busCfg.Logger = slogger
	eventBus := messaging.NewInMemoryEventBus(busCfg, messaging.LoggingMiddleware(slogger))
	defer func() {
		slogger.Info("closing event bus")
		_ = eventBus.Close()
	}()

	if err := eventBus.SubscribeAll(func(e shared.Event) error {
		metrics.DomainEventsTotal.WithLabelValues(string(e.EventType())).Inc()
		return nil
	}); err != nil {
		return fmt.Errorf("failed to register event metrics hook: %w", err)
	}

	if !cfg.NATS.Disabled {
		relayCfg := messaging.DefaultNATSRelayConfig()
		relayCfg.URL = cfg.NATS.URL
		relayCfg.Name = cfg.NATS.Name
		relayCfg.ReconnectWait = cfg.NATS.ReconnectWait
		relayCfg.MaxReconnects = cfg.NATS.MaxReconnects
		relayCfg.Logger = slogger

		relay, err := messaging.NewNATSRelay(relayCfg)
		if err != nil {
			slogger.Warn("NATS unavailable, running single-instance", "error", err)
		} else {
			defer relay.Close()
			if err := relay.AttachTo(eventBus); err != nil {
				return fmt.Errorf("failed to attach NATS relay: %w", err)
			}
			if err := relay.ListenRemote(eventBus); err != nil {
				return fmt.Errorf("failed to subscribe to remote events: %w", err)
			}
			slogger.Info("NATS relay attached", "url", cfg.NATS.URL)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES + CACHES
	// ─────────────────────────────────────────────────────────────────────────
	profileRepo := postgres.NewProfileRepository(dbConn)

	var (
		viewCounter *redis.ViewCounter
		suggestions query.SuggestionCache
		tokenStore  *auth.RedisTokenStore
	)
	if redisCache != nil {
		viewCounter = redis.NewViewCounter(redisCache, profileRepo)
		suggestions = redis.NewSuggestionCache(redisCache)
		tokenStore = auth.NewRedisTokenStore(redisCache, auth.DefaultTokenTTL)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	anonymous := matching.NewRandomizedProvider(nil)
	getStats := query.NewGetStatsHandler(profileRepo)

	var views query.ViewCounter
	if viewCounter != nil {
		views = viewCounter
	}

	deps := httpserver.Dependencies{
		FindMatches:      query.NewFindMatchesHandler(profileRepo, anonymous),
		GetProfile:       query.NewGetProfileHandler(profileRepo, views, eventBus),
		ListSaved:        query.NewListSavedHandler(profileRepo),
		SearchProfiles:   query.NewSearchProfilesHandler(profileRepo, anonymous),
		SuggestLocations: query.NewSuggestLocationsHandler(profileRepo, suggestions, redis.TTLSuggestions),
		GetStats:         getStats,

		Register:          command.NewRegisterProfileHandler(profileRepo, hasher, eventBus),
		Authenticate:      command.NewAuthenticateHandler(profileRepo, hasher),
		UpdateProfile:     command.NewUpdateProfileHandler(profileRepo, eventBus),
		UpdatePreferences: command.NewUpdatePreferencesHandler(profileRepo, eventBus),
		UpdateRoomDetails: command.NewUpdateRoomDetailsHandler(profileRepo, eventBus),
		ToggleSave:        command.NewToggleSaveHandler(profileRepo, eventBus),
		Deactivate:        command.NewDeactivateProfileHandler(profileRepo, eventBus),

		Health: map[string]httpserver.Pinger{
			"postgres": dbConn,
		},
		Logger: log,
	}
	if redisCache != nil {
		deps.Health["redis"] = redisCache
	}
	if tokenStore != nil {
		deps.Auth = tokenStore
		deps.Tokens = tokenStore
	} else {
		slogger.Warn("no token store configured, all requests are anonymous")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. BACKGROUND JOBS
	// ─────────────────────────────────────────────────────────────────────────
	sched := scheduler.NewScheduler(slogger)
	if viewCounter != nil {
		if err := sched.Register(jobs.NewFlushViewsJob(viewCounter), cfg.App.ViewFlushInterval); err != nil {
			return fmt.Errorf("failed to register view flush job: %w", err)
		}
	}
	if err := sched.Register(jobs.NewStatsDigestJob(getStats, slogger), time.Hour); err != nil {
		return fmt.Errorf("failed to register stats digest job: %w", err)
	}
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// ─────────────────────────────────────────────────────────────────────────
	// 9. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	server := httpserver.NewServer(httpserver.Config{
		Host:               cfg.HTTP.Host,
		Port:               cfg.HTTP.Port,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		EnableCORS:         cfg.HTTP.EnableCORS,
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		EnableMetrics:      cfg.HTTP.EnableMetrics,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
	}, deps)

	errCh := server.StartAsync()
	slogger.Info("HTTP server listening", "addr", fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port))

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		slogger.Info("shutdown signal received")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 10. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slogger.Error("http shutdown failed", "error", err)
	}

	// Drain pending profile views so counts survive the restart.
	if viewCounter != nil {
		if flushed, err := viewCounter.Flush(shutdownCtx); err != nil {
			slogger.Warn("final view flush failed", "error", err)
		} else if flushed > 0 {
			metrics.ProfileViewsFlushed.Add(float64(flushed))
			slogger.Info("flushed pending views", "count", flushed)
		}
	}

	slogger.Info("shutdown complete")
	return nil
}

// setupSlog builds the process-wide structured logger from config.
func setupSlog(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
