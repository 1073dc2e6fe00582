package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"swiftAid/internal/api"
	"swiftAid/internal/api/handlers/http/system"
	"swiftAid/internal/config"
	"swiftAid/internal/domain"
	"swiftAid/internal/fanout"
	"swiftAid/internal/identity"
	"swiftAid/internal/metrics"
	"swiftAid/internal/redis"
	"swiftAid/internal/service"
	"swiftAid/internal/storage/memory"
	"swiftAid/internal/storage/postgres"
	"swiftAid/internal/workers"
	"swiftAid/pkg/logger"
)

// Runner is a long-lived background loop stopped by ctx.
type Runner func(ctx context.Context) error

type Components struct {
	logger        *slog.Logger
	HttpServer    *api.Server
	MetricsServer *metricsServer
	Postgres      *postgres.Postgres
	Redis         *redis.Redis
	Hub           *fanout.Hub
	Service       *service.Service
	// Background holds the relay, webhook sender and stale monitor.
	Background map[string]Runner
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{
		logger:     logger,
		Hub:        fanout.NewHub(logger),
		Background: make(map[string]Runner),
	}
	health := make(map[string]system.Pinger)

	var storage service.Storage
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		logger.Info("Initializing Postgres")
		pg, err := postgres.NewPostgres(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to init postgres", slog.Any("error", err))
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		metrics.RegisterPgxPoolMetrics(pg.Pool)
		c.Postgres = pg
		storage = pg
		health["postgres"] = pg
	default:
		logger.Warn("Using in-memory storage; state is lost on restart")
		storage = memory.New()
	}

	policy, err := domain.ParsePriorityPolicy(cfg.Dispatch.PriorityPolicy)
	if err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("priority policy: %w", err)
	}

	var (
		publisher service.Publisher = c.Hub
		cache     service.IncidentCacheService
	)

	if !cfg.Redis.Disabled {
		logger.Info("Initializing Redis")
		r, err := redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = r
		health["redis"] = r
		cache = redis.NewIncidentCache(r)

		relay := redis.NewEventRelay(r, c.Hub, storage.Incidents().ListChangedSince, logger)
		publisher = relay
		c.Background["event-relay"] = func(ctx context.Context) error {
			relay.Run(ctx)
			return nil
		}

		if !cfg.Webhook.Disabled {
			queue := redis.NewWebhookQueue(r)
			publisher = service.Publishers{relay, service.NewWebhookPublisher(queue)}
			sender := service.NewWebhookSender(logger, cfg.Webhook, queue)
			c.Background["webhook-sender"] = func(ctx context.Context) error {
				sender.Run(ctx)
				return nil
			}
		}
	}

	incidentSvc := service.NewIncidentService(storage.Incidents(), cache, publisher, policy, logger)
	resolver := service.NewResolver(storage.Fleet(), storage.Hospitals(), logger)
	c.Service = &service.Service{
		Incidents: incidentSvc,
		Lifecycle: service.NewLifecycle(storage.Incidents(), resolver, publisher, logger, cfg.Dispatch.AssignMaxAttempts),
		Resolver:  resolver,
		Hospitals: service.NewHospitalService(storage.Hospitals(), logger),
		Fleet:     service.NewFleetService(storage.Fleet(), logger),
		Stats:     service.NewStatsService(storage.Incidents()),
	}

	stale := workers.NewStaleMonitor(incidentSvc, logger, cfg.Dispatch.StaleAfter, cfg.Dispatch.StaleInterval)
	c.Background["stale-monitor"] = stale.Run

	c.HttpServer = api.NewServer(ctx, cfg, logger, c.Service, api.Deps{
		Hub:      c.Hub,
		Identity: identity.NewResolver(cfg.Auth.JWTSecret),
		Health:   health,
	})
	c.MetricsServer = newMetricsServer(cfg.Metrics.Addr, cfg.Http.ShutdownTimeout, logger)
	logger.Info("Initialized server",
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("redis", c.Redis != nil),
		slog.Int("background", len(c.Background)),
	)

	return c, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	if c.Hub != nil {
		c.Hub.Close()
	}
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
