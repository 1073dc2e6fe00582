package postgres

import (
	"context"
	"log/slog"

	"swiftAid/internal/config"
	"swiftAid/internal/service"
	"swiftAid/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements every repository on one pool. Conditional writes run
// in a transaction that locks the incident row first.
type Postgres struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

var (
	_ service.Storage            = (*Postgres)(nil)
	_ service.IncidentRepository = (*Postgres)(nil)
	_ service.FleetRepository    = (*Postgres)(nil)
	_ service.HospitalRepository = (*Postgres)(nil)
)

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	logger.Info("Connecting to Postgres",
		slog.String("host", cfg.Postgres.Host),
		slog.Int("port", cfg.Postgres.Port),
		slog.String("db", cfg.Postgres.Database),
	)

	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN())
	if err != nil {
		logger.Error("Failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	poolCfg.MaxConnLifetime = cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("Failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Failed to ping Postgres database", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}

	if err := RunMigrations(cfg.Postgres.DSN()); err != nil {
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Migrate", err)
	}
	logger.Info("Connected to Postgres successfully")

	return New(pool, logger), nil
}

// New wraps an existing pool; the schema must already be migrated.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Postgres {
	return &Postgres{Pool: pool, logger: logger}
}

func (p *Postgres) Incidents() service.IncidentRepository { return p }
func (p *Postgres) Fleet() service.FleetRepository        { return p }
func (p *Postgres) Hospitals() service.HospitalRepository { return p }

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

func (p *Postgres) Close() {
	p.Pool.Close()
}

func (p *Postgres) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, p.Pool, fn)
}

func (p *Postgres) fail(ctx context.Context, op string, err error) error {
	wrapped := e.WrapError(ctx, op, err)
	if e.Code(wrapped) == "internal" {
		p.logger.Error("db operation failed", slog.String("op", op), slog.Any("error", err))
	}
	return wrapped
}
