package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPgxPoolMetrics exposes pool statistics of the incident store.
func RegisterPgxPoolMetrics(pool *pgxpool.Pool) {
	stat := func(f func(*pgxpool.Stat) float64) func() float64 {
		return func() float64 { return f(pool.Stat()) }
	}
	prometheus.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "swiftaid_pgxpool_acquired_conns",
			Help: "Connections currently acquired from the store pool",
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "swiftaid_pgxpool_total_conns",
			Help: "Total connections in the store pool",
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "swiftaid_pgxpool_idle_conns",
			Help: "Idle connections in the store pool",
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "swiftaid_pgxpool_max_conns",
			Help: "Maximum connections of the store pool",
		}, stat(func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) })),
	)
}
