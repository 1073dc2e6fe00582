package workers

import (
	"context"
	"log/slog"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/internal/metrics"
)

type ActiveLister interface {
	ListActive(ctx context.Context) []*domain.Incident
}

// StaleMonitor reports non-terminal incidents that have not changed for
// longer than staleAfter. It never changes them.
type StaleMonitor struct {
	incidents  ActiveLister
	logger     *slog.Logger
	staleAfter time.Duration
	interval   time.Duration
	now        func() time.Time
}

func NewStaleMonitor(incidents ActiveLister, logger *slog.Logger, staleAfter, interval time.Duration) *StaleMonitor {
	return &StaleMonitor{
		incidents:  incidents,
		logger:     logger,
		staleAfter: staleAfter,
		interval:   interval,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (w *StaleMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("stale monitor started",
		slog.Duration("stale_after", w.staleAfter),
		slog.Duration("interval", w.interval),
	)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stale monitor stopped")
			return nil
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check counts stale incidents per status, updates the gauge and returns
// the counts.
func (w *StaleMonitor) Check(ctx context.Context) map[domain.IncidentStatus]int {
	cutoff := w.now().Add(-w.staleAfter)

	counts := map[domain.IncidentStatus]int{
		domain.IncidentPending:    0,
		domain.IncidentActive:     0,
		domain.IncidentAssigned:   0,
		domain.IncidentDispatched: 0,
	}
	for _, inc := range w.incidents.ListActive(ctx) {
		if inc.Status.Terminal() || !inc.Timestamps.UpdatedAt.Before(cutoff) {
			continue
		}
		counts[inc.Status]++
		w.logger.Warn("incident is stale",
			slog.String("incident_id", inc.ID.String()),
			slog.String("status", string(inc.Status)),
			slog.Duration("idle", w.now().Sub(inc.Timestamps.UpdatedAt).Round(time.Second)),
		)
	}
	for status, n := range counts {
		metrics.SetStale(string(status), n)
	}
	return counts
}
