package system

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger *slog.Logger
	deps   map[string]Pinger
}

func NewHandler(logger *slog.Logger, deps map[string]Pinger) *Handler {
	return &Handler{logger: logger, deps: deps}
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", slog.String("dependency", name), slog.Any("error", err))
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(name + " unavailable"))
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
