package components

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"swiftAid/internal/metrics"
)

type metricsServer struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

func newMetricsServer(addr string, shutdownTimeout time.Duration, logger *slog.Logger) *metricsServer {
	return &metricsServer{srv: metrics.NewServer(addr), shutdownTimeout: shutdownTimeout, logger: logger}
}

func (m *metricsServer) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		m.logger.Info("Starting metrics server", slog.String("addr", m.srv.Addr))
		if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
		defer cancel()
		return m.srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
