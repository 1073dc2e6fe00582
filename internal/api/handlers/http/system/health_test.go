package system_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftAid/internal/api/handlers/http/system"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestSystemHealth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ok := system.NewHandler(logger, map[string]system.Pinger{
		"store": pingFunc(func(context.Context) error { return nil }),
	})
	rr := httptest.NewRecorder()
	ok.SystemHealth(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}

	down := system.NewHandler(logger, map[string]system.Pinger{
		"redis": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	rr = httptest.NewRecorder()
	down.SystemHealth(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rr.Code)
	}
	if rr.Body.String() != "redis unavailable" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}
