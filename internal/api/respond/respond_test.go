package respond

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftAid/pkg/e"
)

func TestError_StatusAndCode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", e.Wrap("op", e.NewValidationError("caller.phone", "must contain exactly 10 digits")), http.StatusBadRequest, "validation"},
		{"not_found", e.Wrap("op", e.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", e.Wrap("op", e.ErrAmbulanceUnavailable), http.StatusConflict, "conflict"},
		{"no_capacity", e.Wrap("op", e.ErrNoCapacity), http.StatusServiceUnavailable, "no_capacity"},
		{"transition", e.Wrap("op", &e.TransitionError{From: "completed", Event: "cancel"}), http.StatusUnprocessableEntity, "invalid_transition"},
		{"forbidden", e.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unauthorized", e.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Error(rr, logger, tt.err)

			if rr.Code != tt.status {
				t.Fatalf("expected %d got %d", tt.status, rr.Code)
			}
			var body ErrorBody
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Code != tt.code {
				t.Fatalf("expected code %q got %q", tt.code, body.Code)
			}
		})
	}
}

func TestError_ValidationFields(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, slog.New(slog.NewTextHandler(io.Discard, nil)), e.NewValidationError("caller.name", "is required"))

	var body ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Fields["caller.name"] != "is required" {
		t.Fatalf("expected field reason, got %v", body.Fields)
	}
}

func TestError_InternalTextHidden(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, slog.New(slog.NewTextHandler(io.Discard, nil)), errors.New("pg password is hunter2"))

	var body ErrorBody
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if body.Error != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("internal error text leaked: %q", body.Error)
	}
}
