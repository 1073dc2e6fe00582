// Package respond writes JSON bodies and maps domain errors to statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"swiftAid/pkg/e"
)

type ErrorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, logger *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("json encode failed", slog.Any("error", err))
	}
}

func Status(err error) int {
	switch e.Code(err) {
	case "validation":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "conflict":
		return http.StatusConflict
	case "no_capacity":
		return http.StatusServiceUnavailable
	case "invalid_transition":
		return http.StatusUnprocessableEntity
	case "forbidden":
		return http.StatusForbidden
	case "unauthorized":
		return http.StatusUnauthorized
	}
	if errors.Is(err, e.ErrDeadline) || errors.Is(err, e.ErrCanceled) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// Error writes the error body. Internal errors are logged and their text
// is not returned.
func Error(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := Status(err)
	body := ErrorBody{Error: err.Error(), Code: e.Code(err)}

	var verr *e.ValidationError
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error("request failed", slog.Any("error", err))
		body.Error = http.StatusText(status)
	}
	JSON(w, logger, status, body)
}
