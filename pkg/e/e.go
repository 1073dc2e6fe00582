package e

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func Wrap(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrNoCapacity        = errors.New("no capacity")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternal          = errors.New("internal error")
	ErrDeadline          = errors.New("deadline exceeded")
	ErrCanceled          = errors.New("context canceled")
	ErrWebHookEmpty      = errors.New("webhook queue is empty")
)

// Conflict flavours; both match ErrConflict.
var (
	ErrAmbulanceUnavailable = fmt.Errorf("ambulance already claimed: %w", ErrConflict)
	ErrStatusChanged        = fmt.Errorf("status changed concurrently: %w", ErrConflict)
)

// ValidationError carries per-field reasons and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) Unwrap() error { return ErrValidation }

// TransitionError reports an event fired from a state that does not accept it.
type TransitionError struct {
	From  string
	Event string
}

func (t *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s not allowed from %s", t.Event, t.From)
}

func (t *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Retryable reports errors the caller may retry with fresh state.
func Retryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

func WrapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrDeadline)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, ErrCanceled)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "40001", "40P01":
			return fmt.Errorf("%s: %w", op, ErrConflict)
		case "23503", "23514":
			return fmt.Errorf("%s: %w", op, ErrValidation)
		default:
			return fmt.Errorf("%s: pg error %s: %w", op, pgErr.Code, ErrInternal)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	for _, known := range []error{ErrNotFound, ErrConflict, ErrValidation, ErrNoCapacity, ErrInvalidTransition, ErrForbidden} {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, ErrInternal)
}

// Code is the stable error code returned to portals.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNoCapacity):
		return "no_capacity"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal"
	}
}
