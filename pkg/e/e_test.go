package e

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestWrapError_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"deadline", context.DeadlineExceeded, ErrDeadline},
		{"canceled", context.Canceled, ErrCanceled},
		{"no_rows", pgx.ErrNoRows, ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, ErrConflict},
		{"serialization", &pgconn.PgError{Code: "40001"}, ErrConflict},
		{"check", &pgconn.PgError{Code: "23514"}, ErrValidation},
		{"other_pg", &pgconn.PgError{Code: "42P01"}, ErrInternal},
		{"domain_passthrough", fmt.Errorf("inner: %w", ErrNoCapacity), ErrNoCapacity},
		{"unknown", errors.New("boom"), ErrInternal},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := WrapError(context.Background(), "op", tc.in)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	if WrapError(context.Background(), "op", nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestTypedErrors_MatchSentinels(t *testing.T) {
	ve := NewValidationError("caller.phone", "must contain 10 digits")
	if !errors.Is(ve, ErrValidation) {
		t.Fatalf("validation error must match ErrValidation")
	}
	if Code(fmt.Errorf("wrap: %w", ve)) != "validation" {
		t.Fatalf("unexpected code %q", Code(ve))
	}

	te := &TransitionError{From: "completed", Event: "driverComplete"}
	if !errors.Is(te, ErrInvalidTransition) {
		t.Fatalf("transition error must match ErrInvalidTransition")
	}
	if Code(te) != "invalid_transition" {
		t.Fatalf("unexpected code %q", Code(te))
	}

	if !Retryable(fmt.Errorf("x: %w", ErrConflict)) || Retryable(ErrNoCapacity) {
		t.Fatalf("only conflicts are retryable")
	}
}
