package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"swiftAid/internal/config"
	"swiftAid/internal/domain"
	"swiftAid/pkg/e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanQueue struct {
	items chan domain.WebhookPayload
}

func newChanQueue() *chanQueue {
	return &chanQueue{items: make(chan domain.WebhookPayload, 16)}
}

func (q *chanQueue) Enqueue(_ context.Context, p domain.WebhookPayload) error {
	q.items <- p
	return nil
}

func (q *chanQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.WebhookPayload, error) {
	select {
	case p := <-q.items:
		return p, nil
	case <-time.After(timeout):
		return domain.WebhookPayload{}, e.ErrWebHookEmpty
	case <-ctx.Done():
		return domain.WebhookPayload{}, ctx.Err()
	}
}

func testSender(url string, q WebhookQueue) *WebhookSender {
	s := NewWebhookSender(slog.New(slog.NewTextHandler(io.Discard, nil)), config.WebhookConfig{URL: url}, q)
	s.backoff = time.Millisecond
	return s
}

func changeEvent() domain.IncidentChangeEvent {
	inc := &domain.Incident{ID: uuid.New(), Status: domain.IncidentAssigned, Version: 3}
	return domain.NewChangeEvent(domain.IncidentActive, inc)
}

func TestWebhookSender_DeliversQueuedChange(t *testing.T) {
	got := make(chan domain.WebhookPayload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p domain.WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err == nil {
			got <- p
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	q := newChanQueue()
	ev := changeEvent()
	require.NoError(t, NewWebhookPublisher(q).Publish(context.Background(), ev))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go testSender(srv.URL, q).Run(ctx)

	select {
	case p := <-got:
		assert.Equal(t, ev.IncidentID, p.IncidentID)
		assert.Equal(t, domain.IncidentActive, p.PreviousStatus)
		assert.Equal(t, domain.IncidentAssigned, p.NewStatus)
		assert.Equal(t, int64(3), p.Version)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook not delivered")
	}
}

func TestWebhookSender_RetriesThenGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := testSender(srv.URL, newChanQueue())
	ok := s.sendWithRetry(context.Background(), domain.WebhookFromEvent(changeEvent()))

	assert.False(t, ok)
	assert.Equal(t, int32(s.maxRetries), calls.Load())
}

func TestWebhookSender_RecoversAfterFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ok := testSender(srv.URL, newChanQueue()).sendWithRetry(context.Background(), domain.WebhookFromEvent(changeEvent()))
	assert.True(t, ok)
	assert.Equal(t, int32(2), calls.Load())
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, domain.IncidentChangeEvent) error {
	return e.ErrInternal
}

type countingPublisher struct{ n atomic.Int32 }

func (c *countingPublisher) Publish(context.Context, domain.IncidentChangeEvent) error {
	c.n.Add(1)
	return nil
}

func TestPublishers_OneFailureDoesNotStopOthers(t *testing.T) {
	counter := &countingPublisher{}
	err := Publishers{failingPublisher{}, counter}.Publish(context.Background(), changeEvent())

	assert.ErrorIs(t, err, e.ErrInternal)
	assert.Equal(t, int32(1), counter.n.Load())
}
