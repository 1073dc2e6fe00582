package redis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"errors"
	"sync"
	"testing"
	"time"

	"swiftAid/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []domain.IncidentChangeEvent
}

func (s *recordingSink) Publish(_ context.Context, ev domain.IncidentChangeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func newTestRelay(sink Sink, resync ChangeSource) *EventRelay {
	return &EventRelay{
		origin:  "self",
		sink:    sink,
		resync:  resync,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		backoff: backoff{min: time.Millisecond, max: 8 * time.Millisecond},
	}
}

func payload(t *testing.T, origin string, ev domain.IncidentChangeEvent) string {
	t.Helper()
	b, err := json.Marshal(envelope{Origin: origin, Event: ev})
	require.NoError(t, err)
	return string(b)
}

func TestEventRelay_HandleSkipsOwnMessages(t *testing.T) {
	sink := &recordingSink{}
	r := newTestRelay(sink, nil)
	inc := &domain.Incident{ID: uuid.New(), Status: domain.IncidentActive, Version: 2}
	ev := domain.NewChangeEvent(domain.IncidentPending, inc)

	r.handle(context.Background(), payload(t, "self", ev))
	r.handle(context.Background(), payload(t, "other", ev))
	r.handle(context.Background(), "{not json")

	require.Len(t, sink.events, 1)
	assert.Equal(t, inc.ID, sink.events[0].IncidentID)
	assert.Equal(t, int64(2), sink.events[0].Version)
	assert.Equal(t, domain.IncidentPending, sink.events[0].PreviousStatus)
}

func TestEventRelay_ResyncReplaysChangedIncludingTerminal(t *testing.T) {
	sink := &recordingSink{}
	amb := "AMB-1"
	completed := &domain.Incident{ID: uuid.New(), Status: domain.IncidentCompleted, AssignedAmbulanceID: &amb, Version: 6}
	items := []*domain.Incident{
		{ID: uuid.New(), Status: domain.IncidentAssigned, Version: 4},
		completed,
	}
	lost := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var gotSince time.Time
	r := newTestRelay(sink, func(_ context.Context, since time.Time) ([]*domain.Incident, error) {
		gotSince = since
		return items, nil
	})

	r.resyncLocal(context.Background(), lost)

	assert.Equal(t, lost, gotSince)
	require.Len(t, sink.events, 2)
	assert.Equal(t, domain.IncidentAssigned, sink.events[0].NewStatus)
	assert.Equal(t, int64(4), sink.events[0].Version)

	last := sink.events[1]
	assert.True(t, last.Replayed)
	assert.Equal(t, domain.IncidentCompleted, last.NewStatus)
	assert.Equal(t, int64(6), last.Version)
	assert.True(t, domain.SubscriptionFilter{Role: domain.RoleDispatcher}.Accepts(last),
		"dispatchers must see a terminal state they missed while disconnected")
	assert.True(t, domain.SubscriptionFilter{Role: domain.RoleDriver, AmbulanceID: amb}.Accepts(last))
}

func TestEventRelay_ResyncErrorPublishesNothing(t *testing.T) {
	sink := &recordingSink{}
	r := newTestRelay(sink, func(context.Context, time.Time) ([]*domain.Incident, error) {
		return nil, errors.New("db down")
	})

	r.resyncLocal(context.Background(), time.Now())

	assert.Empty(t, sink.events)
}

func TestBackoff_ResetAfterConnect(t *testing.T) {
	b := backoff{min: 100 * time.Millisecond, max: 400 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, b.next())
	assert.Equal(t, 200*time.Millisecond, b.next())
	assert.Equal(t, 400*time.Millisecond, b.next())
	assert.Equal(t, 400*time.Millisecond, b.next(), "capped at max")

	b.reset()
	assert.Equal(t, 100*time.Millisecond, b.next())
}
