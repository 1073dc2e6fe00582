package fanout

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"swiftAid/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func event(id uuid.UUID, prev, next domain.IncidentStatus, version int64, mutate ...func(*domain.Incident)) domain.IncidentChangeEvent {
	inc := &domain.Incident{ID: id, Status: next, OwnerID: "citizen-1", Version: version}
	for _, m := range mutate {
		m(inc)
	}
	return domain.NewChangeEvent(prev, inc)
}

func nextWithin(t *testing.T, sub *Subscription) domain.IncidentChangeEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ev, err := sub.Next(ctx)
	require.NoError(t, err)
	return ev
}

func assertEmpty(t *testing.T, sub *Subscription) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHub_CoalescesToLatest(t *testing.T) {
	h := NewHub(testLogger())
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})
	id := uuid.New()

	require.NoError(t, h.Publish(context.Background(), event(id, "", domain.IncidentPending, 1)))
	require.NoError(t, h.Publish(context.Background(), event(id, domain.IncidentPending, domain.IncidentActive, 2)))
	require.NoError(t, h.Publish(context.Background(), event(id, domain.IncidentActive, domain.IncidentAssigned, 3)))

	ev := nextWithin(t, sub)
	assert.Equal(t, int64(3), ev.Version)
	assert.Equal(t, domain.IncidentAssigned, ev.NewStatus)
	assertEmpty(t, sub)
}

func TestHub_NeverRegressesVersion(t *testing.T) {
	h := NewHub(testLogger())
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})
	id := uuid.New()

	_ = h.Publish(context.Background(), event(id, domain.IncidentPending, domain.IncidentActive, 2))
	assert.Equal(t, int64(2), nextWithin(t, sub).Version)

	_ = h.Publish(context.Background(), event(id, "", domain.IncidentPending, 1))
	assertEmpty(t, sub)

	_ = h.Publish(context.Background(), event(id, domain.IncidentActive, domain.IncidentAssigned, 3))
	assert.Equal(t, int64(3), nextWithin(t, sub).Version)
}

func TestHub_PreservesOrderAcrossIncidents(t *testing.T) {
	h := NewHub(testLogger())
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})
	a, b := uuid.New(), uuid.New()

	_ = h.Publish(context.Background(), event(a, "", domain.IncidentPending, 1))
	_ = h.Publish(context.Background(), event(b, "", domain.IncidentPending, 1))

	assert.Equal(t, a, nextWithin(t, sub).IncidentID)
	assert.Equal(t, b, nextWithin(t, sub).IncidentID)
}

func TestHub_Filters(t *testing.T) {
	h := NewHub(testLogger())
	ctx := context.Background()
	owner := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleCitizen, OwnerID: "citizen-1"})
	stranger := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleCitizen, OwnerID: "citizen-2"})
	driver := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDriver, AmbulanceID: "AMB-01"})
	hospital := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleHospital, HospitalID: "H-1"})
	dispatcher := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})

	id := uuid.New()
	amb, hosp := "AMB-01", "H-1"
	_ = h.Publish(ctx, event(id, domain.IncidentActive, domain.IncidentAssigned, 3, func(inc *domain.Incident) {
		inc.AssignedAmbulanceID = &amb
		inc.AssignedHospitalID = &hosp
	}))

	for _, sub := range []*Subscription{owner, driver, hospital, dispatcher} {
		assert.Equal(t, id, nextWithin(t, sub).IncidentID)
	}
	assertEmpty(t, stranger)
}

func TestHub_DispatcherSeesFinalTransitionOnly(t *testing.T) {
	h := NewHub(testLogger())
	ctx := context.Background()
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})
	id := uuid.New()

	_ = h.Publish(ctx, event(id, domain.IncidentDispatched, domain.IncidentCompleted, 5))
	assert.Equal(t, domain.IncidentCompleted, nextWithin(t, sub).NewStatus)

	// A later patch on a terminal incident is not dispatcher traffic.
	_ = h.Publish(ctx, event(id, domain.IncidentCompleted, domain.IncidentCompleted, 6))
	assertEmpty(t, sub)
}

func TestHub_UnsubscribeEndsNext(t *testing.T) {
	h := NewHub(testLogger())
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})

	h.Unsubscribe(sub)
	h.Unsubscribe(sub)

	_, err := sub.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 0, h.Len())

	_ = h.Publish(context.Background(), event(uuid.New(), "", domain.IncidentPending, 1))
}

func TestHub_PublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	h := NewHub(testLogger())
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})
	id := uuid.New()

	done := make(chan struct{})
	go func() {
		for v := int64(1); v <= 10000; v++ {
			_ = h.Publish(context.Background(), event(id, domain.IncidentPending, domain.IncidentActive, v))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("publisher blocked on an idle subscriber")
	}
	assert.Equal(t, int64(10000), nextWithin(t, sub).Version)
}

func TestHub_ConcurrentPublishersMonotonic(t *testing.T) {
	h := NewHub(testLogger())
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})
	id := uuid.New()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for v := int64(w + 1); v <= 400; v += 4 {
				_ = h.Publish(context.Background(), event(id, domain.IncidentPending, domain.IncidentActive, v))
			}
		}(w)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var seen []int64
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			ev, err := sub.Next(ctx)
			if err != nil {
				return
			}
			seen = append(seen, ev.Version)
		}
	}()

	wg.Wait()
	require.Eventually(t, func() bool {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return sub.delivered[id] == 400
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-readerDone

	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1])
	}
}

func TestSubscription_MarkDeliveredDropsOlderPending(t *testing.T) {
	h := NewHub(testLogger())
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})
	id := uuid.New()

	_ = h.Publish(context.Background(), event(id, domain.IncidentPending, domain.IncidentActive, 2))
	sub.MarkDelivered(id, 2)
	assertEmpty(t, sub)

	_ = h.Publish(context.Background(), event(id, domain.IncidentActive, domain.IncidentAssigned, 3))
	assert.Equal(t, int64(3), nextWithin(t, sub).Version)
}

func TestSubscription_ForgetsFinishedIncidents(t *testing.T) {
	h := NewHub(testLogger())
	ctx := context.Background()
	sub := h.Subscribe(domain.SubscriptionFilter{Role: domain.RoleDispatcher})
	sub.retain = 2

	live := uuid.New()
	_ = h.Publish(ctx, event(live, domain.IncidentPending, domain.IncidentActive, 2))
	nextWithin(t, sub)

	for i := 0; i < 10; i++ {
		_ = h.Publish(ctx, event(uuid.New(), domain.IncidentDispatched, domain.IncidentCompleted, 5))
		nextWithin(t, sub)
	}

	sub.mu.Lock()
	defer sub.mu.Unlock()
	assert.Len(t, sub.delivered, 3, "live incident plus the two most recent finished ones")
	assert.Equal(t, int64(2), sub.delivered[live])
	assert.Len(t, sub.finished, 2)
}
