package fanout

import (
	"context"
	"errors"
	"sync"

	"swiftAid/internal/domain"
	"swiftAid/internal/metrics"

	"github.com/google/uuid"
)

var ErrClosed = errors.New("subscription closed")

// finishedRetain bounds how many terminal incidents a subscription keeps a
// delivered version for. Older ones are forgotten.
const finishedRetain = 1024

// Subscription is a coalescing mailbox: it holds at most one pending event
// per incident, the newest. Offers never block.
type Subscription struct {
	filter domain.SubscriptionFilter

	mu        sync.Mutex
	pending   map[uuid.UUID]domain.IncidentChangeEvent
	order     []uuid.UUID
	delivered map[uuid.UUID]int64
	finished  []uuid.UUID
	retain    int
	closed    bool

	notify chan struct{}
	done   chan struct{}
}

func newSubscription(filter domain.SubscriptionFilter) *Subscription {
	return &Subscription{
		filter:    filter,
		pending:   make(map[uuid.UUID]domain.IncidentChangeEvent),
		delivered: make(map[uuid.UUID]int64),
		retain:    finishedRetain,
		notify:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

func (s *Subscription) Filter() domain.SubscriptionFilter { return s.filter }

// Done is closed once the subscription is removed from its hub.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// offer queues ev unless an equal or newer version was already queued or
// delivered for the same incident.
func (s *Subscription) offer(ev domain.IncidentChangeEvent) {
	s.mu.Lock()
	if s.closed || ev.Version <= s.delivered[ev.IncidentID] {
		s.mu.Unlock()
		return
	}
	if cur, ok := s.pending[ev.IncidentID]; ok {
		if ev.Version <= cur.Version {
			s.mu.Unlock()
			return
		}
		s.pending[ev.IncidentID] = ev
		s.mu.Unlock()
		metrics.FanoutCoalesced()
		return
	}
	s.pending[ev.IncidentID] = ev
	s.order = append(s.order, ev.IncidentID)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Next blocks until an event is pending, ctx ends or the subscription is closed.
func (s *Subscription) Next(ctx context.Context) (domain.IncidentChangeEvent, error) {
	for {
		if ev, ok := s.pop(); ok {
			metrics.FanoutDelivered()
			return ev, nil
		}
		select {
		case <-ctx.Done():
			return domain.IncidentChangeEvent{}, ctx.Err()
		case <-s.done:
			if ev, ok := s.pop(); ok {
				return ev, nil
			}
			return domain.IncidentChangeEvent{}, ErrClosed
		case <-s.notify:
		}
	}
}

func (s *Subscription) pop() (domain.IncidentChangeEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return domain.IncidentChangeEvent{}, false
	}
	id := s.order[0]
	s.order = s.order[1:]
	ev := s.pending[id]
	delete(s.pending, id)
	s.delivered[id] = ev.Version
	if ev.NewStatus.Terminal() {
		s.forgetFinished(id)
	}
	return ev, true
}

// forgetFinished queues id as finished and drops the delivered version of
// the oldest finished incident once more than retain are held.
func (s *Subscription) forgetFinished(id uuid.UUID) {
	s.finished = append(s.finished, id)
	for len(s.finished) > s.retain {
		old := s.finished[0]
		s.finished = s.finished[1:]
		if _, queued := s.pending[old]; !queued {
			delete(s.delivered, old)
		}
	}
}

// MarkDelivered records versions sent outside the mailbox, such as an
// initial snapshot, so older events queued later are dropped.
func (s *Subscription) MarkDelivered(id uuid.UUID, version int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if version > s.delivered[id] {
		s.delivered[id] = version
	}
	if cur, ok := s.pending[id]; ok && cur.Version <= version {
		delete(s.pending, id)
		for i, qid := range s.order {
			if qid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Subscription) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.closed = true
	close(s.done)
	return true
}
