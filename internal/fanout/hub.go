// Package fanout delivers committed incident changes to portal
// subscriptions on this instance.
package fanout

import (
	"context"
	"log/slog"
	"sync"

	"swiftAid/internal/domain"
	"swiftAid/internal/metrics"
)

type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		logger: logger,
	}
}

func (h *Hub) Subscribe(filter domain.SubscriptionFilter) *Subscription {
	sub := newSubscription(filter)

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	metrics.SubscriberOpened()
	h.logger.Debug("subscription opened", slog.String("role", string(filter.Role)))
	return sub
}

// Unsubscribe is idempotent and has no effect on incidents.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()

	if ok && sub.close() {
		metrics.SubscriberClosed()
	}
}

// Publish offers ev to every matching subscription. It never blocks on a
// subscriber and never fails.
func (h *Hub) Publish(_ context.Context, ev domain.IncidentChangeEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if sub.filter.Accepts(ev) {
			sub.offer(ev)
		}
	}
	return nil
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[*Subscription]struct{})
	h.mu.Unlock()

	for sub := range subs {
		if sub.close() {
			metrics.SubscriberClosed()
		}
	}
}
