package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"swiftAid/internal/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const eventsChannel = "swiftaid:incident-events"

// Sink receives events relayed from other instances.
type Sink interface {
	Publish(ctx context.Context, ev domain.IncidentChangeEvent) error
}

// ChangeSource lists incidents updated at or after since, terminal ones
// included.
type ChangeSource func(ctx context.Context, since time.Time) ([]*domain.Incident, error)

// resyncSkew widens the replay window to cover clock drift between
// instances and the delay before a dropped connection is noticed.
const resyncSkew = 30 * time.Second

type envelope struct {
	Origin string                     `json:"origin"`
	Event  domain.IncidentChangeEvent `json:"event"`
}

// EventRelay shares change events between instances over pub/sub. Local
// events go straight to the sink and are also broadcast; messages that
// originated here are skipped on receipt.
type EventRelay struct {
	client  *goredis.Client
	channel string
	origin  string
	sink    Sink
	resync  ChangeSource
	logger  *slog.Logger
	now     func() time.Time

	backoff backoff
}

func NewEventRelay(r *Redis, sink Sink, resync ChangeSource, logger *slog.Logger) *EventRelay {
	return &EventRelay{
		client:  r.Client,
		channel: eventsChannel,
		origin:  uuid.NewString(),
		sink:    sink,
		resync:  resync,
		logger:  logger,
		now:     time.Now,
		backoff: backoff{min: 200 * time.Millisecond, max: 10 * time.Second},
	}
}

// Publish delivers locally first; a broadcast failure is logged and never
// reaches the caller.
func (r *EventRelay) Publish(ctx context.Context, ev domain.IncidentChangeEvent) error {
	_ = r.sink.Publish(ctx, ev)

	b, err := json.Marshal(envelope{Origin: r.origin, Event: ev})
	if err != nil {
		r.logger.Error("marshal relay event failed", slog.Any("error", err))
		return nil
	}
	if err := r.client.Publish(ctx, r.channel, b).Err(); err != nil {
		r.logger.Warn("relay publish failed",
			slog.String("incident_id", ev.IncidentID.String()),
			slog.Any("error", err),
		)
	}
	return nil
}

// Run consumes remote events until ctx ends, reconnecting with backoff.
// After a reconnect it replays every incident changed since the previous
// connection dropped.
func (r *EventRelay) Run(ctx context.Context) {
	r.logger.Info("eventRelay STARTED", slog.String("channel", r.channel))

	var lostAt time.Time
	for ctx.Err() == nil {
		connected, err := r.consume(ctx, lostAt)
		if ctx.Err() != nil {
			break
		}
		if connected {
			lostAt = r.now()
			r.backoff.reset()
		}
		wait := r.backoff.next()
		r.logger.Warn("relay connection lost", slog.Any("error", err), slog.Duration("retry_in", wait))

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.C:
		}
	}
	r.logger.Info("eventRelay STOPPED")
}

// consume reports whether the subscription was established before it failed.
func (r *EventRelay) consume(ctx context.Context, lostAt time.Time) (bool, error) {
	ps := r.client.Subscribe(ctx, r.channel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return false, err
	}
	if !lostAt.IsZero() {
		r.resyncLocal(ctx, lostAt.Add(-resyncSkew))
	}

	for {
		msg, err := ps.ReceiveMessage(ctx)
		if err != nil {
			return true, err
		}
		r.handle(ctx, msg.Payload)
	}
}

func (r *EventRelay) handle(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.logger.Warn("dropping malformed relay message", slog.Any("error", err))
		return
	}
	if env.Origin == r.origin || env.Event.IncidentSnapshot == nil {
		return
	}
	_ = r.sink.Publish(ctx, env.Event)
}

// resyncLocal replays current state of incidents changed since; subscriptions
// drop versions they already have.
func (r *EventRelay) resyncLocal(ctx context.Context, since time.Time) {
	if r.resync == nil {
		return
	}
	items, err := r.resync(ctx, since)
	if err != nil {
		r.logger.Warn("relay resync failed", slog.Time("since", since), slog.Any("error", err))
		return
	}
	for _, inc := range items {
		ev := domain.NewChangeEvent(inc.Status, inc)
		ev.Replayed = true
		_ = r.sink.Publish(ctx, ev)
	}
	r.logger.Info("relay resynced", slog.Time("since", since), slog.Int("incidents", len(items)))
}

type backoff struct {
	min, max time.Duration
	cur      time.Duration
}

// next returns the wait before the following attempt, doubling up to max.
func (b *backoff) next() time.Duration {
	if b.cur < b.min {
		b.cur = b.min
	}
	d := b.cur
	b.cur = min(b.cur*2, b.max)
	return d
}

func (b *backoff) reset() { b.cur = b.min }
