// Package stream pushes incident changes to portals over WebSocket.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"swiftAid/internal/api/respond"
	"swiftAid/internal/domain"
	"swiftAid/internal/fanout"
	"swiftAid/internal/middleware"
	"swiftAid/pkg/e"

	"github.com/coder/websocket"
)

const writeTimeout = 10 * time.Second

type Hub interface {
	Subscribe(filter domain.SubscriptionFilter) *fanout.Subscription
	Unsubscribe(sub *fanout.Subscription)
}

type Snapshotter interface {
	ListActive(ctx context.Context) []*domain.Incident
}

type Message struct {
	Type      string                      `json:"type"`
	Incidents []*domain.Incident          `json:"incidents,omitempty"`
	Event     *domain.IncidentChangeEvent `json:"event,omitempty"`
}

const (
	TypeSnapshot = "snapshot"
	TypeChange   = "change"
)

type Handler struct {
	logger   *slog.Logger
	hub      Hub
	snapshot Snapshotter
	origins  []string
}

func NewHandler(logger *slog.Logger, hub Hub, snapshot Snapshotter, origins []string) *Handler {
	return &Handler{logger: logger, hub: hub, snapshot: snapshot, origins: origins}
}

// Subscribe upgrades the request, sends the actor's current incidents and
// then every matching change until either side goes away.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		respond.Error(w, h.logger, e.ErrUnauthorized)
		return
	}
	filter := domain.FilterFor(actor)
	l := h.logger.With(slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		l.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer ws.CloseNow()

	sub := h.hub.Subscribe(filter)
	defer h.hub.Unsubscribe(sub)

	// Portals only listen; CloseRead answers pings and ends ctx on close.
	ctx := ws.CloseRead(r.Context())

	snap := h.matching(ctx, filter)
	for _, inc := range snap {
		sub.MarkDelivered(inc.ID, inc.Version)
	}
	if err := h.write(ctx, ws, Message{Type: TypeSnapshot, Incidents: snap}); err != nil {
		l.Debug("snapshot write failed", slog.Any("error", err))
		return
	}
	l.Info("subscriber attached", slog.Int("snapshot", len(snap)))

	for {
		ev, err := sub.Next(ctx)
		if err != nil {
			if errors.Is(err, fanout.ErrClosed) {
				ws.Close(websocket.StatusGoingAway, "server shutting down")
			}
			l.Debug("subscriber detached", slog.Any("reason", err))
			return
		}
		if err := h.write(ctx, ws, Message{Type: TypeChange, Event: &ev}); err != nil {
			l.Debug("change write failed", slog.Any("error", err))
			return
		}
	}
}

func (h *Handler) matching(ctx context.Context, filter domain.SubscriptionFilter) []*domain.Incident {
	all := h.snapshot.ListActive(ctx)
	out := make([]*domain.Incident, 0, len(all))
	for _, inc := range all {
		if filter.Matches(inc.Status, inc) {
			out = append(out, inc)
		}
	}
	return out
}

func (h *Handler) write(ctx context.Context, ws *websocket.Conn, msg Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return ws.Write(ctx, websocket.MessageText, b)
}
