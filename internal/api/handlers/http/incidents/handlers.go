package incidents

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"swiftAid/internal/domain"
	"swiftAid/internal/middleware"
	"swiftAid/pkg/e"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Incidents interface {
	Create(ctx context.Context, actor domain.Actor, req domain.CreateIncidentRequest) (uuid.UUID, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Incident, error)
	ApplyPatch(ctx context.Context, actor domain.Actor, id uuid.UUID, patch domain.IncidentPatch, expected *domain.IncidentStatus) (*domain.Incident, error)
	ListActive(ctx context.Context) []*domain.Incident
}

type Lifecycle interface {
	Fire(ctx context.Context, actor domain.Actor, id uuid.UUID, event domain.Event) (*domain.Incident, error)
	Assign(ctx context.Context, actor domain.Actor, id uuid.UUID, req domain.AssignRequest) (*domain.AssignmentResult, error)
}

type StatsGetter interface {
	GetStats(ctx context.Context, actor domain.Actor, req domain.StatsRequest) (*domain.IncidentStats, error)
}

type Handler struct {
	logger    *slog.Logger
	Incidents Incidents
	Lifecycle Lifecycle
	Stats     StatsGetter
}

func NewHandler(logger *slog.Logger, incidents Incidents, lifecycle Lifecycle, stats StatsGetter) *Handler {
	return &Handler{
		logger:    logger,
		Incidents: incidents,
		Lifecycle: lifecycle,
		Stats:     stats,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req domain.CreateIncidentRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		l.Warn("invalid incident draft", slog.Any("error", err))
		h.handleError(w, r, err)
		return
	}

	id, err := h.Incidents.Create(r.Context(), actor, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incident created", slog.String("id", id.String()), slog.String("actor", actor.UserID))
	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if actor.Role != domain.RoleDispatcher {
		h.handleError(w, r, e.ErrForbidden)
		return
	}

	items := h.Incidents.ListActive(r.Context())
	h.writeJSON(w, http.StatusOK, map[string]any{
		"incidents": items,
		"total":     len(items),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	inc, err := h.Incidents.Get(r.Context(), actor, id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, inc)
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	var req domain.PatchIncidentRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	inc, err := h.Incidents.ApplyPatch(r.Context(), actor, id, req.IncidentPatch, req.ExpectedStatus)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, inc)
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	var req domain.AssignRequest
	if r.ContentLength != 0 {
		if err := middleware.Bind(w, r, &req); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	res, err := h.Lifecycle.Assign(r.Context(), actor, id, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("assignment committed",
		slog.String("incident_id", id.String()),
		slog.String("ambulance_id", res.AmbulanceID),
	)
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	var req domain.TransitionRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	inc, err := h.Lifecycle.Fire(r.Context(), actor, id, req.Event)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, inc)
}

func (h *Handler) DispatcherStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	minutes := 60
	if s := r.URL.Query().Get("minutes"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			h.handleError(w, r, e.NewValidationError("minutes", "must be an integer"))
			return
		}
		minutes = n
	}
	req := domain.StatsRequest{Minutes: minutes}
	if minutes <= 0 || minutes > 1440 {
		h.handleError(w, r, e.NewValidationError("minutes", "must be 1-1440"))
		return
	}

	stats, err := h.Stats.GetStats(r.Context(), actor, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Debug("stats served", slog.Int("minutes", minutes), slog.Int64("total", stats.Total))
	h.writeJSON(w, http.StatusOK, stats)
}
