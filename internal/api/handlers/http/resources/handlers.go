// Package resources serves the hospital and driver portals: capacity
// counters and ambulance positions.
package resources

import (
	"context"
	"log/slog"
	"net/http"

	"swiftAid/internal/api/respond"
	"swiftAid/internal/domain"
	"swiftAid/internal/middleware"
	"swiftAid/pkg/e"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Hospitals interface {
	Get(ctx context.Context, id string) (*domain.Hospital, error)
	UpdateBeds(ctx context.Context, actor domain.Actor, id string, req domain.BedDeltaRequest) (*domain.Hospital, error)
	UpdateBlood(ctx context.Context, actor domain.Actor, id string, req domain.BloodDeltaRequest) (*domain.Hospital, error)
}

type Fleet interface {
	UpdatePosition(ctx context.Context, actor domain.Actor, id string, req domain.PositionRequest) (*domain.Ambulance, error)
}

type Handler struct {
	logger    *slog.Logger
	Hospitals Hospitals
	Fleet     Fleet
}

func NewHandler(logger *slog.Logger, hospitals Hospitals, fleet Fleet) *Handler {
	return &Handler{logger: logger, Hospitals: hospitals, Fleet: fleet}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) HospitalGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.actor(w, r); !ok {
		return
	}

	hosp, err := h.Hospitals.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, hosp)
}

func (h *Handler) HospitalBeds(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req domain.BedDeltaRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	hosp, err := h.Hospitals.UpdateBeds(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, hosp)
}

func (h *Handler) HospitalBlood(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req domain.BloodDeltaRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	hosp, err := h.Hospitals.UpdateBlood(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, hosp)
}

func (h *Handler) AmbulancePosition(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req domain.PositionRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	amb, err := h.Fleet.UpdatePosition(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, amb)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)
	l.Debug("request rejected",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	respond.Error(w, l, err)
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	a, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.handleError(w, r, e.ErrUnauthorized)
	}
	return a, ok
}
