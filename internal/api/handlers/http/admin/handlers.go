// Package admin serves operator routes behind the API key: registering
// ambulances and hospitals.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"swiftAid/internal/api/respond"
	"swiftAid/internal/domain"
	"swiftAid/internal/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type FleetRegistry interface {
	Register(ctx context.Context, req domain.CreateAmbulanceRequest) (*domain.Ambulance, error)
	List(ctx context.Context) ([]*domain.Ambulance, error)
}

type HospitalRegistry interface {
	Create(ctx context.Context, req domain.CreateHospitalRequest) (*domain.Hospital, error)
	List(ctx context.Context) ([]*domain.Hospital, error)
}

type Handler struct {
	logger    *slog.Logger
	Fleet     FleetRegistry
	Hospitals HospitalRegistry
}

func NewHandler(logger *slog.Logger, fleet FleetRegistry, hospitals HospitalRegistry) *Handler {
	return &Handler{
		logger:    logger,
		Fleet:     fleet,
		Hospitals: hospitals,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AmbulanceCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AmbulanceCreate", slog.String("remote", r.RemoteAddr))

	var req domain.CreateAmbulanceRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		l.Warn("invalid ambulance", slog.Any("error", err))
		h.handleError(w, r, err)
		return
	}

	a, err := h.Fleet.Register(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("ambulance created", slog.String("id", a.ID))
	h.writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) AmbulanceList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Fleet.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"ambulances": items,
		"total":      len(items),
	})
}

func (h *Handler) HospitalCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("HospitalCreate", slog.String("remote", r.RemoteAddr))

	var req domain.CreateHospitalRequest
	if err := middleware.Bind(w, r, &req); err != nil {
		l.Warn("invalid hospital", slog.Any("error", err))
		h.handleError(w, r, err)
		return
	}

	hosp, err := h.Hospitals.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("hospital created", slog.String("id", hosp.ID))
	h.writeJSON(w, http.StatusCreated, hosp)
}

func (h *Handler) HospitalList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Hospitals.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hospitals": items,
		"total":     len(items),
	})
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	l.Error("handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	respond.Error(w, l, err)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	respond.JSON(w, h.logger, code, v)
}
