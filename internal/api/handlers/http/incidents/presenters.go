package incidents

import (
	"log/slog"
	"net/http"

	"swiftAid/internal/api/respond"
	"swiftAid/internal/domain"
	"swiftAid/internal/middleware"
	"swiftAid/pkg/e"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	if respond.Status(err) >= http.StatusInternalServerError {
		l.Error("handler error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	} else {
		l.Debug("request rejected", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	respond.Error(w, l, err)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	respond.JSON(w, h.logger, code, v)
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	a, ok := middleware.ActorFrom(r.Context())
	if !ok {
		h.handleError(w, r, e.ErrUnauthorized)
	}
	return a, ok
}

func (h *Handler) incidentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", raw))
		h.handleError(w, r, e.NewValidationError("id", "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
