package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"
	"swiftAid/pkg/validator"

	"github.com/google/uuid"
)

const activeCacheTTL = 10 * time.Minute

// IncidentService owns create/get/patch/list. It never writes status
// beyond the initial pending; transitions belong to Lifecycle.
type IncidentService struct {
	repo      IncidentRepository
	cache     IncidentCacheService
	publisher Publisher
	policy    domain.PriorityPolicy
	logger    *slog.Logger
	now       Clock
}

func NewIncidentService(repo IncidentRepository, cache IncidentCacheService, publisher Publisher, policy domain.PriorityPolicy, logger *slog.Logger) *IncidentService {
	if policy == nil {
		policy = domain.DefaultPriorityPolicy()
	}
	return &IncidentService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		policy:    policy,
		logger:    logger,
		now:       systemClock,
	}
}

func (s *IncidentService) WithClock(c Clock) *IncidentService {
	s.now = c
	return s
}

func (s *IncidentService) Create(ctx context.Context, actor domain.Actor, req domain.CreateIncidentRequest) (uuid.UUID, error) {
	const op = "service.Incident.Create"

	if actor.Role != domain.RoleCitizen && actor.Role != domain.RoleDispatcher {
		return uuid.Nil, e.Wrap(op, e.ErrForbidden)
	}
	if err := ValidateDraft(req); err != nil {
		s.logger.Warn("incident draft rejected", slog.String("op", op), slog.Any("error", err))
		return uuid.Nil, e.Wrap(op, err)
	}

	now := s.now()
	inc := &domain.Incident{
		ID:            uuid.New(),
		EmergencyType: req.EmergencyType,
		Priority:      s.policy.For(req.EmergencyType),
		Status:        domain.IncidentPending,
		Caller: domain.Caller{
			Name:        req.Caller.Name,
			Phone:       req.Caller.Phone,
			AltPhone:    req.Caller.AltPhone,
			Description: req.Caller.Description,
		},
		Location: domain.Location{
			Lat:         req.Location.Lat,
			Lng:         req.Location.Lng,
			Address:     req.Location.Address,
			Unavailable: req.Location.Unavailable,
		},
		OwnerID: actor.UserID,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Version: 1,
	}
	if req.Priority != nil {
		inc.Priority = *req.Priority
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		return uuid.Nil, e.Wrap(op, err)
	}

	s.logger.Info("incident created",
		slog.String("id", inc.ID.String()),
		slog.String("type", string(inc.EmergencyType)),
		slog.String("priority", string(inc.Priority)),
	)
	s.publish(ctx, domain.NewChangeEvent("", inc))
	return inc.ID, nil
}

// ValidateDraft checks caller info and location presence; it is also the
// guard for the submit transition.
func ValidateDraft(req domain.CreateIncidentRequest) error {
	if err := validator.ValidateStruct(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Caller.Name) == "" {
		return e.NewValidationError("caller.name", "is required")
	}
	if req.Location.Unavailable {
		if req.Location.Lat != nil || req.Location.Lng != nil {
			return e.NewValidationError("location", "coordinates must be omitted when marked unavailable")
		}
	} else if req.Location.Lat == nil || req.Location.Lng == nil {
		return e.NewValidationError("location", "coordinates are required unless marked unavailable")
	}
	return nil
}

func (s *IncidentService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Incident, error) {
	const op = "service.Incident.Get"

	inc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !actor.CanView(inc) {
		// Hide existence from actors who may not see the incident.
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	return inc, nil
}

// ApplyPatch writes non-status fields, conditional on expected status.
func (s *IncidentService) ApplyPatch(ctx context.Context, actor domain.Actor, id uuid.UUID, patch domain.IncidentPatch, expected *domain.IncidentStatus) (*domain.Incident, error) {
	const op = "service.Incident.ApplyPatch"

	if err := validator.ValidateStruct(patch); err != nil {
		return nil, e.Wrap(op, err)
	}
	if patch.Empty() {
		return nil, e.Wrap(op, e.NewValidationError("body", "no fields to update"))
	}
	if expected != nil && !expected.Valid() {
		return nil, e.Wrap(op, e.NewValidationError("expectedStatus", "unknown status"))
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if err := authorizePatch(actor, current, patch); err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := s.repo.Patch(ctx, id, patch, expected, s.now())
	if err != nil {
		s.logger.Warn("patch rejected",
			slog.String("op", op),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return nil, e.Wrap(op, err)
	}
	s.publish(ctx, domain.NewChangeEvent(updated.Status, updated))
	return updated, nil
}

func authorizePatch(actor domain.Actor, inc *domain.Incident, patch domain.IncidentPatch) error {
	switch actor.Role {
	case domain.RoleDispatcher:
		return nil
	case domain.RoleCitizen:
		if !actor.Owns(inc) {
			return e.ErrForbidden
		}
		if patch.Priority != nil || patch.AssignedHospitalID != nil {
			return e.ErrForbidden
		}
		return nil
	default:
		return e.ErrForbidden
	}
}

// ListActive never fails: on a read error it serves the cached snapshot,
// or nothing.
func (s *IncidentService) ListActive(ctx context.Context) []*domain.Incident {
	const op = "service.Incident.ListActive"

	items, err := s.repo.ListActive(ctx)
	if err == nil {
		sortByCreatedDesc(items)
		if s.cache != nil {
			if err := s.cache.SetActive(ctx, items, activeCacheTTL); err != nil {
				s.logger.Warn("cache.SetActive failed", slog.String("op", op), slog.Any("error", err))
			}
		}
		return items
	}

	s.logger.Error("listActive read failed, degrading", slog.String("op", op), slog.Any("error", err))
	if s.cache != nil {
		cached, cerr := s.cache.GetActive(ctx)
		if cerr == nil && cached != nil {
			sortByCreatedDesc(cached)
			return cached
		}
		if cerr != nil {
			s.logger.Warn("cache.GetActive failed", slog.String("op", op), slog.Any("error", cerr))
		}
	}
	return []*domain.Incident{}
}

func (s *IncidentService) publish(ctx context.Context, ev domain.IncidentChangeEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish change failed",
			slog.String("incident_id", ev.IncidentID.String()),
			slog.Any("error", err),
		)
	}
}

func sortByCreatedDesc(items []*domain.Incident) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamps.CreatedAt.After(items[j].Timestamps.CreatedAt)
	})
}
