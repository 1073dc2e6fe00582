package service

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"swiftAid/internal/domain"
	"swiftAid/internal/metrics"
	"swiftAid/pkg/e"

	"github.com/google/uuid"
)

const defaultAssignAttempts = 3

type transition struct {
	from []domain.IncidentStatus
	to   domain.IncidentStatus
}

func (t transition) allows(s domain.IncidentStatus) bool {
	for _, f := range t.from {
		if f == s {
			return true
		}
	}
	return false
}

// dispatcherAssign also accepts pending: a pending incident already passed
// draft validation at create time.
var transitions = map[domain.Event]transition{
	domain.EventSubmit: {
		from: []domain.IncidentStatus{domain.IncidentPending},
		to:   domain.IncidentActive,
	},
	domain.EventDispatcherAssign: {
		from: []domain.IncidentStatus{domain.IncidentPending, domain.IncidentActive},
		to:   domain.IncidentAssigned,
	},
	domain.EventDriverAccept: {
		from: []domain.IncidentStatus{domain.IncidentAssigned},
		to:   domain.IncidentDispatched,
	},
	domain.EventDriverComplete: {
		from: []domain.IncidentStatus{domain.IncidentDispatched},
		to:   domain.IncidentCompleted,
	},
	domain.EventCancel: {
		from: []domain.IncidentStatus{
			domain.IncidentPending, domain.IncidentActive,
			domain.IncidentAssigned, domain.IncidentDispatched,
		},
		to: domain.IncidentCancelled,
	},
}

// Lifecycle is the incident state machine and the only writer of status.
type Lifecycle struct {
	repo        IncidentRepository
	resolver    *Resolver
	publisher   Publisher
	logger      *slog.Logger
	now         Clock
	maxAttempts int
}

func NewLifecycle(repo IncidentRepository, resolver *Resolver, publisher Publisher, logger *slog.Logger, maxAttempts int) *Lifecycle {
	if maxAttempts <= 0 {
		maxAttempts = defaultAssignAttempts
	}
	return &Lifecycle{
		repo:        repo,
		resolver:    resolver,
		publisher:   publisher,
		logger:      logger,
		now:         systemClock,
		maxAttempts: maxAttempts,
	}
}

func (l *Lifecycle) WithClock(c Clock) *Lifecycle {
	l.now = c
	return l
}

// Fire applies event to the incident on behalf of actor.
func (l *Lifecycle) Fire(ctx context.Context, actor domain.Actor, id uuid.UUID, event domain.Event) (*domain.Incident, error) {
	const op = "service.Lifecycle.Fire"

	if event == domain.EventDispatcherAssign {
		res, err := l.Assign(ctx, actor, id, domain.AssignRequest{})
		if err != nil {
			return nil, err
		}
		return res.Incident, nil
	}

	t, ok := transitions[event]
	if !ok {
		return nil, e.Wrap(op, e.NewValidationError("event", "unknown event"))
	}
	if err := roleMayFire(actor, event); err != nil {
		l.observe(event, err)
		return nil, e.Wrap(op, err)
	}

	inc, err := l.repo.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Ownership first: the state of an incident is not revealed to actors
	// who may not act on it.
	if err := l.authorize(ctx, actor, event, inc); err != nil {
		l.observe(event, err)
		return nil, e.Wrap(op, err)
	}
	if !t.allows(inc.Status) {
		err := &e.TransitionError{From: string(inc.Status), Event: string(event)}
		l.observe(event, err)
		return nil, e.Wrap(op, err)
	}
	if err := guard(event, inc); err != nil {
		l.observe(event, err)
		return nil, e.Wrap(op, err)
	}

	change := domain.StatusChange{
		IncidentID: inc.ID,
		From:       inc.Status,
		To:         t.to,
		At:         l.now(),
	}
	switch event {
	case domain.EventDriverAccept:
		change.AmbulanceStatus = domain.AmbulanceOnRoute
	case domain.EventDriverComplete:
		change.ReleaseAmbulance = true
	case domain.EventCancel:
		change.ReleaseAmbulance = inc.AssignedAmbulanceID != nil
	}

	updated, err := l.repo.Transition(ctx, change)
	if err != nil {
		l.observe(event, err)
		l.logger.Warn("transition rejected by store",
			slog.String("op", op),
			slog.String("incident_id", id.String()),
			slog.String("event", string(event)),
			slog.Any("error", err),
		)
		return nil, e.Wrap(op, err)
	}

	l.observe(event, nil)
	l.logger.Info("incident transitioned",
		slog.String("incident_id", id.String()),
		slog.String("event", string(event)),
		slog.String("from", string(change.From)),
		slog.String("to", string(change.To)),
		slog.String("actor", actor.UserID),
	)
	l.publish(ctx, domain.NewChangeEvent(change.From, updated))
	return updated, nil
}

// Assign runs the resolver and commits the claim. Lost claims are retried
// against fresh state up to maxAttempts; an incident assigned meanwhile by
// someone else is reported as a conflict.
func (l *Lifecycle) Assign(ctx context.Context, actor domain.Actor, id uuid.UUID, req domain.AssignRequest) (*domain.AssignmentResult, error) {
	const op = "service.Lifecycle.Assign"
	event := domain.EventDispatcherAssign

	if err := roleMayFire(actor, event); err != nil {
		l.observe(event, err)
		return nil, e.Wrap(op, err)
	}

	res, err := l.assignAmbulance(ctx, id)
	l.observe(event, err)
	metrics.ObserveAssignment(err)

	if req.WithHospital {
		res = l.assignHospital(ctx, id, res)
	}
	if err != nil {
		l.logger.Warn("assignment failed",
			slog.String("op", op),
			slog.String("incident_id", id.String()),
			slog.Any("error", err),
		)
		return res, e.Wrap(op, err)
	}

	l.logger.Info("ambulance assigned",
		slog.String("incident_id", id.String()),
		slog.String("ambulance_id", res.AmbulanceID),
		slog.String("actor", actor.UserID),
	)
	return res, nil
}

func (l *Lifecycle) assignAmbulance(ctx context.Context, id uuid.UUID) (*domain.AssignmentResult, error) {
	t := transitions[domain.EventDispatcherAssign]

	var lastErr error
	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		inc, err := l.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		switch {
		case inc.Status == domain.IncidentAssigned || inc.Status == domain.IncidentDispatched:
			// Another dispatcher won the race for this incident.
			return nil, e.ErrStatusChanged
		case !t.allows(inc.Status):
			return nil, &e.TransitionError{From: string(inc.Status), Event: string(domain.EventDispatcherAssign)}
		}

		candidates, err := l.resolver.RankAmbulances(ctx, inc)
		if err != nil {
			return nil, err
		}

		for _, c := range candidates {
			updated, err := l.repo.CommitAssignment(ctx, domain.AssignmentCommit{
				IncidentID:  inc.ID,
				From:        inc.Status,
				AmbulanceID: c.AmbulanceID,
				At:          l.now(),
			})
			if err == nil {
				l.publish(ctx, domain.NewChangeEvent(inc.Status, updated))
				dist := c.DistanceKM
				res := &domain.AssignmentResult{
					IncidentID:  inc.ID,
					AmbulanceID: c.AmbulanceID,
					Incident:    updated,
				}
				if !math.IsInf(dist, 1) {
					res.DistanceKM = &dist
				}
				return res, nil
			}
			lastErr = err
			if errors.Is(err, e.ErrAmbulanceUnavailable) {
				// Claimed between ranking and commit; the next candidate is still fair game.
				continue
			}
			break
		}
		if !e.Retryable(lastErr) {
			return nil, lastErr
		}
		l.logger.Debug("assignment conflict, retrying",
			slog.String("incident_id", id.String()),
			slog.Int("attempt", attempt),
			slog.Any("error", lastErr),
		)
	}
	return nil, lastErr
}

// assignHospital is independent of the ambulance outcome; failures are
// logged and leave res unchanged.
func (l *Lifecycle) assignHospital(ctx context.Context, id uuid.UUID, res *domain.AssignmentResult) *domain.AssignmentResult {
	inc, err := l.repo.Get(ctx, id)
	if err != nil || inc.Status.Terminal() {
		return res
	}
	h, err := l.resolver.NearestHospital(ctx, inc)
	if err != nil {
		l.logger.Warn("hospital selection failed", slog.String("incident_id", id.String()), slog.Any("error", err))
		return res
	}
	if h == nil {
		l.logger.Warn("no hospital with free beds", slog.String("incident_id", id.String()))
		return res
	}

	hid := h.ID
	expected := inc.Status
	updated, err := l.repo.Patch(ctx, id, domain.IncidentPatch{AssignedHospitalID: &hid}, &expected, l.now())
	if err != nil {
		l.logger.Warn("hospital patch failed", slog.String("incident_id", id.String()), slog.Any("error", err))
		return res
	}
	l.publish(ctx, domain.NewChangeEvent(updated.Status, updated))

	if res == nil {
		res = &domain.AssignmentResult{IncidentID: id}
	}
	res.HospitalID = &hid
	res.Incident = updated
	return res
}

func roleMayFire(actor domain.Actor, event domain.Event) error {
	switch event {
	case domain.EventSubmit, domain.EventCancel:
		if actor.Role == domain.RoleCitizen || actor.Role == domain.RoleDispatcher {
			return nil
		}
	case domain.EventDispatcherAssign:
		if actor.Role == domain.RoleDispatcher {
			return nil
		}
	case domain.EventDriverAccept, domain.EventDriverComplete:
		if actor.Role == domain.RoleDriver {
			return nil
		}
	}
	return e.ErrForbidden
}

// authorize checks that actor may fire event on this particular incident.
func (l *Lifecycle) authorize(ctx context.Context, actor domain.Actor, event domain.Event, inc *domain.Incident) error {
	switch event {
	case domain.EventSubmit, domain.EventCancel:
		if actor.Role == domain.RoleCitizen && !actor.Owns(inc) {
			return e.ErrForbidden
		}
	case domain.EventDriverAccept, domain.EventDriverComplete:
		if !actor.DrivesAssigned(inc) {
			return e.ErrForbidden
		}
		return l.checkDriver(ctx, actor)
	}
	return nil
}

// checkDriver confirms the ambulance named in the token is registered to
// the same user.
func (l *Lifecycle) checkDriver(ctx context.Context, actor domain.Actor) error {
	amb, err := l.resolver.fleet.GetAmbulance(ctx, actor.AmbulanceID)
	if errors.Is(err, e.ErrNotFound) {
		return e.ErrForbidden
	}
	if err != nil {
		return err
	}
	if amb.DriverID != actor.UserID {
		return e.ErrForbidden
	}
	return nil
}

// guard holds the state-dependent preconditions checked after authorization.
func guard(event domain.Event, inc *domain.Incident) error {
	if event == domain.EventSubmit {
		return ValidateDraft(draftOf(inc))
	}
	return nil
}

func draftOf(inc *domain.Incident) domain.CreateIncidentRequest {
	return domain.CreateIncidentRequest{
		EmergencyType: inc.EmergencyType,
		Caller: domain.CallerInput{
			Name:        inc.Caller.Name,
			Phone:       inc.Caller.Phone,
			AltPhone:    inc.Caller.AltPhone,
			Description: inc.Caller.Description,
		},
		Location: domain.LocationInput{
			Lat:         inc.Location.Lat,
			Lng:         inc.Location.Lng,
			Address:     inc.Location.Address,
			Unavailable: inc.Location.Unavailable,
		},
	}
}

func (l *Lifecycle) publish(ctx context.Context, ev domain.IncidentChangeEvent) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, ev); err != nil {
		l.logger.Warn("publish change failed",
			slog.String("incident_id", ev.IncidentID.String()),
			slog.Any("error", err),
		)
	}
}

func (l *Lifecycle) observe(event domain.Event, err error) {
	metrics.ObserveTransition(string(event), err)
}
