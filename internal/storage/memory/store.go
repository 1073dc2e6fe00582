// Package memory is an in-process store with the same conditional
// semantics as the Postgres driver. All state sits behind one mutex, so
// every operation is a transaction.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/internal/service"
	"swiftAid/pkg/e"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	incidents  map[uuid.UUID]*domain.Incident
	ambulances map[string]*domain.Ambulance
	hospitals  map[string]*domain.Hospital
}

var (
	_ service.Storage            = (*Store)(nil)
	_ service.IncidentRepository = (*Store)(nil)
	_ service.FleetRepository    = (*Store)(nil)
	_ service.HospitalRepository = (*Store)(nil)
)

func New() *Store {
	return &Store{
		incidents:  make(map[uuid.UUID]*domain.Incident),
		ambulances: make(map[string]*domain.Ambulance),
		hospitals:  make(map[string]*domain.Hospital),
	}
}

func (s *Store) Incidents() service.IncidentRepository { return s }
func (s *Store) Fleet() service.FleetRepository        { return s }
func (s *Store) Hospitals() service.HospitalRepository { return s }

func (s *Store) Create(ctx context.Context, inc *domain.Incident) error {
	const op = "memory.Create"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.incidents[inc.ID]; ok {
		return e.Wrap(op, e.ErrConflict)
	}
	s.incidents[inc.ID] = inc.Clone()
	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "memory.Get"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	return inc.Clone(), nil
}

func (s *Store) Patch(ctx context.Context, id uuid.UUID, patch domain.IncidentPatch, expected *domain.IncidentStatus, at time.Time) (*domain.Incident, error) {
	const op = "memory.Patch"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[id]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	if expected != nil && inc.Status != *expected {
		return nil, e.Wrap(op, e.ErrStatusChanged)
	}
	if patch.AssignedHospitalID != nil {
		if _, ok := s.hospitals[*patch.AssignedHospitalID]; !ok {
			return nil, e.Wrap(op, e.NewValidationError("assignedHospitalId", "unknown hospital"))
		}
	}

	next := inc.Clone()
	patch.Apply(next)
	next.Timestamps.UpdatedAt = at
	next.Version++
	s.incidents[id] = next
	return next.Clone(), nil
}

func (s *Store) ListActive(ctx context.Context) ([]*domain.Incident, error) {
	const op = "memory.ListActive"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Incident, 0, len(s.incidents))
	for _, inc := range s.incidents {
		if !inc.Status.Terminal() {
			out = append(out, inc.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamps.CreatedAt.After(out[j].Timestamps.CreatedAt)
	})
	return out, nil
}

func (s *Store) ListChangedSince(ctx context.Context, since time.Time) ([]*domain.Incident, error) {
	const op = "memory.ListChangedSince"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Incident, 0)
	for _, inc := range s.incidents {
		if !inc.Timestamps.UpdatedAt.Before(since) {
			out = append(out, inc.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamps.UpdatedAt.Before(out[j].Timestamps.UpdatedAt)
	})
	return out, nil
}

func (s *Store) Transition(ctx context.Context, change domain.StatusChange) (*domain.Incident, error) {
	const op = "memory.Transition"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[change.IncidentID]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	if inc.Status != change.From {
		return nil, e.Wrap(op, e.ErrStatusChanged)
	}

	next := inc.Clone()
	change.ApplyTo(next)

	if amb := s.ambulanceOf(inc); amb != nil {
		switch {
		case change.ReleaseAmbulance:
			amb.CurrentStatus = domain.AmbulanceAvailable
			amb.CurrentIncidentID = nil
			amb.UpdatedAt = change.At
		case change.AmbulanceStatus != "":
			amb.CurrentStatus = change.AmbulanceStatus
			amb.UpdatedAt = change.At
		}
	}
	s.incidents[next.ID] = next
	return next.Clone(), nil
}

// ambulanceOf returns the ambulance still bound to inc, if any.
func (s *Store) ambulanceOf(inc *domain.Incident) *domain.Ambulance {
	if inc.AssignedAmbulanceID == nil {
		return nil
	}
	amb, ok := s.ambulances[*inc.AssignedAmbulanceID]
	if !ok || amb.CurrentIncidentID == nil || *amb.CurrentIncidentID != inc.ID {
		return nil
	}
	return amb
}

func (s *Store) CommitAssignment(ctx context.Context, commit domain.AssignmentCommit) (*domain.Incident, error) {
	const op = "memory.CommitAssignment"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, ok := s.incidents[commit.IncidentID]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	if inc.Status != commit.From {
		return nil, e.Wrap(op, e.ErrStatusChanged)
	}
	amb, ok := s.ambulances[commit.AmbulanceID]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	if amb.CurrentStatus != domain.AmbulanceAvailable || amb.CurrentIncidentID != nil {
		return nil, e.Wrap(op, e.ErrAmbulanceUnavailable)
	}

	incID := inc.ID
	amb.CurrentStatus = domain.AmbulanceOnDuty
	amb.CurrentIncidentID = &incID
	amb.UpdatedAt = commit.At

	next := inc.Clone()
	ambID := commit.AmbulanceID
	next.AssignedAmbulanceID = &ambID
	domain.StatusChange{
		IncidentID: inc.ID,
		From:       commit.From,
		To:         domain.IncidentAssigned,
		At:         commit.At,
	}.ApplyTo(next)
	s.incidents[next.ID] = next
	return next.Clone(), nil
}

func (s *Store) CountByStatus(ctx context.Context, since time.Time) (map[domain.IncidentStatus]int64, error) {
	const op = "memory.CountByStatus"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.IncidentStatus]int64)
	for _, inc := range s.incidents {
		if !inc.Timestamps.CreatedAt.Before(since) {
			out[inc.Status]++
		}
	}
	return out, nil
}
