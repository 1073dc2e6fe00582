package memory

import (
	"context"
	"sort"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"
)

func (s *Store) CreateAmbulance(ctx context.Context, a *domain.Ambulance) error {
	const op = "memory.CreateAmbulance"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ambulances[a.ID]; ok {
		return e.Wrap(op, e.ErrConflict)
	}
	s.ambulances[a.ID] = a.Clone()
	return nil
}

func (s *Store) GetAmbulance(ctx context.Context, id string) (*domain.Ambulance, error) {
	const op = "memory.GetAmbulance"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.ambulances[id]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	return a.Clone(), nil
}

func (s *Store) ListAmbulances(ctx context.Context) ([]*domain.Ambulance, error) {
	return s.listAmbulances(ctx, "memory.ListAmbulances", func(*domain.Ambulance) bool { return true })
}

func (s *Store) ListAvailableAmbulances(ctx context.Context) ([]*domain.Ambulance, error) {
	return s.listAmbulances(ctx, "memory.ListAvailableAmbulances", func(a *domain.Ambulance) bool {
		return a.CurrentStatus == domain.AmbulanceAvailable && a.CurrentIncidentID == nil
	})
}

func (s *Store) listAmbulances(ctx context.Context, op string, keep func(*domain.Ambulance) bool) ([]*domain.Ambulance, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Ambulance, 0, len(s.ambulances))
	for _, a := range s.ambulances {
		if keep(a) {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateAmbulancePosition(ctx context.Context, id string, lat, lng float64, at time.Time) (*domain.Ambulance, error) {
	const op = "memory.UpdateAmbulancePosition"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.ambulances[id]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	a.Lat, a.Lng = &lat, &lng
	a.UpdatedAt = at
	return a.Clone(), nil
}
