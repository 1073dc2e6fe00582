package memory

import (
	"context"
	"sort"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"
)

func (s *Store) CreateHospital(ctx context.Context, h *domain.Hospital) error {
	const op = "memory.CreateHospital"
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hospitals[h.ID]; ok {
		return e.Wrap(op, e.ErrConflict)
	}
	s.hospitals[h.ID] = h.Clone()
	return nil
}

func (s *Store) GetHospital(ctx context.Context, id string) (*domain.Hospital, error) {
	const op = "memory.GetHospital"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.hospitals[id]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	return h.Clone(), nil
}

func (s *Store) ListHospitals(ctx context.Context) ([]*domain.Hospital, error) {
	const op = "memory.ListHospitals"
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Hospital, 0, len(s.hospitals))
	for _, h := range s.hospitals {
		out = append(out, h.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) AdjustBeds(ctx context.Context, id string, bed domain.BedType, delta int, at time.Time) (*domain.Hospital, error) {
	return s.adjust(ctx, "memory.AdjustBeds", id, at, func(h *domain.Hospital) {
		h.Beds[bed] = h.Beds[bed].Adjust(delta)
	})
}

func (s *Store) AdjustBlood(ctx context.Context, id string, blood domain.BloodType, delta int, at time.Time) (*domain.Hospital, error) {
	return s.adjust(ctx, "memory.AdjustBlood", id, at, func(h *domain.Hospital) {
		h.BloodInventory[blood] = domain.ClampNonNegative(h.BloodInventory[blood] + delta)
	})
}

func (s *Store) adjust(ctx context.Context, op, id string, at time.Time, apply func(*domain.Hospital)) (*domain.Hospital, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hospitals[id]
	if !ok {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	if h.Beds == nil {
		h.Beds = make(map[domain.BedType]domain.BedCounter)
	}
	if h.BloodInventory == nil {
		h.BloodInventory = make(map[domain.BloodType]int)
	}
	apply(h)
	h.UpdatedAt = at
	return h.Clone(), nil
}
