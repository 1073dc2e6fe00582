package service

import (
	"context"
	"log/slog"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"
	"swiftAid/pkg/validator"
)

// HospitalService manages capacity. Counter changes are relative deltas
// applied inside the store.
type HospitalService struct {
	repo   HospitalRepository
	logger *slog.Logger
	now    Clock
}

func NewHospitalService(repo HospitalRepository, logger *slog.Logger) *HospitalService {
	return &HospitalService{repo: repo, logger: logger, now: systemClock}
}

func (s *HospitalService) Create(ctx context.Context, req domain.CreateHospitalRequest) (*domain.Hospital, error) {
	const op = "service.Hospital.Create"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	h := &domain.Hospital{
		ID:             req.ID,
		Name:           req.Name,
		Lat:            req.Lat,
		Lng:            req.Lng,
		Beds:           make(map[domain.BedType]domain.BedCounter, len(domain.BedTypes)),
		BloodInventory: make(map[domain.BloodType]int, len(domain.BloodTypes)),
		UpdatedAt:      s.now(),
	}
	for _, t := range domain.BedTypes {
		c := req.Beds[t]
		if c.Total < 0 {
			return nil, e.Wrap(op, e.NewValidationError("beds."+string(t)+".total", "must be non-negative"))
		}
		c.Available = clamp(c.Available, 0, c.Total)
		h.Beds[t] = c
	}
	for k := range req.Beds {
		if !k.Valid() {
			return nil, e.Wrap(op, e.NewValidationError("beds", "unknown bed type "+string(k)))
		}
	}
	for _, t := range domain.BloodTypes {
		h.BloodInventory[t] = domain.ClampNonNegative(req.BloodInventory[t])
	}
	for k := range req.BloodInventory {
		if !k.Valid() {
			return nil, e.Wrap(op, e.NewValidationError("bloodInventory", "unknown blood type "+string(k)))
		}
	}

	if err := s.repo.CreateHospital(ctx, h); err != nil {
		return nil, e.Wrap(op, err)
	}
	s.logger.Info("hospital registered", slog.String("hospital_id", h.ID))
	return h, nil
}

func (s *HospitalService) Get(ctx context.Context, id string) (*domain.Hospital, error) {
	const op = "service.Hospital.Get"

	h, err := s.repo.GetHospital(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return h, nil
}

func (s *HospitalService) List(ctx context.Context) ([]*domain.Hospital, error) {
	const op = "service.Hospital.List"

	items, err := s.repo.ListHospitals(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return items, nil
}

func (s *HospitalService) UpdateBeds(ctx context.Context, actor domain.Actor, id string, req domain.BedDeltaRequest) (*domain.Hospital, error) {
	const op = "service.Hospital.UpdateBeds"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, e.Wrap(op, err)
	}
	if err := mayManage(actor, id); err != nil {
		return nil, e.Wrap(op, err)
	}

	h, err := s.repo.AdjustBeds(ctx, id, req.Type, req.Delta, s.now())
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	s.logger.Info("beds adjusted",
		slog.String("hospital_id", id),
		slog.String("type", string(req.Type)),
		slog.Int("delta", req.Delta),
		slog.Int("available", h.Beds[req.Type].Available),
	)
	return h, nil
}

func (s *HospitalService) UpdateBlood(ctx context.Context, actor domain.Actor, id string, req domain.BloodDeltaRequest) (*domain.Hospital, error) {
	const op = "service.Hospital.UpdateBlood"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, e.Wrap(op, err)
	}
	if err := mayManage(actor, id); err != nil {
		return nil, e.Wrap(op, err)
	}

	h, err := s.repo.AdjustBlood(ctx, id, req.Type, req.Delta, s.now())
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	s.logger.Info("blood inventory adjusted",
		slog.String("hospital_id", id),
		slog.String("type", string(req.Type)),
		slog.Int("delta", req.Delta),
	)
	return h, nil
}

// mayManage lets hospital staff change only their own hospital.
func mayManage(actor domain.Actor, id string) error {
	if actor.Role == domain.RoleHospital && actor.HospitalID == id {
		return nil
	}
	return e.ErrForbidden
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
