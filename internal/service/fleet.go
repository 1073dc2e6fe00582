package service

import (
	"context"
	"log/slog"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"
	"swiftAid/pkg/validator"
)

type FleetService struct {
	repo   FleetRepository
	logger *slog.Logger
	now    Clock
}

func NewFleetService(repo FleetRepository, logger *slog.Logger) *FleetService {
	return &FleetService{repo: repo, logger: logger, now: systemClock}
}

// Register adds an ambulance in the available state.
func (s *FleetService) Register(ctx context.Context, req domain.CreateAmbulanceRequest) (*domain.Ambulance, error) {
	const op = "service.Fleet.Register"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, e.Wrap(op, err)
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return nil, e.Wrap(op, e.NewValidationError("lat", "lat and lng must be set together"))
	}

	a := &domain.Ambulance{
		ID:            req.ID,
		CurrentStatus: domain.AmbulanceAvailable,
		DriverID:      req.DriverID,
		Lat:           req.Lat,
		Lng:           req.Lng,
		UpdatedAt:     s.now(),
	}
	if err := s.repo.CreateAmbulance(ctx, a); err != nil {
		return nil, e.Wrap(op, err)
	}
	s.logger.Info("ambulance registered", slog.String("ambulance_id", a.ID), slog.String("driver_id", a.DriverID))
	return a, nil
}

func (s *FleetService) List(ctx context.Context) ([]*domain.Ambulance, error) {
	const op = "service.Fleet.List"

	items, err := s.repo.ListAmbulances(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return items, nil
}

// UpdatePosition is only accepted from the driver registered to that
// ambulance.
func (s *FleetService) UpdatePosition(ctx context.Context, actor domain.Actor, id string, req domain.PositionRequest) (*domain.Ambulance, error) {
	const op = "service.Fleet.UpdatePosition"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, e.Wrap(op, err)
	}
	if actor.Role != domain.RoleDriver || actor.AmbulanceID != id {
		return nil, e.Wrap(op, e.ErrForbidden)
	}
	current, err := s.repo.GetAmbulance(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if current.DriverID != actor.UserID {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	a, err := s.repo.UpdateAmbulancePosition(ctx, id, req.Lat, req.Lng, s.now())
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return a, nil
}
