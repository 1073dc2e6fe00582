package service

import (
	"context"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"
)

const defaultStatsWindow = 60

type StatsService struct {
	repo IncidentRepository
	now  Clock
}

func NewStatsService(repo IncidentRepository) *StatsService {
	return &StatsService{repo: repo, now: systemClock}
}

func (s *StatsService) WithClock(c Clock) *StatsService {
	s.now = c
	return s
}

// GetStats counts incidents created inside the last req.Minutes.
func (s *StatsService) GetStats(ctx context.Context, actor domain.Actor, req domain.StatsRequest) (*domain.IncidentStats, error) {
	const op = "service.Stats.GetStats"

	if actor.Role != domain.RoleDispatcher {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	minutes := req.Minutes
	if minutes == 0 {
		minutes = defaultStatsWindow
	}

	since := s.now().Add(-time.Duration(minutes) * time.Minute)
	byStatus, err := s.repo.CountByStatus(ctx, since)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}
	return &domain.IncidentStats{
		Minutes:  minutes,
		Total:    total,
		ByStatus: byStatus,
	}, nil
}
