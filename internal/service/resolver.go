package service

import (
	"context"
	"log/slog"
	"sort"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"
)

// Candidate is an available ambulance ranked for an incident.
type Candidate struct {
	AmbulanceID string
	DistanceKM  float64
}

// Resolver selects ambulances and hospitals for an incident. It only reads;
// the claim itself is committed by Lifecycle through the store.
type Resolver struct {
	fleet     FleetRepository
	hospitals HospitalRepository
	logger    *slog.Logger
}

func NewResolver(fleet FleetRepository, hospitals HospitalRepository, logger *slog.Logger) *Resolver {
	return &Resolver{fleet: fleet, hospitals: hospitals, logger: logger}
}

// RankAmbulances orders available ambulances nearest first, ties broken by
// id ascending. It fails with ErrNoCapacity when none is available.
func (r *Resolver) RankAmbulances(ctx context.Context, inc *domain.Incident) ([]Candidate, error) {
	const op = "service.Resolver.RankAmbulances"

	available, err := r.fleet.ListAvailableAmbulances(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(available) == 0 {
		return nil, e.Wrap(op, e.ErrNoCapacity)
	}

	out := make([]Candidate, 0, len(available))
	for _, a := range available {
		out = append(out, Candidate{
			AmbulanceID: a.ID,
			DistanceKM:  distanceFrom(inc.Location.Lat, inc.Location.Lng, a.Lat, a.Lng),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKM != out[j].DistanceKM {
			return out[i].DistanceKM < out[j].DistanceKM
		}
		return out[i].AmbulanceID < out[j].AmbulanceID
	})

	r.logger.Debug("ambulances ranked",
		slog.String("incident_id", inc.ID.String()),
		slog.Int("candidates", len(out)),
		slog.String("nearest", out[0].AmbulanceID),
	)
	return out, nil
}

// NearestHospital picks the closest hospital with a free general bed, ties
// by id. It returns nil, nil when no hospital has capacity.
func (r *Resolver) NearestHospital(ctx context.Context, inc *domain.Incident) (*domain.Hospital, error) {
	const op = "service.Resolver.NearestHospital"

	hospitals, err := r.hospitals.ListHospitals(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		best     *domain.Hospital
		bestDist float64
	)
	for _, h := range hospitals {
		if h.AvailableBeds() <= 0 {
			continue
		}
		d := distanceFrom(inc.Location.Lat, inc.Location.Lng, h.Lat, h.Lng)
		if best == nil || d < bestDist || (d == bestDist && h.ID < best.ID) {
			best, bestDist = h, d
		}
	}
	return best, nil
}
