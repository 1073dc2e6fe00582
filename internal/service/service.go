package service

import (
	"context"
	"time"

	"swiftAid/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// IncidentRepository is the canonical incident store. Every mutation is
// conditional: Patch on an optional expected status, Transition and
// CommitAssignment on the From status they were computed against.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	Patch(ctx context.Context, id uuid.UUID, patch domain.IncidentPatch, expected *domain.IncidentStatus, at time.Time) (*domain.Incident, error)
	ListActive(ctx context.Context) ([]*domain.Incident, error)
	ListChangedSince(ctx context.Context, since time.Time) ([]*domain.Incident, error)
	Transition(ctx context.Context, change domain.StatusChange) (*domain.Incident, error)
	CommitAssignment(ctx context.Context, commit domain.AssignmentCommit) (*domain.Incident, error)
	CountByStatus(ctx context.Context, since time.Time) (map[domain.IncidentStatus]int64, error)
}

type FleetRepository interface {
	CreateAmbulance(ctx context.Context, a *domain.Ambulance) error
	GetAmbulance(ctx context.Context, id string) (*domain.Ambulance, error)
	ListAmbulances(ctx context.Context) ([]*domain.Ambulance, error)
	ListAvailableAmbulances(ctx context.Context) ([]*domain.Ambulance, error)
	UpdateAmbulancePosition(ctx context.Context, id string, lat, lng float64, at time.Time) (*domain.Ambulance, error)
}

// HospitalRepository applies bed and blood changes as relative deltas
// inside the store so concurrent adjustments never overwrite each other.
type HospitalRepository interface {
	CreateHospital(ctx context.Context, h *domain.Hospital) error
	GetHospital(ctx context.Context, id string) (*domain.Hospital, error)
	ListHospitals(ctx context.Context) ([]*domain.Hospital, error)
	AdjustBeds(ctx context.Context, id string, bed domain.BedType, delta int, at time.Time) (*domain.Hospital, error)
	AdjustBlood(ctx context.Context, id string, blood domain.BloodType, delta int, at time.Time) (*domain.Hospital, error)
}

// Storage is what a storage driver provides.
type Storage interface {
	Incidents() IncidentRepository
	Fleet() FleetRepository
	Hospitals() HospitalRepository
}

// Publisher receives committed incident changes.
type Publisher interface {
	Publish(ctx context.Context, ev domain.IncidentChangeEvent) error
}

// IncidentCacheService keeps the last good active-incident snapshot.
type IncidentCacheService interface {
	GetActive(ctx context.Context) ([]*domain.Incident, error)
	SetActive(ctx context.Context, incidents []*domain.Incident, ttl time.Duration) error
}

// Clock is swapped in tests.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

type Service struct {
	Incidents *IncidentService
	Lifecycle *Lifecycle
	Resolver  *Resolver
	Hospitals *HospitalService
	Fleet     *FleetService
	Stats     *StatsService
}
