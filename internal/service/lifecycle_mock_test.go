package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"swiftAid/internal/domain"
	"swiftAid/internal/service"
	mock_service "swiftAid/internal/service/mocks"
	"swiftAid/pkg/e"
)

func f64ptr(v float64) *float64 { return &v }

func fixedClock() time.Time {
	return time.Date(2025, 12, 23, 12, 0, 0, 0, time.UTC)
}

type mockDeps struct {
	repo      *mock_service.MockIncidentRepository
	fleet     *mock_service.MockFleetRepository
	hospitals *mock_service.MockHospitalRepository
	publisher *mock_service.MockPublisher
	lifecycle *service.Lifecycle
}

func newMockLifecycle(t *testing.T) *mockDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	d := &mockDeps{
		repo:      mock_service.NewMockIncidentRepository(ctrl),
		fleet:     mock_service.NewMockFleetRepository(ctrl),
		hospitals: mock_service.NewMockHospitalRepository(ctrl),
		publisher: mock_service.NewMockPublisher(ctrl),
	}
	resolver := service.NewResolver(d.fleet, d.hospitals, logger)
	d.lifecycle = service.NewLifecycle(d.repo, resolver, d.publisher, logger, 3).WithClock(fixedClock)
	return d
}

func activeIncident(id uuid.UUID) *domain.Incident {
	return &domain.Incident{
		ID:       id,
		Status:   domain.IncidentActive,
		Location: domain.Location{Lat: f64ptr(12.97), Lng: f64ptr(77.59)},
		Version:  2,
	}
}

func assignedCopy(inc *domain.Incident, amb string) *domain.Incident {
	out := inc.Clone()
	out.Status = domain.IncidentAssigned
	out.AssignedAmbulanceID = &amb
	out.Version++
	return out
}

func TestLifecycleAssign_SkipsClaimedCandidate(t *testing.T) {
	d := newMockLifecycle(t)
	ctx := context.Background()
	id := uuid.New()
	inc := activeIncident(id)

	d.repo.EXPECT().Get(gomock.Any(), id).Return(inc, nil)
	d.fleet.EXPECT().ListAvailableAmbulances(gomock.Any()).Return([]*domain.Ambulance{
		{ID: "AMB-NEAR", Lat: f64ptr(12.97), Lng: f64ptr(77.59)},
		{ID: "AMB-FAR", Lat: f64ptr(13.5), Lng: f64ptr(78.0)},
	}, nil)

	gomock.InOrder(
		d.repo.EXPECT().CommitAssignment(gomock.Any(), domain.AssignmentCommit{
			IncidentID: id, From: domain.IncidentActive, AmbulanceID: "AMB-NEAR", At: fixedClock(),
		}).Return(nil, e.ErrAmbulanceUnavailable),
		d.repo.EXPECT().CommitAssignment(gomock.Any(), domain.AssignmentCommit{
			IncidentID: id, From: domain.IncidentActive, AmbulanceID: "AMB-FAR", At: fixedClock(),
		}).Return(assignedCopy(inc, "AMB-FAR"), nil),
	)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev domain.IncidentChangeEvent) error {
			if ev.PreviousStatus != domain.IncidentActive || ev.NewStatus != domain.IncidentAssigned {
				t.Fatalf("unexpected event %s -> %s", ev.PreviousStatus, ev.NewStatus)
			}
			return nil
		})

	res, err := d.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if res.AmbulanceID != "AMB-FAR" {
		t.Fatalf("expected AMB-FAR, got %s", res.AmbulanceID)
	}
	if res.DistanceKM == nil || *res.DistanceKM <= 0 {
		t.Fatalf("expected positive distance, got %v", res.DistanceKM)
	}
}

func TestLifecycleAssign_RetriesWithFreshState(t *testing.T) {
	d := newMockLifecycle(t)
	ctx := context.Background()
	id := uuid.New()
	inc := activeIncident(id)

	d.repo.EXPECT().Get(gomock.Any(), id).Return(inc, nil).Times(2)
	d.fleet.EXPECT().ListAvailableAmbulances(gomock.Any()).Return([]*domain.Ambulance{
		{ID: "AMB-1", Lat: f64ptr(12.9), Lng: f64ptr(77.5)},
	}, nil).Times(2)

	gomock.InOrder(
		d.repo.EXPECT().CommitAssignment(gomock.Any(), gomock.Any()).Return(nil, e.ErrStatusChanged),
		d.repo.EXPECT().CommitAssignment(gomock.Any(), gomock.Any()).Return(assignedCopy(inc, "AMB-1"), nil),
	)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	res, err := d.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if res.Incident.Status != domain.IncidentAssigned {
		t.Fatalf("expected assigned, got %s", res.Incident.Status)
	}
}

func TestLifecycleAssign_GivesUpAfterMaxAttempts(t *testing.T) {
	d := newMockLifecycle(t)
	id := uuid.New()
	inc := activeIncident(id)

	d.repo.EXPECT().Get(gomock.Any(), id).Return(inc, nil).Times(3)
	d.fleet.EXPECT().ListAvailableAmbulances(gomock.Any()).Return([]*domain.Ambulance{
		{ID: "AMB-1"},
	}, nil).Times(3)
	d.repo.EXPECT().CommitAssignment(gomock.Any(), gomock.Any()).Return(nil, e.ErrStatusChanged).Times(3)

	_, err := d.lifecycle.Assign(context.Background(), dispatcher, id, domain.AssignRequest{})
	if !errors.Is(err, e.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLifecycleAssign_UnknownLocationHasNoDistance(t *testing.T) {
	d := newMockLifecycle(t)
	id := uuid.New()
	inc := activeIncident(id)
	inc.Location = domain.Location{Unavailable: true}

	d.repo.EXPECT().Get(gomock.Any(), id).Return(inc, nil)
	d.fleet.EXPECT().ListAvailableAmbulances(gomock.Any()).Return([]*domain.Ambulance{
		{ID: "AMB-B"}, {ID: "AMB-A"},
	}, nil)
	d.repo.EXPECT().CommitAssignment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c domain.AssignmentCommit) (*domain.Incident, error) {
			if c.AmbulanceID != "AMB-A" {
				t.Fatalf("ties must break by id, got %s", c.AmbulanceID)
			}
			return assignedCopy(inc, c.AmbulanceID), nil
		})
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	res, err := d.lifecycle.Assign(context.Background(), dispatcher, id, domain.AssignRequest{})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if res.DistanceKM != nil {
		t.Fatalf("expected no distance for unknown location, got %v", *res.DistanceKM)
	}
}

func TestLifecycleFire_PublishFailureDoesNotFailTransition(t *testing.T) {
	d := newMockLifecycle(t)
	id := uuid.New()
	amb := "AMB-1"
	inc := activeIncident(id)
	inc.Status = domain.IncidentAssigned
	inc.AssignedAmbulanceID = &amb

	d.repo.EXPECT().Get(gomock.Any(), id).Return(inc, nil)
	d.fleet.EXPECT().GetAmbulance(gomock.Any(), amb).Return(&domain.Ambulance{ID: amb, DriverID: driverOf(amb).UserID}, nil)
	d.repo.EXPECT().Transition(gomock.Any(), domain.StatusChange{
		IncidentID:      id,
		From:            domain.IncidentAssigned,
		To:              domain.IncidentDispatched,
		At:              fixedClock(),
		AmbulanceStatus: domain.AmbulanceOnRoute,
	}).DoAndReturn(func(_ context.Context, c domain.StatusChange) (*domain.Incident, error) {
		out := inc.Clone()
		c.ApplyTo(out)
		return out, nil
	})
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	got, err := d.lifecycle.Fire(context.Background(), driverOf(amb), id, domain.EventDriverAccept)
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}
	if got.Status != domain.IncidentDispatched {
		t.Fatalf("expected dispatched, got %s", got.Status)
	}
}

func TestLifecycleFire_StoreConflictPublishesNothing(t *testing.T) {
	d := newMockLifecycle(t)
	id := uuid.New()
	inc := activeIncident(id)
	inc.OwnerID = citizen.UserID

	d.repo.EXPECT().Get(gomock.Any(), id).Return(inc, nil)
	d.repo.EXPECT().Transition(gomock.Any(), gomock.Any()).Return(nil, e.ErrStatusChanged)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := d.lifecycle.Fire(context.Background(), citizen, id, domain.EventCancel)
	if !errors.Is(err, e.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLifecycleFire_UnknownDriverTouchesNothing(t *testing.T) {
	d := newMockLifecycle(t)
	id := uuid.New()
	amb := "AMB-9"
	inc := activeIncident(id)
	inc.Status = domain.IncidentAssigned
	inc.AssignedAmbulanceID = &amb

	d.repo.EXPECT().Get(gomock.Any(), id).Return(inc, nil)
	d.fleet.EXPECT().GetAmbulance(gomock.Any(), amb).Return(nil, e.ErrNotFound)
	d.repo.EXPECT().Transition(gomock.Any(), gomock.Any()).Times(0)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := d.lifecycle.Fire(context.Background(), driverOf(amb), id, domain.EventDriverAccept)
	if !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
