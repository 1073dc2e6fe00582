package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_HappyPath(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.ambulance(t, "AMB-FAR", 13.5, 78.0)
	env.ambulance(t, "AMB-NEAR", 12.97, 77.59)

	id := env.createActive(t)

	res, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	require.NoError(t, err)
	assert.Equal(t, "AMB-NEAR", res.AmbulanceID)
	require.NotNil(t, res.DistanceKM)
	assert.Less(t, *res.DistanceKM, 1.0)
	assert.Equal(t, domain.IncidentAssigned, res.Incident.Status)

	driver := driverOf("AMB-NEAR")
	inc, err := env.lifecycle.Fire(ctx, driver, id, domain.EventDriverAccept)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentDispatched, inc.Status)
	assert.NotNil(t, inc.Timestamps.AcceptedAt)

	amb, err := env.store.GetAmbulance(ctx, "AMB-NEAR")
	require.NoError(t, err)
	assert.Equal(t, domain.AmbulanceOnRoute, amb.CurrentStatus)

	inc, err = env.lifecycle.Fire(ctx, driver, id, domain.EventDriverComplete)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentCompleted, inc.Status)
	assert.NotNil(t, inc.Timestamps.CompletedAt)

	amb, err = env.store.GetAmbulance(ctx, "AMB-NEAR")
	require.NoError(t, err)
	assert.Equal(t, domain.AmbulanceAvailable, amb.CurrentStatus)
	assert.Nil(t, amb.CurrentIncidentID)

	var statuses []domain.IncidentStatus
	var last int64
	for _, ev := range env.events.all() {
		if ev.IncidentID != id {
			continue
		}
		assert.Greater(t, ev.Version, last, "versions strictly increase")
		last = ev.Version
		statuses = append(statuses, ev.NewStatus)
	}
	assert.Equal(t, []domain.IncidentStatus{
		domain.IncidentPending, domain.IncidentActive, domain.IncidentAssigned,
		domain.IncidentDispatched, domain.IncidentCompleted,
	}, statuses)
}

func TestLifecycle_CompleteTwice(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.ambulance(t, "AMB-1", 12.9, 77.5)
	id := env.createActive(t)

	_, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	require.NoError(t, err)
	driver := driverOf("AMB-1")
	_, err = env.lifecycle.Fire(ctx, driver, id, domain.EventDriverAccept)
	require.NoError(t, err)
	_, err = env.lifecycle.Fire(ctx, driver, id, domain.EventDriverComplete)
	require.NoError(t, err)

	before := len(env.events.all())
	_, err = env.lifecycle.Fire(ctx, driver, id, domain.EventDriverComplete)
	assert.ErrorIs(t, err, e.ErrInvalidTransition)
	assert.Len(t, env.events.all(), before, "rejected events publish nothing")
}

func TestLifecycle_InvalidTransitions(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	id, err := env.incidents.Create(ctx, citizen, draft(domain.EmergencyCardiac))
	require.NoError(t, err)

	_, err = env.lifecycle.Fire(ctx, driverOf("AMB-1"), id, domain.EventDriverAccept)
	assert.ErrorIs(t, err, e.ErrForbidden, "driver of no ambulance on this incident")

	_, err = env.lifecycle.Fire(ctx, citizen, id, domain.EventSubmit)
	require.NoError(t, err)
	_, err = env.lifecycle.Fire(ctx, citizen, id, domain.EventSubmit)
	assert.ErrorIs(t, err, e.ErrInvalidTransition)

	_, err = env.lifecycle.Fire(ctx, stranger, id, domain.EventSubmit)
	assert.ErrorIs(t, err, e.ErrForbidden)

	_, err = env.lifecycle.Fire(ctx, driverOf("AMB-1"), id, domain.EventCancel)
	assert.ErrorIs(t, err, e.ErrForbidden)

	_, err = env.lifecycle.Fire(ctx, citizen, id, domain.Event("teleport"))
	assert.ErrorIs(t, err, e.ErrValidation)

	_, err = env.lifecycle.Fire(ctx, citizen, uuid.New(), domain.EventSubmit)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestLifecycle_DriverMustBeAssigned(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.ambulance(t, "AMB-1", 12.9, 77.5)
	env.ambulance(t, "AMB-2", 20.0, 80.0)
	id := env.createActive(t)

	_, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	require.NoError(t, err)

	_, err = env.lifecycle.Fire(ctx, driverOf("AMB-2"), id, domain.EventDriverAccept)
	assert.ErrorIs(t, err, e.ErrForbidden)
}

func TestLifecycle_CancelReleasesAmbulance(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.ambulance(t, "AMB-1", 12.9, 77.5)
	id := env.createActive(t)

	_, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	require.NoError(t, err)

	inc, err := env.lifecycle.Fire(ctx, citizen, id, domain.EventCancel)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentCancelled, inc.Status)
	assert.NotNil(t, inc.Timestamps.CancelledAt)

	amb, err := env.store.GetAmbulance(ctx, "AMB-1")
	require.NoError(t, err)
	assert.Equal(t, domain.AmbulanceAvailable, amb.CurrentStatus)

	_, err = env.lifecycle.Fire(ctx, citizen, id, domain.EventCancel)
	assert.ErrorIs(t, err, e.ErrInvalidTransition)
}

func TestLifecycle_CancelClearsAssignment(t *testing.T) {
	for _, accepted := range []bool{false, true} {
		name := "from assigned"
		if accepted {
			name = "from dispatched"
		}
		t.Run(name, func(t *testing.T) {
			env := newEnv(t)
			ctx := context.Background()
			env.ambulance(t, "AMB-1", 12.9, 77.5)
			id := env.createActive(t)

			_, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
			require.NoError(t, err)
			if accepted {
				_, err = env.lifecycle.Fire(ctx, driverOf("AMB-1"), id, domain.EventDriverAccept)
				require.NoError(t, err)
			}

			inc, err := env.lifecycle.Fire(ctx, dispatcher, id, domain.EventCancel)
			require.NoError(t, err)
			assert.Equal(t, domain.IncidentCancelled, inc.Status)
			assert.Nil(t, inc.AssignedAmbulanceID, "a cancelled incident holds no ambulance")
			require.NotNil(t, inc.ReleasedAmbulanceID)
			assert.Equal(t, "AMB-1", *inc.ReleasedAmbulanceID)

			stored, err := env.store.Get(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, stored.AssignedAmbulanceID)

			amb, err := env.store.GetAmbulance(ctx, "AMB-1")
			require.NoError(t, err)
			assert.Equal(t, domain.AmbulanceAvailable, amb.CurrentStatus)
			assert.Nil(t, amb.CurrentIncidentID)

			events := env.events.all()
			last := events[len(events)-1]
			assert.Equal(t, domain.IncidentCancelled, last.NewStatus)
			driverView := domain.FilterFor(driverOf("AMB-1"))
			assert.True(t, driverView.Accepts(last), "the released driver is told about the cancel")
		})
	}
}

func TestLifecycle_DriverMustBeRegisteredToAmbulance(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.ambulance(t, "AMB-1", 12.9, 77.5)
	id := env.createActive(t)

	_, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	require.NoError(t, err)

	impostor := domain.Actor{UserID: "someone-else", Role: domain.RoleDriver, AmbulanceID: "AMB-1"}
	_, err = env.lifecycle.Fire(ctx, impostor, id, domain.EventDriverAccept)
	assert.ErrorIs(t, err, e.ErrForbidden)

	_, err = env.lifecycle.Fire(ctx, driverOf("AMB-1"), id, domain.EventDriverAccept)
	assert.NoError(t, err)
}

func TestLifecycle_NonOwnerForbiddenRegardlessOfState(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	live := env.createActive(t)
	done := env.createActive(t)
	_, err := env.lifecycle.Fire(ctx, citizen, done, domain.EventCancel)
	require.NoError(t, err)

	_, errLive := env.lifecycle.Fire(ctx, stranger, live, domain.EventCancel)
	_, errDone := env.lifecycle.Fire(ctx, stranger, done, domain.EventCancel)
	assert.ErrorIs(t, errLive, e.ErrForbidden)
	assert.ErrorIs(t, errDone, e.ErrForbidden, "terminal incidents answer the same as live ones")
}

func TestLifecycle_AssignNoCapacity(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	id := env.createActive(t)

	_, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	assert.ErrorIs(t, err, e.ErrNoCapacity)

	inc, err := env.incidents.Get(ctx, dispatcher, id)
	require.NoError(t, err)
	assert.Equal(t, domain.IncidentActive, inc.Status)
}

func TestLifecycle_AssignOnlyByDispatcher(t *testing.T) {
	env := newEnv(t)
	env.ambulance(t, "AMB-1", 12.9, 77.5)
	id := env.createActive(t)

	_, err := env.lifecycle.Assign(context.Background(), citizen, id, domain.AssignRequest{})
	assert.ErrorIs(t, err, e.ErrForbidden)
}

func TestLifecycle_AssignTwiceConflicts(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.ambulance(t, "AMB-1", 12.9, 77.5)
	env.ambulance(t, "AMB-2", 12.9, 77.6)
	id := env.createActive(t)

	_, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	require.NoError(t, err)
	_, err = env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
	assert.ErrorIs(t, err, e.ErrConflict)
}

func TestLifecycle_AssignWithHospital(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.ambulance(t, "AMB-1", 12.9, 77.5)
	for _, h := range []domain.CreateHospitalRequest{
		{ID: "H-FULL", Name: "Full", Lat: ptr(12.97), Lng: ptr(77.59),
			Beds: map[domain.BedType]domain.BedCounter{domain.BedGeneral: {Available: 0, Total: 10}}},
		{ID: "H-OPEN", Name: "Open", Lat: ptr(13.1), Lng: ptr(77.7),
			Beds: map[domain.BedType]domain.BedCounter{domain.BedGeneral: {Available: 3, Total: 10}}},
	} {
		_, err := env.hospitals.Create(ctx, h)
		require.NoError(t, err)
	}
	id := env.createActive(t)

	res, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{WithHospital: true})
	require.NoError(t, err)
	require.NotNil(t, res.HospitalID)
	assert.Equal(t, "H-OPEN", *res.HospitalID)
	assert.Equal(t, "AMB-1", res.AmbulanceID)

	inc, err := env.incidents.Get(ctx, dispatcher, id)
	require.NoError(t, err)
	assert.Equal(t, "H-OPEN", *inc.AssignedHospitalID)
	assert.Equal(t, domain.IncidentAssigned, inc.Status)
}

// M incidents racing for N ambulances: exactly min(M, N) win and no
// ambulance serves two incidents.
func TestLifecycle_ConcurrentAssign(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	const ambulances, incidents = 3, 8
	for i := 0; i < ambulances; i++ {
		env.ambulance(t, "AMB-"+string(rune('A'+i)), 12.9+float64(i)*0.01, 77.5)
	}
	ids := make([]uuid.UUID, incidents)
	for i := range ids {
		ids[i] = env.createActive(t)
	}

	var (
		wg      sync.WaitGroup
		won     atomic.Int32
		mu      sync.Mutex
		claimed = map[string]uuid.UUID{}
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			res, err := env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
			if err != nil {
				assert.True(t, e.Retryable(err) || errors.Is(err, e.ErrNoCapacity), "unexpected error: %v", err)
				return
			}
			won.Add(1)
			mu.Lock()
			defer mu.Unlock()
			_, dup := claimed[res.AmbulanceID]
			assert.False(t, dup, "ambulance %s assigned twice", res.AmbulanceID)
			claimed[res.AmbulanceID] = id
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(ambulances), won.Load())
	for ambID, incID := range claimed {
		amb, err := env.store.GetAmbulance(ctx, ambID)
		require.NoError(t, err)
		require.NotNil(t, amb.CurrentIncidentID)
		assert.Equal(t, incID, *amb.CurrentIncidentID)
	}
}

func TestLifecycle_ConcurrentAssignSameIncident(t *testing.T) {
	for round := 0; round < 50; round++ {
		env := newEnv(t)
		ctx := context.Background()
		env.ambulance(t, "AMB-1", 12.9, 77.5)
		id := env.createActive(t)

		var (
			wg   sync.WaitGroup
			errs = make([]error, 2)
		)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = env.lifecycle.Assign(ctx, dispatcher, id, domain.AssignRequest{})
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			assert.True(t, errors.Is(err, e.ErrConflict) || errors.Is(err, e.ErrNoCapacity), "unexpected error: %v", err)
		}
		require.Equal(t, 1, wins, "round %d", round)

		amb, err := env.store.GetAmbulance(ctx, "AMB-1")
		require.NoError(t, err)
		require.NotNil(t, amb.CurrentIncidentID)
		assert.Equal(t, id, *amb.CurrentIncidentID)
	}
}
