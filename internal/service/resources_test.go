package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHospitalService(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	staff := domain.Actor{UserID: "nurse-1", Role: domain.RoleHospital, HospitalID: "H-1"}

	h, err := env.hospitals.Create(ctx, domain.CreateHospitalRequest{
		ID: "H-1", Name: "City General",
		Beds: map[domain.BedType]domain.BedCounter{
			domain.BedGeneral: {Available: 50, Total: 40},
		},
		BloodInventory: map[domain.BloodType]int{"O-": -3, "A+": 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 40, h.Beds[domain.BedGeneral].Available, "available clamps to total")
	assert.Equal(t, 0, h.BloodInventory["O-"])
	assert.Len(t, h.Beds, len(domain.BedTypes))

	_, err = env.hospitals.Create(ctx, domain.CreateHospitalRequest{
		ID: "H-2", Name: "Bad", Beds: map[domain.BedType]domain.BedCounter{"sofa": {Total: 1}},
	})
	assert.ErrorIs(t, err, e.ErrValidation)

	t.Run("only_own_staff_adjusts", func(t *testing.T) {
		other := domain.Actor{UserID: "nurse-2", Role: domain.RoleHospital, HospitalID: "H-9"}
		_, err := env.hospitals.UpdateBeds(ctx, other, "H-1", domain.BedDeltaRequest{Type: domain.BedGeneral, Delta: -1})
		assert.ErrorIs(t, err, e.ErrForbidden)
		_, err = env.hospitals.UpdateBlood(ctx, dispatcher, "H-1", domain.BloodDeltaRequest{Type: "A+", Delta: 1})
		assert.ErrorIs(t, err, e.ErrForbidden)
	})

	t.Run("zero_delta_invalid", func(t *testing.T) {
		_, err := env.hospitals.UpdateBeds(ctx, staff, "H-1", domain.BedDeltaRequest{Type: domain.BedGeneral})
		assert.ErrorIs(t, err, e.ErrValidation)
	})

	t.Run("concurrent_deltas_compose", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				delta := -1
				if i%2 == 0 {
					delta = -2
				}
				_, err := env.hospitals.UpdateBeds(ctx, staff, "H-1", domain.BedDeltaRequest{Type: domain.BedGeneral, Delta: delta})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		got, err := env.hospitals.Get(ctx, "H-1")
		require.NoError(t, err)
		assert.Equal(t, 10, got.Beds[domain.BedGeneral].Available)
	})

	t.Run("blood_never_negative", func(t *testing.T) {
		got, err := env.hospitals.UpdateBlood(ctx, staff, "H-1", domain.BloodDeltaRequest{Type: "A+", Delta: -100})
		require.NoError(t, err)
		assert.Equal(t, 0, got.BloodInventory["A+"])
	})
}

func TestFleetService(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	_, err := env.fleet.Register(ctx, domain.CreateAmbulanceRequest{ID: "AMB-1", DriverID: "d1", Lat: ptr(12.9)})
	assert.ErrorIs(t, err, e.ErrValidation)

	a, err := env.fleet.Register(ctx, domain.CreateAmbulanceRequest{ID: "AMB-1", DriverID: driverOf("AMB-1").UserID})
	require.NoError(t, err)
	assert.Equal(t, domain.AmbulanceAvailable, a.CurrentStatus)

	_, err = env.fleet.Register(ctx, domain.CreateAmbulanceRequest{ID: "AMB-1", DriverID: "d2"})
	assert.ErrorIs(t, err, e.ErrConflict)

	_, err = env.fleet.UpdatePosition(ctx, driverOf("AMB-2"), "AMB-1", domain.PositionRequest{Lat: 1, Lng: 2})
	assert.ErrorIs(t, err, e.ErrForbidden)

	impostor := domain.Actor{UserID: "someone-else", Role: domain.RoleDriver, AmbulanceID: "AMB-1"}
	_, err = env.fleet.UpdatePosition(ctx, impostor, "AMB-1", domain.PositionRequest{Lat: 1, Lng: 2})
	assert.ErrorIs(t, err, e.ErrForbidden, "token ambulance must be registered to the same driver")

	a, err = env.fleet.UpdatePosition(ctx, driverOf("AMB-1"), "AMB-1", domain.PositionRequest{Lat: 12.95, Lng: 77.6})
	require.NoError(t, err)
	require.NotNil(t, a.Lat)
	assert.Equal(t, 12.95, *a.Lat)

	_, err = env.fleet.UpdatePosition(ctx, driverOf("AMB-1"), "AMB-1", domain.PositionRequest{Lat: 95, Lng: 0})
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestStatsService(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	env.createActive(t)
	_, err := env.incidents.Create(ctx, citizen, draft(domain.EmergencyFire))
	require.NoError(t, err)

	_, err = env.stats.GetStats(ctx, citizen, domain.StatsRequest{})
	assert.ErrorIs(t, err, e.ErrForbidden)

	st, err := env.stats.GetStats(ctx, dispatcher, domain.StatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 60, st.Minutes)
	assert.Equal(t, int64(2), st.Total)
	assert.Equal(t, int64(1), st.ByStatus[domain.IncidentActive])
	assert.Equal(t, int64(1), st.ByStatus[domain.IncidentPending])

	// A window ending before creation sees nothing.
	st, err = env.stats.WithClock(func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }).
		GetStats(ctx, dispatcher, domain.StatsRequest{Minutes: 1})
	require.NoError(t, err)
	assert.Zero(t, st.Total)
}
