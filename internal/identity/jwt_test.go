package identity

import (
	"testing"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_RoundTrip(t *testing.T) {
	r := NewResolver("test-secret")
	want := domain.Actor{UserID: "u-7", Role: domain.RoleDriver, AmbulanceID: "AMB-01"}

	token, err := r.Issue(want, time.Hour)
	require.NoError(t, err)

	got, err := r.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolver_Rejects(t *testing.T) {
	r := NewResolver("test-secret")

	expired, err := r.Issue(domain.Actor{UserID: "u-1", Role: domain.RoleCitizen}, -time.Hour)
	require.NoError(t, err)

	foreign, err := NewResolver("other-secret").Issue(domain.Actor{UserID: "u-1", Role: domain.RoleCitizen}, time.Hour)
	require.NoError(t, err)

	driverNoAmb, err := r.Issue(domain.Actor{UserID: "u-2", Role: domain.RoleDriver}, time.Hour)
	require.NoError(t, err)

	badRole, err := r.Issue(domain.Actor{UserID: "u-3", Role: "admin"}, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-4", "role": "dispatcher"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"expired", expired},
		{"wrong_secret", foreign},
		{"driver_without_ambulance", driverNoAmb},
		{"unknown_role", badRole},
		{"alg_none", none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.token)
			assert.ErrorIs(t, err, e.ErrUnauthorized)
		})
	}
}
