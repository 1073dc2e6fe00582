// Package identity turns bearer tokens from the directory service into actors.
package identity

import (
	"errors"
	"fmt"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Role        domain.Role `json:"role"`
	AmbulanceID string      `json:"ambulance_id,omitempty"`
	HospitalID  string      `json:"hospital_id,omitempty"`
	jwt.RegisteredClaims
}

// Resolver verifies HS256 tokens signed with a shared secret.
type Resolver struct {
	secret []byte
	parser *jwt.Parser
}

func NewResolver(secret string) *Resolver {
	return &Resolver{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(30*time.Second),
		),
	}
}

// Resolve fails with ErrUnauthorized for any token it cannot trust.
func (r *Resolver) Resolve(token string) (domain.Actor, error) {
	const op = "identity.Resolve"

	if token == "" {
		return domain.Actor{}, e.Wrap(op, e.ErrUnauthorized)
	}

	claims := &Claims{}
	parsed, err := r.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Actor{}, fmt.Errorf("%s: %w", op, errors.Join(e.ErrUnauthorized, err))
	}

	actor := domain.Actor{
		UserID:      claims.Subject,
		Role:        claims.Role,
		AmbulanceID: claims.AmbulanceID,
		HospitalID:  claims.HospitalID,
	}
	if err := validActor(actor); err != nil {
		return domain.Actor{}, e.Wrap(op, err)
	}
	return actor, nil
}

func validActor(a domain.Actor) error {
	switch {
	case a.UserID == "":
		return fmt.Errorf("missing subject: %w", e.ErrUnauthorized)
	case !a.Role.Valid():
		return fmt.Errorf("unknown role %q: %w", a.Role, e.ErrUnauthorized)
	case a.Role == domain.RoleDriver && a.AmbulanceID == "":
		return fmt.Errorf("driver token without ambulance_id: %w", e.ErrUnauthorized)
	case a.Role == domain.RoleHospital && a.HospitalID == "":
		return fmt.Errorf("hospital token without hospital_id: %w", e.ErrUnauthorized)
	}
	return nil
}

// Issue signs a token for actor. The directory service owns issuance in
// production; this serves local tooling and tests.
func (r *Resolver) Issue(actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:        actor.Role,
		AmbulanceID: actor.AmbulanceID,
		HospitalID:  actor.HospitalID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}
