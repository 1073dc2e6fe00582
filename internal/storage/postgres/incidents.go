package postgres

import (
	"context"
	"errors"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const incidentColumns = `
	id, emergency_type, priority, status,
	caller_name, caller_phone, caller_alt_phone, caller_description,
	lat, lng, address, location_unavailable, owner_id,
	assigned_ambulance_id, assigned_hospital_id, released_ambulance_id,
	created_at, updated_at, accepted_at, completed_at, cancelled_at, version`

func scanIncident(row pgx.Row) (*domain.Incident, error) {
	var inc domain.Incident
	err := row.Scan(
		&inc.ID, &inc.EmergencyType, &inc.Priority, &inc.Status,
		&inc.Caller.Name, &inc.Caller.Phone, &inc.Caller.AltPhone, &inc.Caller.Description,
		&inc.Location.Lat, &inc.Location.Lng, &inc.Location.Address, &inc.Location.Unavailable, &inc.OwnerID,
		&inc.AssignedAmbulanceID, &inc.AssignedHospitalID, &inc.ReleasedAmbulanceID,
		&inc.Timestamps.CreatedAt, &inc.Timestamps.UpdatedAt,
		&inc.Timestamps.AcceptedAt, &inc.Timestamps.CompletedAt, &inc.Timestamps.CancelledAt,
		&inc.Version,
	)
	if err != nil {
		return nil, err
	}
	return &inc, nil
}

func (p *Postgres) Create(ctx context.Context, inc *domain.Incident) error {
	const op = "postgres.Incident.Create"

	const query = `
		INSERT INTO incidents (` + incidentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`
	_, err := p.Pool.Exec(ctx, query,
		inc.ID, inc.EmergencyType, inc.Priority, inc.Status,
		inc.Caller.Name, inc.Caller.Phone, inc.Caller.AltPhone, inc.Caller.Description,
		inc.Location.Lat, inc.Location.Lng, inc.Location.Address, inc.Location.Unavailable, inc.OwnerID,
		inc.AssignedAmbulanceID, inc.AssignedHospitalID, inc.ReleasedAmbulanceID,
		inc.Timestamps.CreatedAt, inc.Timestamps.UpdatedAt,
		inc.Timestamps.AcceptedAt, inc.Timestamps.CompletedAt, inc.Timestamps.CancelledAt,
		inc.Version,
	)
	if err != nil {
		return p.fail(ctx, op, err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "postgres.Incident.Get"

	inc, err := scanIncident(p.Pool.QueryRow(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE id = $1`, id))
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return inc, nil
}

func (p *Postgres) Patch(ctx context.Context, id uuid.UUID, patch domain.IncidentPatch, expected *domain.IncidentStatus, at time.Time) (*domain.Incident, error) {
	const op = "postgres.Incident.Patch"

	var out *domain.Incident
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		inc, err := lockIncident(ctx, tx, id)
		if err != nil {
			return err
		}
		if expected != nil && inc.Status != *expected {
			return e.ErrStatusChanged
		}
		patch.Apply(inc)
		inc.Timestamps.UpdatedAt = at
		inc.Version++
		if err := writeIncident(ctx, tx, inc); err != nil {
			return err
		}
		out = inc
		return nil
	})
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return out, nil
}

func (p *Postgres) ListActive(ctx context.Context) ([]*domain.Incident, error) {
	const op = "postgres.Incident.ListActive"

	const query = `SELECT ` + incidentColumns + `
		FROM incidents
		WHERE status NOT IN ('completed', 'cancelled')
		ORDER BY created_at DESC`

	out, err := p.queryIncidents(ctx, query)
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return out, nil
}

// ListChangedSince returns every incident updated at or after since,
// terminal ones included, oldest change first.
func (p *Postgres) ListChangedSince(ctx context.Context, since time.Time) ([]*domain.Incident, error) {
	const op = "postgres.Incident.ListChangedSince"

	const query = `SELECT ` + incidentColumns + `
		FROM incidents
		WHERE updated_at >= $1
		ORDER BY updated_at ASC`

	out, err := p.queryIncidents(ctx, query, since)
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return out, nil
}

func (p *Postgres) queryIncidents(ctx context.Context, query string, args ...any) ([]*domain.Incident, error) {
	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Incident, 0, 16)
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inc)
	}
	return out, rows.Err()
}

func (p *Postgres) Transition(ctx context.Context, change domain.StatusChange) (*domain.Incident, error) {
	const op = "postgres.Incident.Transition"

	var out *domain.Incident
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		inc, err := lockIncident(ctx, tx, change.IncidentID)
		if err != nil {
			return err
		}
		if inc.Status != change.From {
			return e.ErrStatusChanged
		}

		if inc.AssignedAmbulanceID != nil {
			switch {
			case change.ReleaseAmbulance:
				_, err = tx.Exec(ctx, `
					UPDATE ambulances
					SET status = 'available', current_incident_id = NULL, updated_at = $3
					WHERE id = $1 AND current_incident_id = $2`,
					*inc.AssignedAmbulanceID, inc.ID, change.At)
			case change.AmbulanceStatus != "":
				_, err = tx.Exec(ctx, `
					UPDATE ambulances
					SET status = $3, updated_at = $4
					WHERE id = $1 AND current_incident_id = $2`,
					*inc.AssignedAmbulanceID, inc.ID, change.AmbulanceStatus, change.At)
			}
			if err != nil {
				return err
			}
		}

		change.ApplyTo(inc)
		if err := writeIncident(ctx, tx, inc); err != nil {
			return err
		}
		out = inc
		return nil
	})
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return out, nil
}

func (p *Postgres) CommitAssignment(ctx context.Context, commit domain.AssignmentCommit) (*domain.Incident, error) {
	const op = "postgres.Incident.CommitAssignment"

	var out *domain.Incident
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		inc, err := lockIncident(ctx, tx, commit.IncidentID)
		if err != nil {
			return err
		}
		if inc.Status != commit.From {
			return e.ErrStatusChanged
		}

		tag, err := tx.Exec(ctx, `
			UPDATE ambulances
			SET status = 'on-duty', current_incident_id = $2, updated_at = $3
			WHERE id = $1 AND status = 'available' AND current_incident_id IS NULL`,
			commit.AmbulanceID, inc.ID, commit.At)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ambulances WHERE id = $1)`, commit.AmbulanceID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return e.ErrNotFound
			}
			return e.ErrAmbulanceUnavailable
		}

		ambID := commit.AmbulanceID
		inc.AssignedAmbulanceID = &ambID
		domain.StatusChange{
			IncidentID: inc.ID,
			From:       commit.From,
			To:         domain.IncidentAssigned,
			At:         commit.At,
		}.ApplyTo(inc)
		if err := writeIncident(ctx, tx, inc); err != nil {
			return err
		}
		out = inc
		return nil
	})
	if err != nil {
		// The partial unique index catches a claim racing on another connection.
		if errors.Is(e.WrapError(ctx, op, err), e.ErrConflict) && !errors.Is(err, e.ErrStatusChanged) {
			return nil, e.Wrap(op, e.ErrAmbulanceUnavailable)
		}
		return nil, p.fail(ctx, op, err)
	}
	return out, nil
}

func lockIncident(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Incident, error) {
	return scanIncident(tx.QueryRow(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE id = $1 FOR UPDATE`, id))
}

func writeIncident(ctx context.Context, tx pgx.Tx, inc *domain.Incident) error {
	const query = `
		UPDATE incidents SET
			priority = $2, status = $3,
			caller_alt_phone = $4, caller_description = $5, address = $6,
			assigned_ambulance_id = $7, assigned_hospital_id = $8, released_ambulance_id = $9,
			updated_at = $10, accepted_at = $11, completed_at = $12, cancelled_at = $13,
			version = $14
		WHERE id = $1`

	_, err := tx.Exec(ctx, query,
		inc.ID, inc.Priority, inc.Status,
		inc.Caller.AltPhone, inc.Caller.Description, inc.Location.Address,
		inc.AssignedAmbulanceID, inc.AssignedHospitalID, inc.ReleasedAmbulanceID,
		inc.Timestamps.UpdatedAt, inc.Timestamps.AcceptedAt, inc.Timestamps.CompletedAt, inc.Timestamps.CancelledAt,
		inc.Version,
	)
	return err
}
