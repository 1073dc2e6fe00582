package postgres

import (
	"context"
	"time"

	"swiftAid/internal/domain"

	"github.com/jackc/pgx/v5"
)

const ambulanceColumns = `id, driver_id, status, current_incident_id, lat, lng, updated_at`

func scanAmbulance(row pgx.Row) (*domain.Ambulance, error) {
	var a domain.Ambulance
	if err := row.Scan(&a.ID, &a.DriverID, &a.CurrentStatus, &a.CurrentIncidentID, &a.Lat, &a.Lng, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (p *Postgres) CreateAmbulance(ctx context.Context, a *domain.Ambulance) error {
	const op = "postgres.Fleet.CreateAmbulance"

	_, err := p.Pool.Exec(ctx, `
		INSERT INTO ambulances (`+ambulanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.DriverID, a.CurrentStatus, a.CurrentIncidentID, a.Lat, a.Lng, a.UpdatedAt)
	if err != nil {
		return p.fail(ctx, op, err)
	}
	return nil
}

func (p *Postgres) GetAmbulance(ctx context.Context, id string) (*domain.Ambulance, error) {
	const op = "postgres.Fleet.GetAmbulance"

	a, err := scanAmbulance(p.Pool.QueryRow(ctx, `SELECT `+ambulanceColumns+` FROM ambulances WHERE id = $1`, id))
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return a, nil
}

func (p *Postgres) ListAmbulances(ctx context.Context) ([]*domain.Ambulance, error) {
	return p.listAmbulances(ctx, "postgres.Fleet.ListAmbulances",
		`SELECT `+ambulanceColumns+` FROM ambulances ORDER BY id`)
}

func (p *Postgres) ListAvailableAmbulances(ctx context.Context) ([]*domain.Ambulance, error) {
	return p.listAmbulances(ctx, "postgres.Fleet.ListAvailableAmbulances",
		`SELECT `+ambulanceColumns+` FROM ambulances
		 WHERE status = 'available' AND current_incident_id IS NULL
		 ORDER BY id`)
}

func (p *Postgres) listAmbulances(ctx context.Context, op, query string) ([]*domain.Ambulance, error) {
	rows, err := p.Pool.Query(ctx, query)
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*domain.Ambulance, 0, 8)
	for rows.Next() {
		a, err := scanAmbulance(rows)
		if err != nil {
			return nil, p.fail(ctx, op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return out, nil
}

func (p *Postgres) UpdateAmbulancePosition(ctx context.Context, id string, lat, lng float64, at time.Time) (*domain.Ambulance, error) {
	const op = "postgres.Fleet.UpdateAmbulancePosition"

	a, err := scanAmbulance(p.Pool.QueryRow(ctx, `
		UPDATE ambulances SET lat = $2, lng = $3, updated_at = $4
		WHERE id = $1
		RETURNING `+ambulanceColumns,
		id, lat, lng, at))
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return a, nil
}
