package postgres

import (
	"context"
	"time"

	"swiftAid/internal/domain"
	"swiftAid/pkg/e"

	"github.com/jackc/pgx/v5"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (p *Postgres) CreateHospital(ctx context.Context, h *domain.Hospital) error {
	const op = "postgres.Hospital.Create"

	err := p.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO hospitals (id, name, lat, lng, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			h.ID, h.Name, h.Lat, h.Lng, h.UpdatedAt); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for t, c := range h.Beds {
			batch.Queue(`INSERT INTO hospital_beds (hospital_id, bed_type, available, total) VALUES ($1, $2, $3, $4)`,
				h.ID, t, c.Available, c.Total)
		}
		for t, units := range h.BloodInventory {
			batch.Queue(`INSERT INTO hospital_blood (hospital_id, blood_type, units) VALUES ($1, $2, $3)`,
				h.ID, t, units)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return p.fail(ctx, op, err)
	}
	return nil
}

func (p *Postgres) GetHospital(ctx context.Context, id string) (*domain.Hospital, error) {
	const op = "postgres.Hospital.Get"

	hs, err := loadHospitals(ctx, p.Pool, id)
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	if len(hs) == 0 {
		return nil, e.Wrap(op, e.ErrNotFound)
	}
	return hs[0], nil
}

func (p *Postgres) ListHospitals(ctx context.Context) ([]*domain.Hospital, error) {
	const op = "postgres.Hospital.List"

	hs, err := loadHospitals(ctx, p.Pool, "")
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return hs, nil
}

// AdjustBeds applies delta inside the UPDATE so concurrent adjustments
// compose; the result is clamped to [0, total].
func (p *Postgres) AdjustBeds(ctx context.Context, id string, bed domain.BedType, delta int, at time.Time) (*domain.Hospital, error) {
	return p.adjust(ctx, "postgres.Hospital.AdjustBeds", id, at, `
		INSERT INTO hospital_beds (hospital_id, bed_type, available, total)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (hospital_id, bed_type) DO UPDATE
		SET available = LEAST(hospital_beds.total, GREATEST(0, hospital_beds.available + $3))`,
		id, bed, delta)
}

func (p *Postgres) AdjustBlood(ctx context.Context, id string, blood domain.BloodType, delta int, at time.Time) (*domain.Hospital, error) {
	return p.adjust(ctx, "postgres.Hospital.AdjustBlood", id, at, `
		INSERT INTO hospital_blood (hospital_id, blood_type, units)
		VALUES ($1, $2, GREATEST(0, $3::int))
		ON CONFLICT (hospital_id, blood_type) DO UPDATE
		SET units = GREATEST(0, hospital_blood.units + $3)`,
		id, blood, delta)
}

func (p *Postgres) adjust(ctx context.Context, op, id string, at time.Time, query string, args ...any) (*domain.Hospital, error) {
	var out *domain.Hospital
	err := p.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE hospitals SET updated_at = $2 WHERE id = $1`, id, at)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return e.ErrNotFound
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
		hs, err := loadHospitals(ctx, tx, id)
		if err != nil {
			return err
		}
		out = hs[0]
		return nil
	})
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return out, nil
}

// loadHospitals reads one hospital when id is set, otherwise all of them
// ordered by id.
func loadHospitals(ctx context.Context, q querier, id string) ([]*domain.Hospital, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, lat, lng, updated_at
		FROM hospitals
		WHERE $1 = '' OR id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	var (
		out  []*domain.Hospital
		byID = make(map[string]*domain.Hospital)
	)
	for rows.Next() {
		h := &domain.Hospital{
			Beds:           make(map[domain.BedType]domain.BedCounter),
			BloodInventory: make(map[domain.BloodType]int),
		}
		if err := rows.Scan(&h.ID, &h.Name, &h.Lat, &h.Lng, &h.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, h)
		byID[h.ID] = h
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	beds, err := q.Query(ctx, `
		SELECT hospital_id, bed_type, available, total
		FROM hospital_beds
		WHERE $1 = '' OR hospital_id = $1`, id)
	if err != nil {
		return nil, err
	}
	for beds.Next() {
		var (
			hid string
			t   domain.BedType
			c   domain.BedCounter
		)
		if err := beds.Scan(&hid, &t, &c.Available, &c.Total); err != nil {
			beds.Close()
			return nil, err
		}
		if h, ok := byID[hid]; ok {
			h.Beds[t] = c
		}
	}
	beds.Close()
	if err := beds.Err(); err != nil {
		return nil, err
	}

	blood, err := q.Query(ctx, `
		SELECT hospital_id, blood_type, units
		FROM hospital_blood
		WHERE $1 = '' OR hospital_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer blood.Close()
	for blood.Next() {
		var (
			hid   string
			t     domain.BloodType
			units int
		)
		if err := blood.Scan(&hid, &t, &units); err != nil {
			return nil, err
		}
		if h, ok := byID[hid]; ok {
			h.BloodInventory[t] = units
		}
	}
	return out, blood.Err()
}
