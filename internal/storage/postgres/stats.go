package postgres

import (
	"context"
	"time"

	"swiftAid/internal/domain"
)

func (p *Postgres) CountByStatus(ctx context.Context, since time.Time) (map[domain.IncidentStatus]int64, error) {
	const op = "postgres.Incident.CountByStatus"

	const query = `
		SELECT status, COUNT(*)
		FROM incidents
		WHERE created_at >= $1
		GROUP BY status
	`

	rows, err := p.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, p.fail(ctx, op, err)
	}
	defer rows.Close()

	out := make(map[domain.IncidentStatus]int64)
	for rows.Next() {
		var (
			status domain.IncidentStatus
			cnt    int64
		)
		if err := rows.Scan(&status, &cnt); err != nil {
			return nil, p.fail(ctx, op, err)
		}
		out[status] = cnt
	}
	if err := rows.Err(); err != nil {
		return nil, p.fail(ctx, op, err)
	}
	return out, nil
}
