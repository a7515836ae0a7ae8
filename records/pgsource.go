package records

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource is a Source reading tenant records from Postgres.
type PGSource struct {
	pool *pgxpool.Pool
}

// NewPGSource creates a Source backed by pool.
func NewPGSource(pool *pgxpool.Pool) *PGSource {
	return &PGSource{pool: pool}
}

var _ Source = (*PGSource)(nil)

func (s *PGSource) RecordsFor(ctx context.Context, tenantID string) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, payload FROM tenant_records
		WHERE tenant_id = $1 ORDER BY id ASC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("records: query tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Payload); err != nil {
			return nil, fmt.Errorf("records: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records: iterate: %w", err)
	}
	return out, nil
}
