package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGTriggerStore is a TriggerStore backed by a pgxpool.Pool.
type PGTriggerStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPGTriggerStore creates a TriggerStore backed by pool.
func NewPGTriggerStore(pool *pgxpool.Pool, logger *slog.Logger) *PGTriggerStore {
	return &PGTriggerStore{pool: pool, logger: logger.With("component", "scheduler.PGTriggerStore")}
}

var _ TriggerStore = (*PGTriggerStore)(nil)

func (s *PGTriggerStore) Upsert(ctx context.Context, t *Trigger) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO triggers (job_id, next_fire_instant, cron_expression, time_zone, paused)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (job_id) DO UPDATE SET
			next_fire_instant = EXCLUDED.next_fire_instant,
			cron_expression = EXCLUDED.cron_expression,
			time_zone = EXCLUDED.time_zone,
			paused = EXCLUDED.paused`,
		t.JobID, t.NextFireInstant, t.Cron, t.Zone, t.Paused,
	)
	if err != nil {
		return fmt.Errorf("scheduler: upsert trigger: %w", err)
	}
	return nil
}

func (s *PGTriggerStore) Delete(ctx context.Context, jobID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM triggers WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("scheduler: delete trigger: %w", err)
	}
	return nil
}

func (s *PGTriggerStore) LoadActive(ctx context.Context) ([]*Trigger, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT job_id, next_fire_instant, cron_expression, time_zone, paused
		FROM triggers ORDER BY next_fire_instant ASC`)
	if err != nil {
		return nil, fmt.Errorf("scheduler: load active triggers: %w", err)
	}
	defer rows.Close()

	var triggers []*Trigger
	for rows.Next() {
		t, err := scanTrigger(rows)
		if err != nil {
			return nil, err
		}
		triggers = append(triggers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scheduler: load active triggers: iterate: %w", err)
	}
	return triggers, nil
}

func (s *PGTriggerStore) SetPaused(ctx context.Context, jobID uuid.UUID, paused bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE triggers SET paused = $2 WHERE job_id = $1`, jobID, paused)
	if err != nil {
		return fmt.Errorf("scheduler: set paused: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrigger(row rowScanner) (*Trigger, error) {
	var t Trigger
	err := row.Scan(&t.JobID, &t.NextFireInstant, &t.Cron, &t.Zone, &t.Paused)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scheduler: scan trigger: %w", err)
	}
	return &t, nil
}
