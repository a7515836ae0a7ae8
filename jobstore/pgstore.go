package jobstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is a Store backed by a pgxpool.Pool.
type PGStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPGStore creates a Store backed by pool.
func NewPGStore(pool *pgxpool.Pool, logger *slog.Logger) *PGStore {
	return &PGStore{pool: pool, logger: logger.With("component", "jobstore.PGStore")}
}

var _ Store = (*PGStore)(nil)

const jobColumns = `id, tenant_id, schedule_kind, wall_start, cron_expression,
	time_zone, status, next_fire, created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, job *Job, afterCommit func()) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("jobstore: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `
		INSERT INTO jobs (id, tenant_id, schedule_kind, wall_start, cron_expression,
			time_zone, status, next_fire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING `+jobColumns,
		job.ID, job.TenantID, job.ScheduleKind, job.WallStart, job.Cron,
		job.Zone, job.Status, job.NextFire,
	)

	created, err := scanJob(row)
	if err != nil {
		return fmt.Errorf("jobstore: create: %w", err)
	}
	*job = *created

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("jobstore: commit: %w", err)
	}

	if afterCommit != nil {
		afterCommit()
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (s *PGStore) List(ctx context.Context) ([]*Job, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("jobstore: list: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("jobstore: list: iterate: %w", err)
	}
	return jobs, nil
}

func (s *PGStore) Update(ctx context.Context, job *Job, afterCommit func()) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("jobstore: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `
		UPDATE jobs SET tenant_id = $2, schedule_kind = $3, wall_start = $4,
			cron_expression = $5, time_zone = $6, status = $7, next_fire = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+jobColumns,
		job.ID, job.TenantID, job.ScheduleKind, job.WallStart, job.Cron,
		job.Zone, job.Status, job.NextFire,
	)

	updated, err := scanJob(row)
	if err != nil {
		return fmt.Errorf("jobstore: update: %w", err)
	}
	*job = *updated

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("jobstore: commit: %w", err)
	}

	if afterCommit != nil {
		afterCommit()
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id uuid.UUID, afterCommit func()) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("jobstore: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("jobstore: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = ErrNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("jobstore: commit: %w", err)
	}

	if afterCommit != nil {
		afterCommit()
	}
	return nil
}

// UpdateNextFire runs in its own transaction, independent of any caller
// transaction, so the write survives regardless of the caller's outcome.
func (s *PGStore) UpdateNextFire(ctx context.Context, id uuid.UUID, wall time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET next_fire = $2, updated_at = NOW() WHERE id = $1`,
		id, wall,
	)
	if err != nil {
		return fmt.Errorf("jobstore: update next_fire: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus runs in its own transaction, independent of any caller
// transaction, so a scheduling or execution outcome is always recorded.
func (s *PGStore) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("jobstore: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.TenantID, &j.ScheduleKind, &j.WallStart, &j.Cron,
		&j.Zone, &j.Status, &j.NextFire, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("jobstore: scan: %w", err)
	}
	return &j, nil
}
