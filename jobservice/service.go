package jobservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fluxcron/dispatcher/cronspec"
	"github.com/fluxcron/dispatcher/jobstore"
	"github.com/fluxcron/dispatcher/scheduler"
	"github.com/fluxcron/dispatcher/timezone"
)

// pastGrace is how far in the past a one-shot start time may be and
// still be accepted, absorbing client clock skew and processing delay.
const pastGrace = 30 * time.Second

// Engine is the slice of the scheduling engine the service drives.
// Implemented by *scheduler.Engine.
type Engine interface {
	Register(ctx context.Context, jobID uuid.UUID, spec scheduler.Spec) (time.Time, error)
	Deregister(ctx context.Context, jobID uuid.UUID) error
	Pause(ctx context.Context, jobID uuid.UUID) error
	Resume(ctx context.Context, jobID uuid.UUID) error
}

// CreateRequest is a validated-at-the-edge request to create a job. The
// HTTP layer translates its DTO into this form.
type CreateRequest struct {
	TenantID string
	Kind     jobstore.ScheduleKind

	// WallStart is the zone-less wall-clock start, required for OneShot.
	WallStart *time.Time

	// Zone is the IANA zone name. Empty means the configured default.
	Zone string

	// CronExpression is a raw 6-field cron. Used for Recurring when set;
	// otherwise Descriptor is consulted.
	CronExpression string

	// Descriptor is the structured recurrence form.
	Descriptor *cronspec.Descriptor
}

// Service implements create/read/delete/pause/resume over jobs.
type Service struct {
	store  jobstore.Store
	engine Engine
	zones  *timezone.Service
	logger *slog.Logger
}

// New creates a Service.
func New(store jobstore.Store, engine Engine, zones *timezone.Service, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		engine: engine,
		zones:  zones,
		logger: logger.With("component", "jobservice.Service"),
	}
}

// Create validates req, persists the job with status Scheduling, and
// registers a post-commit hook that hands the job to the engine. The
// store runs the hook before Create returns, so the returned projection
// is the job re-read after the hand-off (Scheduled with its next fire, or
// CompletedFailure); if that re-read fails, the job as committed is
// returned.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*jobstore.Job, error) {
	if req.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrValidation)
	}

	zone := req.Zone
	if zone == "" {
		zone = s.zones.DefaultZone()
	}
	if _, err := s.zones.Zone(zone); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrZoneInvalid, zone)
	}

	job := &jobstore.Job{
		ID:           uuid.New(),
		TenantID:     req.TenantID,
		ScheduleKind: req.Kind,
		Zone:         zone,
		Status:       jobstore.Scheduling,
	}

	switch req.Kind {
	case jobstore.Immediate:

	case jobstore.OneShot:
		if req.WallStart == nil {
			return nil, fmt.Errorf("%w: start time is required for one-time jobs", ErrValidation)
		}
		instant, err := s.zones.ToInstant(*req.WallStart, zone)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrZoneInvalid, zone)
		}
		if instant.Before(s.zones.Now().Add(-pastGrace)) {
			return nil, fmt.Errorf("%w: %s in %s", ErrPastScheduleTime,
				req.WallStart.Format("2006-01-02T15:04:05"), zone)
		}
		job.WallStart = req.WallStart

	case jobstore.Recurring:
		cronExpr := req.CronExpression
		if cronExpr == "" && req.Descriptor != nil {
			cronExpr = cronspec.Canonical(*req.Descriptor)
		}
		if cronExpr == "" {
			return nil, fmt.Errorf("%w: a cron expression or recurrence descriptor is required", ErrValidation)
		}
		if _, err := cronspec.Parse(cronExpr); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCron, cronExpr)
		}
		job.Cron = cronExpr

	default:
		return nil, fmt.Errorf("%w: unknown schedule type %q", ErrValidation, req.Kind)
	}

	err := s.store.Create(ctx, job, func() {
		s.registerAndFinalize(job.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("jobservice: create: %w", err)
	}

	// The commit hook has run by now; return the finalized projection so
	// callers see the Scheduled status and next fire straight away.
	if fresh, err := s.store.Get(ctx, job.ID); err == nil {
		return fresh, nil
	}
	return job, nil
}

// registerAndFinalize runs after the creating transaction commits: it
// re-reads the job, registers its trigger, and records the scheduled
// next fire. Any failure here is recorded as CompletedFailure in an
// independent transaction; Create still succeeds, since the job itself
// has already committed.
func (s *Service) registerAndFinalize(jobID uuid.UUID) {
	ctx := context.Background()
	log := s.logger.With("job_id", jobID)

	job, err := s.store.Get(ctx, jobID)
	if err != nil {
		log.Error("re-read job after commit", "error", err)
		return
	}

	spec, err := s.specFor(job)
	if err != nil {
		log.Error("derive trigger spec", "error", err)
		s.failScheduling(ctx, jobID)
		return
	}

	next, err := s.engine.Register(ctx, jobID, spec)
	if err != nil {
		log.Error("register trigger", "error", err)
		s.failScheduling(ctx, jobID)
		return
	}

	wall, err := s.zones.ToWall(next, job.Zone)
	if err != nil {
		log.Error("convert next fire to wall clock", "zone", job.Zone, "error", err)
		s.failScheduling(ctx, jobID)
		return
	}
	if err := s.store.UpdateNextFire(ctx, jobID, wall); err != nil {
		log.Error("persist next fire", "error", err)
		s.failScheduling(ctx, jobID)
		return
	}
	if err := s.store.UpdateStatus(ctx, jobID, jobstore.Scheduled); err != nil {
		log.Error("mark job scheduled", "error", err)
		s.failScheduling(ctx, jobID)
		return
	}
}

func (s *Service) failScheduling(ctx context.Context, jobID uuid.UUID) {
	if err := s.store.UpdateStatus(ctx, jobID, jobstore.CompletedFailure); err != nil {
		s.logger.Error("record scheduling failure", "job_id", jobID, "error", err)
	}
}

func (s *Service) specFor(job *jobstore.Job) (scheduler.Spec, error) {
	switch job.ScheduleKind {
	case jobstore.Immediate:
		return scheduler.NowSpec(), nil
	case jobstore.OneShot:
		if job.WallStart == nil {
			return scheduler.Spec{}, fmt.Errorf("%w: one-time job without start time", ErrValidation)
		}
		instant, err := s.zones.ToInstant(*job.WallStart, job.Zone)
		if err != nil {
			return scheduler.Spec{}, err
		}
		return scheduler.AtSpec(instant), nil
	case jobstore.Recurring:
		return scheduler.CronSpec(job.Cron, job.Zone), nil
	default:
		return scheduler.Spec{}, fmt.Errorf("%w: unknown schedule kind %q", ErrValidation, job.ScheduleKind)
	}
}

// Get returns the job or ErrNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*jobstore.Job, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("jobservice: get: %w", err)
	}
	return job, nil
}

// List returns all jobs.
func (s *Service) List(ctx context.Context) ([]*jobstore.Job, error) {
	jobs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("jobservice: list: %w", err)
	}
	return jobs, nil
}

// Delete removes the job, its trigger, and any queued or in-flight fire.
// Engine errors are logged but do not prevent the row deletion.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("jobservice: delete: %w", err)
	}

	if err := s.engine.Deregister(ctx, id); err != nil {
		s.logger.Error("deregister trigger during delete", "job_id", id, "error", err)
	}

	if err := s.store.Delete(ctx, id, nil); err != nil && !errors.Is(err, jobstore.ErrNotFound) {
		return fmt.Errorf("jobservice: delete: %w", err)
	}
	return nil
}

// Pause suspends future fires of a scheduled job. A no-op if the job is
// already paused or has no live schedule to pause.
func (s *Service) Pause(ctx context.Context, id uuid.UUID) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if job.Status != jobstore.Scheduled {
		return nil
	}

	if err := s.engine.Pause(ctx, id); err != nil {
		if errors.Is(err, scheduler.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("jobservice: pause: %w", err)
	}
	if err := s.store.UpdateStatus(ctx, id, jobstore.Paused); err != nil {
		return fmt.Errorf("jobservice: pause: %w", err)
	}
	return nil
}

// Resume re-enables fires of a paused job. Fires skipped while paused
// are dropped, not caught up. A no-op if the job is not paused.
func (s *Service) Resume(ctx context.Context, id uuid.UUID) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if job.Status != jobstore.Paused {
		return nil
	}

	if err := s.engine.Resume(ctx, id); err != nil {
		return fmt.Errorf("jobservice: resume: %w", err)
	}
	if err := s.store.UpdateStatus(ctx, id, jobstore.Scheduled); err != nil {
		return fmt.Errorf("jobservice: resume: %w", err)
	}
	return nil
}
