package executor

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fluxcron/dispatcher/eventbus"
	"github.com/fluxcron/dispatcher/jobstore"
	"github.com/fluxcron/dispatcher/publisher"
	"github.com/fluxcron/dispatcher/records"
	"github.com/fluxcron/dispatcher/scheduler"
	"github.com/fluxcron/dispatcher/timezone"
)

// Executor performs the per-fire work dispatched by the scheduler engine.
type Executor struct {
	store     jobstore.Store
	source    records.Source
	publisher publisher.Publisher
	zones     *timezone.Service
	bus       *eventbus.EventBus
	logger    *slog.Logger
}

// New creates an Executor. bus may be nil when no event observers are
// wired.
func New(
	store jobstore.Store,
	source records.Source,
	pub publisher.Publisher,
	zones *timezone.Service,
	bus *eventbus.EventBus,
	logger *slog.Logger,
) *Executor {
	return &Executor{
		store:     store,
		source:    source,
		publisher: pub,
		zones:     zones,
		bus:       bus,
		logger:    logger.With("component", "executor.Executor"),
	}
}

// Execute runs one fire. It is installed as the scheduler engine's
// Handler; its return releases the job's per-fire exclusion.
//
// All status writes run in transactions independent of any caller's, so
// the outcome is durable even though the fire happens long after the API
// call that created the job returned.
func (e *Executor) Execute(ctx context.Context, fire scheduler.Fire) {
	log := e.logger.With("job_id", fire.JobID)

	job, err := e.store.Get(ctx, fire.JobID)
	if err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			log.Info("job gone before fire, aborting")
			return
		}
		log.Error("load job for fire", "error", err)
		return
	}

	if err := e.store.UpdateStatus(ctx, fire.JobID, jobstore.Running); err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			log.Info("job deleted before fire, aborting")
			return
		}
		log.Error("mark job running", "error", err)
		return
	}

	recs, err := e.source.RecordsFor(ctx, job.TenantID)
	if err != nil {
		log.Error("read tenant records", "tenant_id", job.TenantID, "error", err)
		e.finish(ctx, fire, job.TenantID, false, 0, 0)
		return
	}

	published, err := e.publishAll(ctx, job.TenantID, recs)
	if err != nil {
		if ctx.Err() != nil {
			// Canceled mid-fire: the job is being deleted, its row is
			// going away, so no terminal status is written.
			log.Info("fire canceled", "published", published)
			return
		}
		log.Error("fire failed", "tenant_id", job.TenantID, "records", len(recs),
			"published", published, "error", err)
		e.finish(ctx, fire, job.TenantID, false, len(recs), published)
		return
	}

	log.Info("fire completed", "tenant_id", job.TenantID, "records", len(recs))
	e.finish(ctx, fire, job.TenantID, true, len(recs), published)
}

// publishAll fans recs out to the bus concurrently, with no ordering
// guarantee within the fire. It returns the number of successful
// publishes and the first error observed, if any: one failed record
// fails the whole fire, and already-published records stay on the bus.
func (e *Executor) publishAll(ctx context.Context, tenantID string, recs []records.Record) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		ok       int
	)
	for _, rec := range recs {
		if ctx.Err() != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = ctx.Err()
			}
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(rec records.Record) {
			defer wg.Done()
			_, err := e.publisher.Publish(ctx, tenantID, rec)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			ok++
		}(rec)
	}
	wg.Wait()

	return ok, firstErr
}

// finish persists the fire's terminal status and, for recurring jobs, the
// next wall-clock fire already computed by the engine. The writes use a
// fresh context so a canceled fire context cannot block recording the
// outcome.
func (e *Executor) finish(ctx context.Context, fire scheduler.Fire, tenantID string, succeeded bool, total, published int) {
	log := e.logger.With("job_id", fire.JobID)

	status := jobstore.CompletedFailure
	if succeeded {
		if fire.Recurring {
			status = jobstore.Scheduled
		} else {
			status = jobstore.CompletedSuccess
		}
	}

	writeCtx := context.WithoutCancel(ctx)
	if err := e.store.UpdateStatus(writeCtx, fire.JobID, status); err != nil && !errors.Is(err, jobstore.ErrNotFound) {
		log.Error("persist fire status", "status", status, "error", err)
	}

	if fire.Recurring && !fire.NextFire.IsZero() {
		wall, err := e.zones.ToWall(fire.NextFire, fire.Zone)
		if err != nil {
			log.Error("convert next fire to wall clock", "zone", fire.Zone, "error", err)
		} else if err := e.store.UpdateNextFire(writeCtx, fire.JobID, wall); err != nil && !errors.Is(err, jobstore.ErrNotFound) {
			log.Error("persist next fire", "error", err)
		}
	}

	if e.bus != nil {
		eventbus.Publish(writeCtx, e.bus, FireCompleted{
			JobID:     fire.JobID,
			TenantID:  tenantID,
			Succeeded: succeeded,
			Records:   total,
			Published: published,
		}, "jobs")
	}
}
