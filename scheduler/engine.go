package scheduler

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fluxcron/dispatcher/cronspec"
)

// Handler executes one fire. The engine calls it from a worker goroutine
// and treats its return as final - the engine itself never retries a fire.
type Handler func(ctx context.Context, fire Fire)

// Config tunes the engine's concurrency and backpressure behavior.
type Config struct {
	// Workers is the number of concurrent fire executions. Default 10.
	Workers int

	// QueueCapacity bounds the in-flight dispatch channel. Default 25.
	QueueCapacity int

	// PollInterval is how often pending (backpressured) dispatches are
	// retried. Default 100ms.
	PollInterval time.Duration

	// LateFireThreshold is the lag after which a held dispatch logs a
	// late-fire warning. Default 1s.
	LateFireThreshold time.Duration

	// DispatchSlop allows a trigger to be considered due slightly before
	// its exact instant, absorbing scheduler wake-up jitter. Default 5ms.
	DispatchSlop time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 10
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = 25
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	if c.LateFireThreshold <= 0 {
		c.LateFireThreshold = time.Second
	}
	if c.DispatchSlop <= 0 {
		c.DispatchSlop = 5 * time.Millisecond
	}
	return c
}

// pendingFire is a due fire that could not be handed to the worker pool
// immediately because it was saturated.
type pendingFire struct {
	fire      Fire
	loggedLag bool
}

// fireState tracks one in-flight execution. cancel is set by the worker
// once it has derived the fire's context, so a concurrent delete can
// interrupt the execution at its next suspension point.
type fireState struct {
	cancel context.CancelFunc
}

// Engine is the in-memory priority queue of due triggers, backed by a
// TriggerStore, dispatching onto a bounded worker pool. It implements the
// OnStart/OnStop lifecycle so the composition root can start and stop it
// like any other long-running component.
type Engine struct {
	cfg    Config
	store  TriggerStore
	logger *slog.Logger

	mu     sync.Mutex
	queue  *triggerHeap
	paused map[uuid.UUID]*Trigger
	wake   chan struct{}

	runMu   sync.Mutex
	running map[uuid.UUID]*fireState

	handler Handler

	pendingMu sync.Mutex
	pending   []pendingFire
	workCh    chan Fire

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an Engine. handler must be set (via SetHandler) before
// OnStart, normally by the composition root wiring the executor.
func NewEngine(store TriggerStore, logger *slog.Logger, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:     cfg,
		store:   store,
		logger:  logger.With("component", "scheduler.Engine"),
		queue:   newTriggerHeap(),
		paused:  make(map[uuid.UUID]*Trigger),
		wake:    make(chan struct{}, 1),
		running: make(map[uuid.UUID]*fireState),
		workCh:  make(chan Fire, cfg.QueueCapacity),
	}
}

// SetHandler registers the function invoked for each dispatched fire.
func (e *Engine) SetHandler(h Handler) { e.handler = h }

// Name identifies the engine for lifecycle logging.
func (e *Engine) Name() string { return "scheduler" }

// OnStart rehydrates the queue from the TriggerStore and starts the
// dispatcher, the pending-retry loop, and the worker pool.
func (e *Engine) OnStart(ctx context.Context) error {
	triggers, err := e.store.LoadActive(ctx)
	if err != nil {
		return fmt.Errorf("scheduler: reload triggers: %w", err)
	}

	e.mu.Lock()
	for _, t := range triggers {
		if t.Paused {
			e.paused[t.JobID] = t
			continue
		}
		heap.Push(e.queue, t)
	}
	e.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.wg.Add(2 + e.cfg.Workers)
	go e.dispatchLoop(runCtx)
	go e.pendingLoop(runCtx)
	for i := 0; i < e.cfg.Workers; i++ {
		go e.workerLoop(runCtx)
	}

	e.logger.Info("scheduler engine started", "triggers", len(triggers), "workers", e.cfg.Workers)
	return nil
}

// OnStop cancels outstanding work and waits for goroutines to exit.
func (e *Engine) OnStop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register persists a new Trigger for jobID per spec and enqueues it in
// memory, returning the computed first fire instant.
func (e *Engine) Register(ctx context.Context, jobID uuid.UUID, spec Spec) (time.Time, error) {
	now := time.Now().UTC()

	var next time.Time
	switch spec.Kind {
	case FireNow:
		next = now
	case FireAt:
		if spec.Instant.IsZero() {
			return time.Time{}, ErrInvalidSpec
		}
		next = spec.Instant
	case FireCron:
		if spec.Cron == "" || spec.Zone == "" {
			return time.Time{}, ErrInvalidSpec
		}
		n, err := cronspec.NextAfter(now, spec.Cron, spec.Zone)
		if err != nil {
			return time.Time{}, err
		}
		next = n
	default:
		return time.Time{}, ErrInvalidSpec
	}

	t := &Trigger{JobID: jobID, NextFireInstant: next, Cron: spec.Cron, Zone: spec.Zone}
	if err := e.store.Upsert(ctx, t); err != nil {
		return time.Time{}, err
	}

	e.mu.Lock()
	heap.Push(e.queue, t)
	e.mu.Unlock()
	e.signalWake()

	return next, nil
}

// Deregister removes jobID from the in-memory queue (or paused set),
// cancels any in-flight execution, and deletes the Trigger row. The
// in-flight worker observes the cancellation at its next suspension
// point.
func (e *Engine) Deregister(ctx context.Context, jobID uuid.UUID) error {
	e.mu.Lock()
	if i, ok := e.queue.indexOf(jobID); ok {
		heap.Remove(e.queue, i)
	}
	delete(e.paused, jobID)
	e.mu.Unlock()

	e.runMu.Lock()
	if fs, ok := e.running[jobID]; ok && fs.cancel != nil {
		fs.cancel()
	}
	e.runMu.Unlock()

	return e.store.Delete(ctx, jobID)
}

// Pause flips the persisted paused flag and removes jobID from the
// in-memory queue. A no-op if jobID is already paused.
func (e *Engine) Pause(ctx context.Context, jobID uuid.UUID) error {
	e.mu.Lock()
	if _, already := e.paused[jobID]; already {
		e.mu.Unlock()
		return nil
	}
	i, ok := e.queue.indexOf(jobID)
	if !ok {
		e.mu.Unlock()
		return ErrNotFound
	}
	t := heap.Remove(e.queue, i).(*Trigger)
	t.Paused = true
	e.paused[jobID] = t
	e.mu.Unlock()

	return e.store.SetPaused(ctx, jobID, true)
}

// Resume flips the persisted paused flag and reinserts jobID into the
// in-memory queue. Fires that were skipped while paused are dropped, not
// caught up: a recurring trigger whose stored next fire has already
// elapsed is advanced to the next future fire. A no-op if jobID is not
// paused.
func (e *Engine) Resume(ctx context.Context, jobID uuid.UUID) error {
	e.mu.Lock()
	t, ok := e.paused[jobID]
	if !ok {
		e.mu.Unlock()
		return nil
	}
	delete(e.paused, jobID)

	now := time.Now().UTC()
	if t.recurring() && !t.NextFireInstant.After(now) {
		if next, err := cronspec.NextAfter(now, t.Cron, t.Zone); err == nil {
			t.NextFireInstant = next
		}
	}
	t.Paused = false
	heap.Push(e.queue, t)
	e.mu.Unlock()
	e.signalWake()

	if err := e.store.Upsert(ctx, t); err != nil {
		return err
	}
	return e.store.SetPaused(ctx, jobID, false)
}

// MarkDone releases jobID's per-job exclusion so a future due fire can be
// dispatched. Called by the worker once a fire has reached a terminal
// outcome for the job.
func (e *Engine) MarkDone(jobID uuid.UUID) {
	e.runMu.Lock()
	delete(e.running, jobID)
	e.runMu.Unlock()
}

func (e *Engine) signalWake() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// dispatchLoop is the single dispatcher task: it sleeps until the
// earliest trigger is due or a wake signal arrives, then pops all due
// triggers in (next_fire_instant, job_id) order.
func (e *Engine) dispatchLoop(ctx context.Context) {
	defer e.wg.Done()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		e.mu.Lock()
		head := e.queue.peek()
		e.mu.Unlock()

		var wait time.Duration
		if head == nil {
			wait = time.Hour
		} else {
			wait = time.Until(head.NextFireInstant)
			if wait < 0 {
				wait = 0
			}
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return
		case <-e.wake:
			continue
		case <-timer.C:
			e.dispatchDue()
		}
	}
}

func (e *Engine) dispatchDue() {
	now := time.Now().UTC()

	e.mu.Lock()
	var due []*Trigger
	for {
		head := e.queue.peek()
		if head == nil || head.NextFireInstant.After(now.Add(e.cfg.DispatchSlop)) {
			break
		}
		due = append(due, heap.Pop(e.queue).(*Trigger))
	}
	e.mu.Unlock()

	for _, t := range due {
		e.handleDue(t, now)
	}
}

// handleDue claims the per-job exclusion for a due trigger and stages its
// fire for the worker pool. A trigger whose previous fire is still
// running is skipped, with the recurring schedule advanced so the job is
// not starved.
func (e *Engine) handleDue(t *Trigger, now time.Time) {
	e.runMu.Lock()
	_, alreadyRunning := e.running[t.JobID]
	if !alreadyRunning {
		e.running[t.JobID] = &fireState{}
	}
	e.runMu.Unlock()

	if alreadyRunning {
		e.logger.Warn("skipping overlapping fire", "job_id", t.JobID, "next_fire_instant", t.NextFireInstant)
		if t.recurring() {
			e.requeueRecurring(t, now)
		}
		return
	}

	fire := Fire{JobID: t.JobID, Due: t.NextFireInstant, Zone: t.Zone}
	if t.recurring() {
		if next, ok := e.requeueRecurring(t, now); ok {
			fire.Recurring = true
			fire.NextFire = next
		}
	} else if err := e.store.Delete(context.Background(), t.JobID); err != nil {
		e.logger.Error("delete fired trigger", "job_id", t.JobID, "error", err)
	}

	// Hand the fire to the pool directly unless earlier fires are already
	// held back: those must go first, so the new fire queues behind them
	// and pendingLoop drains all of them in order.
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()
	if len(e.pending) == 0 {
		select {
		case e.workCh <- fire:
			return
		default:
		}
	}
	e.pending = append(e.pending, pendingFire{fire: fire})
}

// requeueRecurring computes, persists, and enqueues the trigger's next
// fire before the current one runs, so a long-running execution cannot
// delay subsequent fires.
func (e *Engine) requeueRecurring(t *Trigger, now time.Time) (time.Time, bool) {
	next, err := cronspec.NextAfter(now, t.Cron, t.Zone)
	if err != nil {
		e.logger.Error("compute next fire", "job_id", t.JobID, "error", err)
		return time.Time{}, false
	}
	requeued := &Trigger{JobID: t.JobID, NextFireInstant: next, Cron: t.Cron, Zone: t.Zone}
	if err := e.store.Upsert(context.Background(), requeued); err != nil {
		e.logger.Error("persist next fire", "job_id", t.JobID, "error", err)
	}
	e.mu.Lock()
	heap.Push(e.queue, requeued)
	e.mu.Unlock()
	return next, true
}

// pendingLoop retries handing off backpressured dispatches: every
// PollInterval, attempt to push each pending fire into workCh, logging
// once lag exceeds LateFireThreshold. No fire is dropped.
func (e *Engine) pendingLoop(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.flushPending()
		}
	}
}

func (e *Engine) flushPending() {
	e.pendingMu.Lock()
	items := e.pending
	e.pending = nil
	e.pendingMu.Unlock()

	var remaining []pendingFire
	for _, p := range items {
		select {
		case e.workCh <- p.fire:
		default:
			if !p.loggedLag && time.Since(p.fire.Due) > e.cfg.LateFireThreshold {
				e.logger.Warn("late fire", "job_id", p.fire.JobID, "lag", time.Since(p.fire.Due))
				p.loggedLag = true
			}
			remaining = append(remaining, p)
		}
	}

	if len(remaining) == 0 {
		return
	}
	e.pendingMu.Lock()
	e.pending = append(remaining, e.pending...)
	e.pendingMu.Unlock()
}

func (e *Engine) workerLoop(ctx context.Context) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case fire := <-e.workCh:
			e.runFire(ctx, fire)
		}
	}
}

// runFire derives a cancelable context for one fire, exposes its cancel
// func for Deregister, and invokes the handler.
func (e *Engine) runFire(ctx context.Context, fire Fire) {
	fireCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	e.runMu.Lock()
	if fs, ok := e.running[fire.JobID]; ok {
		fs.cancel = cancel
	}
	e.runMu.Unlock()

	if e.handler != nil {
		e.handler(fireCtx, fire)
	}
	e.MarkDone(fire.JobID)
}
