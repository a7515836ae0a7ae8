package jobstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests. Mutations invoke afterCommit
// exactly as the durable store does: after the mutation is applied, never
// when the operation fails.
type MemStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*Job

	// FailCreate, FailUpdateStatus, and FailUpdateNextFire, when set,
	// make the corresponding operation return that error.
	FailCreate         error
	FailUpdateStatus   error
	FailUpdateNextFire error

	// StatusWrites records every UpdateStatus call in order.
	StatusWrites []Status
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{jobs: make(map[uuid.UUID]*Job)}
}

var _ Store = (*MemStore)(nil)

func (s *MemStore) Create(_ context.Context, job *Job, afterCommit func()) error {
	s.mu.Lock()
	if s.FailCreate != nil {
		s.mu.Unlock()
		return s.FailCreate
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	cp := *job
	s.jobs[job.ID] = &cp
	s.mu.Unlock()

	if afterCommit != nil {
		afterCommit()
	}
	return nil
}

func (s *MemStore) Get(_ context.Context, id uuid.UUID) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (s *MemStore) List(_ context.Context) ([]*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		cp := *j
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemStore) Update(_ context.Context, job *Job, afterCommit func()) error {
	s.mu.Lock()
	if _, ok := s.jobs[job.ID]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	job.UpdatedAt = time.Now().UTC()
	cp := *job
	s.jobs[job.ID] = &cp
	s.mu.Unlock()

	if afterCommit != nil {
		afterCommit()
	}
	return nil
}

func (s *MemStore) Delete(_ context.Context, id uuid.UUID, afterCommit func()) error {
	s.mu.Lock()
	if _, ok := s.jobs[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.jobs, id)
	s.mu.Unlock()

	if afterCommit != nil {
		afterCommit()
	}
	return nil
}

func (s *MemStore) UpdateNextFire(_ context.Context, id uuid.UUID, wall time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdateNextFire != nil {
		return s.FailUpdateNextFire
	}
	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	w := wall
	j.NextFire = &w
	j.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemStore) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdateStatus != nil {
		return s.FailUpdateStatus
	}
	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	j.Status = status
	j.UpdatedAt = time.Now().UTC()
	s.StatusWrites = append(s.StatusWrites, status)
	return nil
}

// Snapshot returns a copy of the stored job, or nil if absent.
func (s *MemStore) Snapshot(id uuid.UUID) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil
	}
	cp := *j
	return &cp
}
