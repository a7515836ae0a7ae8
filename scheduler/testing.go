package scheduler

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemTriggerStore is an in-memory TriggerStore for tests.
type MemTriggerStore struct {
	mu       sync.Mutex
	triggers map[uuid.UUID]*Trigger
}

// NewMemTriggerStore creates an empty MemTriggerStore.
func NewMemTriggerStore() *MemTriggerStore {
	return &MemTriggerStore{triggers: make(map[uuid.UUID]*Trigger)}
}

var _ TriggerStore = (*MemTriggerStore)(nil)

func (s *MemTriggerStore) Upsert(_ context.Context, t *Trigger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.triggers[t.JobID] = &cp
	return nil
}

func (s *MemTriggerStore) Delete(_ context.Context, jobID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.triggers, jobID)
	return nil
}

func (s *MemTriggerStore) LoadActive(_ context.Context) ([]*Trigger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Trigger, 0, len(s.triggers))
	for _, t := range s.triggers {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemTriggerStore) SetPaused(_ context.Context, jobID uuid.UUID, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.triggers[jobID]
	if !ok {
		return ErrNotFound
	}
	t.Paused = paused
	return nil
}

// Snapshot returns a copy of the stored trigger, or nil if absent.
func (s *MemTriggerStore) Snapshot(jobID uuid.UUID) *Trigger {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.triggers[jobID]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}
