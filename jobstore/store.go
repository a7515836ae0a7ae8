package jobstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the durable CRUD contract over Job records.
//
// Create, Update, and Delete are transactional. afterCommit, when
// non-nil, is invoked once the transaction has successfully committed and
// is never invoked on rollback. UpdateNextFire and UpdateStatus each run
// in their own independent transaction, committing regardless of any
// caller transaction's outcome.
type Store interface {
	Create(ctx context.Context, job *Job, afterCommit func()) error
	Get(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context) ([]*Job, error)
	Update(ctx context.Context, job *Job, afterCommit func()) error
	Delete(ctx context.Context, id uuid.UUID, afterCommit func()) error
	UpdateNextFire(ctx context.Context, id uuid.UUID, wall time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}
