package publisher

import (
	"context"
	"fmt"
	"sync"

	"github.com/fluxcron/dispatcher/records"
)

// TestPublisher is an in-memory Publisher for tests. It records every
// publish and can be told to fail specific record ids.
type TestPublisher struct {
	mu        sync.Mutex
	published []PublishedRecord
	failIDs   map[string]error
	seq       int
}

// PublishedRecord is one successfully published record, as seen by a
// TestPublisher.
type PublishedRecord struct {
	Key      string
	TenantID string
	Record   records.Record
}

// NewTestPublisher creates an empty TestPublisher.
func NewTestPublisher() *TestPublisher {
	return &TestPublisher{failIDs: make(map[string]error)}
}

// FailRecord makes publishes of recordID return err.
func (p *TestPublisher) FailRecord(recordID string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failIDs[recordID] = err
}

// Published returns a snapshot of successful publishes, in publish order.
func (p *TestPublisher) Published() []PublishedRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedRecord, len(p.published))
	copy(out, p.published)
	return out
}

func (p *TestPublisher) Publish(ctx context.Context, tenantID string, rec records.Record) (Ack, error) {
	if rec.ID == "" && rec.Payload == nil {
		return Ack{}, ErrNilRecord
	}
	if err := ctx.Err(); err != nil {
		return Ack{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.failIDs[rec.ID]; ok {
		return Ack{}, err
	}
	p.seq++
	p.published = append(p.published, PublishedRecord{
		Key:      tenantID + "-" + rec.ID,
		TenantID: tenantID,
		Record:   rec,
	})
	return Ack{MessageID: fmt.Sprintf("%d-0", p.seq)}, nil
}

var _ Publisher = (*TestPublisher)(nil)
