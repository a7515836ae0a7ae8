package records

import "context"

// Record is one opaque tenant record. Payload is a self-describing
// serialization owned by the entity store; the dispatcher never inspects
// it beyond forwarding it to the message bus.
type Record struct {
	ID      string
	Payload []byte
}

// Source yields the records belonging to a tenant, in a stable order.
type Source interface {
	RecordsFor(ctx context.Context, tenantID string) ([]Record, error)
}
