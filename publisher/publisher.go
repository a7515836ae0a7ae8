package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/fluxcron/dispatcher/backoff"
	"github.com/fluxcron/dispatcher/records"
)

// Ack is the bus's acknowledgment of a single published record.
type Ack struct {
	// MessageID is the bus-assigned id of the appended entry.
	MessageID string

	// Partition is the topic partition the record landed on.
	Partition int
}

// Publisher delivers one record to the message bus.
type Publisher interface {
	Publish(ctx context.Context, tenantID string, rec records.Record) (Ack, error)
}

// Config tunes the publisher's topic layout and retry policy.
type Config struct {
	// Topic is the stream name prefix. Default "user-data".
	Topic string

	// Partitions is the number of per-topic streams. Records hash to a
	// partition by tenant id. Default 3.
	Partitions int

	// BaseDelay is the first retry delay. Default 1s.
	BaseDelay time.Duration

	// Multiplier grows the delay after each failed attempt. Default 2.
	Multiplier float64

	// MaxAttempts bounds total delivery attempts. Default 3.
	MaxAttempts int
}

func (c Config) withDefaults() Config {
	if c.Topic == "" {
		c.Topic = "user-data"
	}
	if c.Partitions <= 0 {
		c.Partitions = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	return c
}

// message is the self-describing bus payload for one record.
type message struct {
	Key      string `json:"key"`
	TenantID string `json:"tenant_id"`
	RecordID string `json:"record_id"`
	Payload  []byte `json:"payload"`
}

// ValkeyPublisher is a Publisher appending records to Valkey streams.
type ValkeyPublisher struct {
	client valkey.Client
	cfg    Config
	logger *slog.Logger
}

// NewValkeyPublisher creates a Publisher over client.
func NewValkeyPublisher(client valkey.Client, cfg Config, logger *slog.Logger) *ValkeyPublisher {
	return &ValkeyPublisher{
		client: client,
		cfg:    cfg.withDefaults(),
		logger: logger.With("component", "publisher.ValkeyPublisher"),
	}
}

var _ Publisher = (*ValkeyPublisher)(nil)

// Publish appends rec to the partition stream owned by tenantID, keyed
// tenantID + "-" + rec.ID. Failed appends retry with exponential backoff
// up to MaxAttempts before reporting ErrPublishFailed.
func (p *ValkeyPublisher) Publish(ctx context.Context, tenantID string, rec records.Record) (Ack, error) {
	if rec.ID == "" && rec.Payload == nil {
		return Ack{}, ErrNilRecord
	}

	key := tenantID + "-" + rec.ID
	partition := p.partitionFor(tenantID)
	stream := fmt.Sprintf("%s-%d", p.cfg.Topic, partition)

	value, err := json.Marshal(message{
		Key:      key,
		TenantID: tenantID,
		RecordID: rec.ID,
		Payload:  rec.Payload,
	})
	if err != nil {
		return Ack{}, fmt.Errorf("publisher: encode record %s: %w", key, err)
	}

	policy := backoff.WithContext(ctx, backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(p.cfg.BaseDelay),
			backoff.WithMultiplier(p.cfg.Multiplier),
			backoff.WithRandomizationFactor(0),
		),
		uint64(p.cfg.MaxAttempts-1),
	))

	attempt := 0
	msgID, err := backoff.RetryNotifyWithData(func() (string, error) {
		attempt++
		cmd := p.client.B().Xadd().Key(stream).Id("*").
			FieldValue().
			FieldValue("key", key).
			FieldValue("value", string(value)).
			Build()
		id, err := p.client.Do(ctx, cmd).ToString()
		if err != nil {
			return "", fmt.Errorf("xadd %s: %w", stream, err)
		}
		return id, nil
	}, policy, func(err error, delay time.Duration) {
		p.logger.Warn("publish attempt failed",
			"key", key, "stream", stream, "attempt", attempt, "retry_in", delay, "error", err)
	})
	if err != nil {
		return Ack{}, fmt.Errorf("%w: %s: %w", ErrPublishFailed, key, err)
	}

	return Ack{MessageID: msgID, Partition: partition}, nil
}

func (p *ValkeyPublisher) partitionFor(tenantID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tenantID))
	return int(h.Sum32() % uint32(p.cfg.Partitions))
}
