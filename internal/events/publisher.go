package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"example.com/signup/internal/observability"
)

// Publisher delivers roster events to interested consumers. Delivery is
// best-effort: a lost event never fails the originating request.
type Publisher interface {
	SignedUp(ctx context.Context, activity, email string, rosterSize int)
	Unregistered(ctx context.Context, activity, email string, rosterSize int)
	Close() error
}

// writer is the subset of kafka.Writer the publisher needs.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits roster events to a single topic, keyed by activity
// name so per-activity ordering survives partitioning.
type KafkaPublisher struct {
	writer  writer
	timeout time.Duration
	logger  *log.Logger
	now     func() time.Time
}

// Option customises a KafkaPublisher.
type Option func(*KafkaPublisher)

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// WithClock overrides the timestamp source for tests.
func WithClock(now func() time.Time) Option {
	return func(p *KafkaPublisher) {
		p.now = now
	}
}

// withWriter swaps the kafka writer for a stub in tests.
func withWriter(w writer) Option {
	return func(p *KafkaPublisher) {
		p.writer = w
	}
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, timeout time.Duration, opts ...Option) *KafkaPublisher {
	p := &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
		timeout: timeout,
		logger:  log.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignedUp implements Publisher.
func (p *KafkaPublisher) SignedUp(ctx context.Context, activity, email string, rosterSize int) {
	p.publish(TypeSignedUp, activity, email, rosterSize)
}

// Unregistered implements Publisher.
func (p *KafkaPublisher) Unregistered(ctx context.Context, activity, email string, rosterSize int) {
	p.publish(TypeUnregistered, activity, email, rosterSize)
}

// publish hands the event to a goroutine with its own deadline. The request
// context is deliberately not reused: the HTTP response must not wait on,
// or be cancelled alongside, broker delivery.
func (p *KafkaPublisher) publish(eventType, activity, email string, rosterSize int) {
	event := RosterChanged{
		EventID:    uuid.NewString(),
		Activity:   activity,
		Email:      email,
		RosterSize: rosterSize,
		OccurredAt: p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Printf("events: marshal %s failed: %v", eventType, err)
		observability.RecordEventFailed(eventType)
		return
	}

	msg := kafka.Message{
		Key:   []byte(activity),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Printf("events: publish %s for %q failed: %v", eventType, activity, err)
			observability.RecordEventFailed(eventType)
			return
		}
		observability.RecordEventPublished(eventType)
	}()
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Wired when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) SignedUp(ctx context.Context, activity, email string, rosterSize int)     {}
func (NoopPublisher) Unregistered(ctx context.Context, activity, email string, rosterSize int) {}
func (NoopPublisher) Close() error                                                             { return nil }
