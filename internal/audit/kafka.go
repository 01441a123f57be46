package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// defaultPublishTimeout bounds one Publish call when no other timeout is configured.
const defaultPublishTimeout = 2 * time.Second

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter builds an asynchronous writer: WriteMessages only queues, and delivery
// failures are logged from the completion callback. Keys hash to partitions so events for
// one subject stay ordered.
func NewKafkaWriter(brokers []string, topic string, logger *slog.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            3,
		WriteTimeout:           5 * time.Second,
		BatchTimeout:           100 * time.Millisecond,
		Async:                  true,
		Completion:             completionLogger(logger),
		AllowAutoTopicCreation: true,
	}
}

func completionLogger(logger *slog.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err != nil {
			logger.Error("failed to deliver audit events", "count", len(msgs), "error", err)
		}
	}
}

type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

type KafkaOption func(*KafkaPublisher)

// WithPublishTimeout caps how long Publish waits on the writer.
func WithPublishTimeout(d time.Duration) KafkaOption {
	return func(p *KafkaPublisher) { p.timeout = d }
}

func NewKafkaPublisher(writer MessageWriter, opts ...KafkaOption) *KafkaPublisher {
	p := &KafkaPublisher{writer: writer, timeout: defaultPublishTimeout}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Subject),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write audit event to kafka: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
