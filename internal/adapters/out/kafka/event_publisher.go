// Package kafka publishes workflow events to a Kafka topic. Each message
// carries an Envelope; the message key is the order id so all events of an
// order land on the same partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/events"

	"github.com/google/uuid"
	skafka "github.com/segmentio/kafka-go"
)

const (
	producerName  = "shipping-wizard"
	schemaVersion = 1
)

// Envelope wraps every published event.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// Writer is the part of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// EventPublisher implements ports.EventPublisher.
type EventPublisher struct {
	writer Writer
	now    func() time.Time
}

// NewEventPublisher writes to topic on brokers, hashing keys onto partitions.
func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return NewEventPublisherWithWriter(&skafka.Writer{
		Addr:         skafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}, time.Now)
}

func NewEventPublisherWithWriter(w Writer, now func() time.Time) *EventPublisher {
	return &EventPublisher{writer: w, now: now}
}

// Publish writes one message and waits for the broker to acknowledge it.
func (p *EventPublisher) Publish(ctx context.Context, correlationID string, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", e.EventType(), err)
	}

	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     e.EventType(),
		EventVersion:  schemaVersion,
		OccurredAt:    p.now().UTC(),
		Producer:      producerName,
		CorrelationID: correlationID,
		Payload:       payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	msg := skafka.Message{
		Key:   []byte(e.Key()),
		Value: value,
		Headers: []skafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", env.EventType, err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
