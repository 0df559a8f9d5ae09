package queue

import (
	"context"
	"encoding/json"
	"time"

	"hanabi_backend/internal/logger"

	"github.com/segmentio/kafka-go"
)

// DecisionEvent is emitted whenever an admin decides a submission. Other
// services (analytics, moderation audit) consume these; nothing in this
// process depends on delivery.
type DecisionEvent struct {
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	RequestType string    `json:"request_type"` // identity | profile_photo | bio_update
	Decision    string    `json:"decision"`     // approved | rejected
	Reason      string    `json:"reason,omitempty"`
	DecidedAt   time.Time `json:"decided_at"`
}

type Producer interface {
	PublishDecision(event DecisionEvent)
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) Producer {
	return &kafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// PublishDecision is fire-and-forget: a broker outage must never block or
// roll back the status transition that produced the event.
func (p *kafkaProducer) PublishDecision(event DecisionEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		logger.Error("failed to marshal decision event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		logger.Error("failed to publish decision event", "error", err, "request_id", event.RequestID)
	}
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// NoopProducer is used when no brokers are configured.
type NoopProducer struct{}

func (NoopProducer) PublishDecision(event DecisionEvent) {}
func (NoopProducer) Close() error                        { return nil }
