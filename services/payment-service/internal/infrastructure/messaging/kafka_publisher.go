package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/pkg/events"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/pkg/kafka"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/port"
)

// PaymentTopic is the Kafka topic payment events are published to.
const PaymentTopic = "payment.events"

const publishTimeout = 5 * time.Second

// envelope is the wire format for published events.
type envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// KafkaPublisher implements port.EventPublisher on top of the shared Kafka
// producer. Publishing is strictly best-effort: every failure is logged and
// swallowed so payment requests are never blocked by the broker.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer *kafka.Producer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		logger:   logger,
	}
}

// PublishPaymentEvent wraps the event in the platform envelope and sends it
// to the payment events topic.
func (p *KafkaPublisher) PublishPaymentEvent(ctx context.Context, evt port.PaymentEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to marshal payment event", "error", err)
		return
	}

	base := events.NewBaseEvent(evt.EventType(), evt.AggregateID(), "Payment", payload)

	wire, err := json.Marshal(envelope{
		EventID:       base.EventID().String(),
		EventType:     base.EventType(),
		AggregateID:   base.AggregateID(),
		AggregateType: base.AggregateType(),
		OccurredAt:    base.OccurredAt(),
		Payload:       base.Payload(),
	})
	if err != nil {
		p.logger.Error("failed to marshal event envelope", "error", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(evt.AggregateID()),
		Value: wire,
		Headers: map[string]string{
			"event_type": base.EventType(),
		},
	}

	if err := p.producer.Publish(publishCtx, PaymentTopic, msg); err != nil {
		p.logger.Warn("payment event publish failed, continuing",
			"topic", PaymentTopic,
			"event_type", base.EventType(),
			"error", err,
		)
		return
	}

	p.logger.Debug("payment event published",
		"topic", PaymentTopic,
		"event_id", base.EventID().String(),
		"event_type", base.EventType(),
	)
}
