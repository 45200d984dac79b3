package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/pkg/events"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/pkg/kafka"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/event"
)

// PredictionTopic is the Kafka topic prediction events are published to.
const PredictionTopic = "ml.predictions"

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
// swallowed so the prediction response is never blocked by the broker.
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

// PublishPrediction wraps the prediction event in the platform envelope and
// sends it to the predictions topic.
func (p *KafkaPublisher) PublishPrediction(ctx context.Context, evt event.PredictionMade) {
	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to marshal prediction event", "error", err)
		return
	}

	base := events.NewBaseEvent(evt.EventType(), evt.AggregateID(), "Prediction", payload)

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

	// Bound the broker round trip so a slow Kafka cannot hold the request.
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(evt.AggregateID()),
		Value: wire,
		Headers: map[string]string{
			"event_type": base.EventType(),
		},
	}

	if err := p.producer.Publish(publishCtx, PredictionTopic, msg); err != nil {
		p.logger.Warn("prediction event publish failed, continuing",
			"topic", PredictionTopic,
			"event_type", base.EventType(),
			"error", err,
		)
		return
	}

	p.logger.Debug("prediction event published",
		"topic", PredictionTopic,
		"event_id", base.EventID().String(),
		"model", evt.ModelName,
	)
}
