package port

import (
	"context"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/event"
)

// EventPublisher defines the port for publishing prediction events.
// Publishing is best-effort: implementations log and swallow delivery
// failures rather than surfacing them to callers.
type EventPublisher interface {
	PublishPrediction(ctx context.Context, evt event.PredictionMade)
}
