package event

import "time"

// EventTypePredictionMade is emitted after every successful model prediction.
const EventTypePredictionMade = "ml.prediction.made"

// PredictionMade is published when a model has produced a prediction.
// Delivery is best-effort; consumers must tolerate gaps.
type PredictionMade struct {
	CorrelationID string    `json:"correlation_id"`
	ModelName     string    `json:"model_name"`
	CustomerID    string    `json:"customer_id,omitempty"`
	Prediction    any       `json:"prediction"`
	Confidence    float64   `json:"confidence"`
	PredictedAt   time.Time `json:"predicted_at"`
}

// EventType returns the event type identifier.
func (e PredictionMade) EventType() string {
	return EventTypePredictionMade
}

// AggregateID returns the correlation ID as the aggregate identifier.
func (e PredictionMade) AggregateID() string {
	return e.CorrelationID
}
