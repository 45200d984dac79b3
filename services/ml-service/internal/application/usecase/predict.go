package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/event"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/port"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/service"
)

// Predict is the use case for the generic predict-by-name operation.
type Predict struct {
	registry  *service.Registry
	publisher port.EventPublisher
}

// NewPredict creates a new Predict use case.
func NewPredict(registry *service.Registry, publisher port.EventPublisher) *Predict {
	return &Predict{
		registry:  registry,
		publisher: publisher,
	}
}

// Execute dispatches the raw feature map to the named model and publishes a
// best-effort prediction event.
func (uc *Predict) Execute(ctx context.Context, req dto.PredictionRequest) (dto.PredictionResponse, error) {
	result, err := uc.registry.Predict(req.ModelName, req.Features)
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	resp := newPredictionResponse(req.ModelName, req.CustomerID, result)
	uc.publisher.PublishPrediction(ctx, predictionMade(resp))
	return resp, nil
}

// newPredictionResponse assembles the response shared by all prediction
// endpoints, stamping a fresh correlation ID.
func newPredictionResponse(modelName, customerID string, result model.PredictionResult) dto.PredictionResponse {
	return dto.PredictionResponse{
		ModelName:     modelName,
		Prediction:    result.Prediction,
		Confidence:    result.Confidence,
		Timestamp:     time.Now().UTC(),
		CustomerID:    customerID,
		CorrelationID: uuid.New().String(),
	}
}

// predictionMade derives the domain event from a prediction response.
func predictionMade(resp dto.PredictionResponse) event.PredictionMade {
	return event.PredictionMade{
		CorrelationID: resp.CorrelationID,
		ModelName:     resp.ModelName,
		CustomerID:    resp.CustomerID,
		Prediction:    resp.Prediction,
		Confidence:    resp.Confidence,
		PredictedAt:   resp.Timestamp,
	}
}
