package usecase

import (
	"context"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/port"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/service"
)

// PredictFraud translates a transaction into the feature mapping the fraud
// detection model expects and runs the model.
type PredictFraud struct {
	registry  *service.Registry
	publisher port.EventPublisher
}

// NewPredictFraud creates a new PredictFraud use case.
func NewPredictFraud(registry *service.Registry, publisher port.EventPublisher) *PredictFraud {
	return &PredictFraud{
		registry:  registry,
		publisher: publisher,
	}
}

// Execute maps the transaction fields onto model features and scores them.
func (uc *PredictFraud) Execute(ctx context.Context, req dto.FraudDetectionRequest) (dto.PredictionResponse, error) {
	features := map[string]any{
		"amount":                      req.Amount.InexactFloat64(),
		"merchant_category":           req.MerchantCategory,
		"location":                    req.Location,
		"time_of_day":                 float64(req.TimeOfDay),
		"day_of_week":                 float64(req.DayOfWeek),
		"card_present":                req.CardPresent,
		"previous_transactions_count": float64(req.PreviousTransactionsCount),
	}

	result, err := uc.registry.Predict(service.FraudDetectionModelName, features)
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	resp := newPredictionResponse(service.FraudDetectionModelName, req.CustomerID, result)
	uc.publisher.PublishPrediction(ctx, predictionMade(resp))
	return resp, nil
}
