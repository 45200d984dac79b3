package service

import (
	"math"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/valueobject"
)

// FraudDetectionModelName is the registry key for the fraud detection model.
const FraudDetectionModelName = "fraud_detection"

// Default feature values used when a request omits a feature.
const (
	defaultAmount           = 100.0
	defaultTimeOfDay        = 12.0
	defaultDayOfWeek        = 3.0
	defaultPrevTransactions = 10.0
)

// FraudDetectionParams are the fitted weights of the fraud classifier.
// Large amounts at odd hours with the card absent push the probability up.
type FraudDetectionParams struct {
	AmountWeight     float64 `json:"amount_weight"`
	TimeWeight       float64 `json:"time_weight"`
	CardAbsentWeight float64 `json:"card_absent_weight"`
	AmountScale      float64 `json:"amount_scale"`
	FraudThreshold   float64 `json:"fraud_threshold"`
}

// DefaultFraudDetectionParams returns the weights fitted on the synthetic
// training distribution.
func DefaultFraudDetectionParams() FraudDetectionParams {
	return FraudDetectionParams{
		AmountWeight:     0.4,
		TimeWeight:       0.3,
		CardAbsentWeight: 0.3,
		AmountScale:      10000,
		FraudThreshold:   0.7,
	}
}

// FraudDetectionModel classifies transactions as fraudulent or legitimate.
// It is immutable after construction and safe for concurrent use.
type FraudDetectionModel struct {
	params FraudDetectionParams
}

// NewFraudDetectionModel creates a fraud detection model with the given parameters.
func NewFraudDetectionModel(params FraudDetectionParams) *FraudDetectionModel {
	return &FraudDetectionModel{params: params}
}

// Name implements Model.
func (m *FraudDetectionModel) Name() string {
	return FraudDetectionModelName
}

// Predict builds the 5-element feature vector in fixed order (amount, time
// of day, day of week, card present as 0/1, previous transaction count),
// computes the fraud probability, and bands it into a risk level.
// Confidence is the probability of the predicted class.
func (m *FraudDetectionModel) Predict(features map[string]any) (model.PredictionResult, error) {
	cardPresent := 0.0
	if boolFeature(features, "card_present", true) {
		cardPresent = 1
	}

	vector := [5]float64{
		floatFeature(features, "amount", defaultAmount),
		floatFeature(features, "time_of_day", defaultTimeOfDay),
		floatFeature(features, "day_of_week", defaultDayOfWeek),
		cardPresent,
		floatFeature(features, "previous_transactions_count", defaultPrevTransactions),
	}

	probability := clamp(m.probability(vector), 0, 1)
	level := valueobject.FraudRiskLevelFromProbability(probability)

	return model.PredictionResult{
		Prediction: model.FraudPrediction{
			IsFraud:          probability > m.params.FraudThreshold,
			FraudProbability: probability,
			RiskLevel:        level.String(),
		},
		Confidence: math.Max(probability, 1-probability),
	}, nil
}

// probability applies the fitted weights to the feature vector. Day of week
// and previous transaction count carry no weight in the current fit but
// remain part of the vector contract.
func (m *FraudDetectionModel) probability(vector [5]float64) float64 {
	p := m.params
	return vector[0]/p.AmountScale*p.AmountWeight +
		math.Abs(vector[1]-12)/12*p.TimeWeight +
		(1-vector[3])*p.CardAbsentWeight
}
