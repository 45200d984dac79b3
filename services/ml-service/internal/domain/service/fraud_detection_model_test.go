package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/model"
)

func fraudPrediction(t *testing.T, features map[string]any) (model.FraudPrediction, float64) {
	t.Helper()

	m := NewFraudDetectionModel(DefaultFraudDetectionParams())
	result, err := m.Predict(features)
	require.NoError(t, err)

	pred, ok := result.Prediction.(model.FraudPrediction)
	require.True(t, ok, "expected a FraudPrediction, got %T", result.Prediction)
	return pred, result.Confidence
}

func TestFraudDetectionModel_Predict(t *testing.T) {
	t.Run("probability stays within 0-1", func(t *testing.T) {
		inputs := []map[string]any{
			{},
			{"amount": 1000000.0, "time_of_day": 3.0, "card_present": false},
			{"amount": 0.0, "time_of_day": 12.0, "card_present": true},
		}
		for _, features := range inputs {
			pred, _ := fraudPrediction(t, features)
			assert.GreaterOrEqual(t, pred.FraudProbability, 0.0)
			assert.LessOrEqual(t, pred.FraudProbability, 1.0)
		}
	})

	t.Run("risk level bands on probability at 0.3 and 0.7", func(t *testing.T) {
		// Midday card-present transaction: probability = amount/10000*0.4.
		pred, _ := fraudPrediction(t, map[string]any{
			"amount": 100.0, "time_of_day": 12.0, "card_present": true,
		})
		assert.InDelta(t, 0.004, pred.FraudProbability, 1e-9)
		assert.Equal(t, "LOW", pred.RiskLevel)
		assert.False(t, pred.IsFraud)

		pred, _ = fraudPrediction(t, map[string]any{
			"amount": 9000.0, "time_of_day": 12.0, "card_present": true,
		})
		assert.InDelta(t, 0.36, pred.FraudProbability, 1e-9)
		assert.Equal(t, "MEDIUM", pred.RiskLevel)
		assert.False(t, pred.IsFraud)

		pred, _ = fraudPrediction(t, map[string]any{
			"amount": 9500.0, "time_of_day": 0.0, "card_present": false,
		})
		assert.InDelta(t, 0.98, pred.FraudProbability, 1e-9)
		assert.Equal(t, "HIGH", pred.RiskLevel)
		assert.True(t, pred.IsFraud)
	})

	t.Run("card absence raises the probability", func(t *testing.T) {
		present, _ := fraudPrediction(t, map[string]any{
			"amount": 500.0, "time_of_day": 12.0, "card_present": true,
		})
		absent, _ := fraudPrediction(t, map[string]any{
			"amount": 500.0, "time_of_day": 12.0, "card_present": false,
		})
		assert.Greater(t, absent.FraudProbability, present.FraudProbability)
	})

	t.Run("confidence is the probability of the predicted class", func(t *testing.T) {
		pred, confidence := fraudPrediction(t, map[string]any{
			"amount": 9500.0, "time_of_day": 0.0, "card_present": false,
		})
		assert.True(t, pred.IsFraud)
		assert.InDelta(t, pred.FraudProbability, confidence, 1e-9)

		pred, confidence = fraudPrediction(t, map[string]any{
			"amount": 100.0, "time_of_day": 12.0, "card_present": true,
		})
		assert.False(t, pred.IsFraud)
		assert.InDelta(t, 1-pred.FraudProbability, confidence, 1e-9)
	})

	t.Run("missing features fall back to model defaults", func(t *testing.T) {
		withDefaults, _ := fraudPrediction(t, map[string]any{})
		explicit, _ := fraudPrediction(t, map[string]any{
			"amount":                      100.0,
			"time_of_day":                 12.0,
			"day_of_week":                 3.0,
			"card_present":                true,
			"previous_transactions_count": 10.0,
		})
		assert.Equal(t, explicit, withDefaults)
	})
}
