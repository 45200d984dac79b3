package port

import (
	"context"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/domain/model"
)

// RiskPredictor defines the port for obtaining model predictions from the
// inference service. Implementations never fail: downstream errors are
// absorbed into the result's Outcome, with fallback defaults substituted
// per the two-tier policy.
type RiskPredictor interface {
	// PredictCreditRisk scores a loan application for a customer.
	PredictCreditRisk(ctx context.Context, customerID string, features model.CreditFeatures) model.CreditRiskResult

	// PredictFraud scores a transaction for fraud.
	PredictFraud(ctx context.Context, txn model.Transaction) model.FraudResult
}
