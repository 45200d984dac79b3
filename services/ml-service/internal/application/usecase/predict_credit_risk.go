package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/port"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/service"
)

// PredictCreditRisk translates a customer-facing credit application into
// the feature mapping the credit risk model expects and runs the model.
type PredictCreditRisk struct {
	registry  *service.Registry
	publisher port.EventPublisher
}

// NewPredictCreditRisk creates a new PredictCreditRisk use case.
func NewPredictCreditRisk(registry *service.Registry, publisher port.EventPublisher) *PredictCreditRisk {
	return &PredictCreditRisk{
		registry:  registry,
		publisher: publisher,
	}
}

// Execute maps the request fields onto model features, deriving the
// debt-to-income ratio from income and debt, and scores them.
func (uc *PredictCreditRisk) Execute(ctx context.Context, req dto.CreditRiskRequest) (dto.PredictionResponse, error) {
	features := map[string]any{
		"annual_income":         req.AnnualIncome.InexactFloat64(),
		"credit_history_length": float64(req.CreditHistoryLength),
		"current_debt":          req.CurrentDebt.InexactFloat64(),
		"employment_status":     req.EmploymentStatus,
		"age":                   float64(req.Age),
		"loan_amount":           req.LoanAmount.InexactFloat64(),
		"loan_purpose":          req.LoanPurpose,
		"debt_to_income_ratio":  debtToIncomeRatio(req.CurrentDebt, req.AnnualIncome),
	}

	result, err := uc.registry.Predict(service.CreditRiskModelName, features)
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	resp := newPredictionResponse(service.CreditRiskModelName, req.CustomerID, result)
	uc.publisher.PublishPrediction(ctx, predictionMade(resp))
	return resp, nil
}

// debtToIncomeRatio is 0 whenever income is not positive.
func debtToIncomeRatio(debt, income decimal.Decimal) float64 {
	if !income.IsPositive() {
		return 0
	}
	return debt.Div(income).InexactFloat64()
}
