package service

import (
	"math"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/valueobject"
)

// CreditRiskModelName is the registry key for the credit risk model.
const CreditRiskModelName = "credit_risk"

// Default feature values used when a request omits a feature.
const (
	defaultAnnualIncome      = 50000.0
	defaultDebtToIncomeRatio = 0.3
	defaultCreditHistory     = 5.0
	defaultAge               = 35.0
	defaultLoanAmount        = 25000.0
)

// CreditRiskParams are the fitted weights of the credit risk model. Higher
// debt ratio raises the score; higher income and longer credit history
// lower it. Scores are on a 0-100 scale where higher means riskier.
type CreditRiskParams struct {
	DebtRatioWeight float64 `json:"debt_ratio_weight"`
	IncomeWeight    float64 `json:"income_weight"`
	HistoryWeight   float64 `json:"history_weight"`
	IncomeScale     float64 `json:"income_scale"`
	HistoryScale    float64 `json:"history_scale"`
}

// DefaultCreditRiskParams returns the weights fitted on the synthetic
// training distribution.
func DefaultCreditRiskParams() CreditRiskParams {
	return CreditRiskParams{
		DebtRatioWeight: 0.5,
		IncomeWeight:    0.3,
		HistoryWeight:   0.2,
		IncomeScale:     100000,
		HistoryScale:    20,
	}
}

// CreditRiskModel scores loan applications on a 0-100 risk scale.
// It is immutable after construction and safe for concurrent use.
type CreditRiskModel struct {
	params CreditRiskParams
}

// NewCreditRiskModel creates a credit risk model with the given parameters.
func NewCreditRiskModel(params CreditRiskParams) *CreditRiskModel {
	return &CreditRiskModel{params: params}
}

// Name implements Model.
func (m *CreditRiskModel) Name() string {
	return CreditRiskModelName
}

// Predict builds the 5-element feature vector in fixed order (annual income,
// debt-to-income ratio, credit history length, age, loan amount), scores it,
// and derives the risk category and approval recommendation.
func (m *CreditRiskModel) Predict(features map[string]any) (model.PredictionResult, error) {
	vector := [5]float64{
		floatFeature(features, "annual_income", defaultAnnualIncome),
		floatFeature(features, "debt_to_income_ratio", defaultDebtToIncomeRatio),
		floatFeature(features, "credit_history_length", defaultCreditHistory),
		floatFeature(features, "age", defaultAge),
		floatFeature(features, "loan_amount", defaultLoanAmount),
	}

	score := clamp(m.score(vector), 0, 100)
	category := valueobject.RiskCategoryFromScore(score)
	confidence := math.Min(100-math.Abs(score-50), 95) / 100

	return model.PredictionResult{
		Prediction: model.CreditRiskPrediction{
			RiskScore:              score,
			RiskCategory:           category.String(),
			ApprovalRecommendation: score < 60,
		},
		Confidence: confidence,
	}, nil
}

// score applies the fitted weights to the feature vector. Age and loan
// amount carry no weight in the current fit but remain part of the vector
// contract.
func (m *CreditRiskModel) score(vector [5]float64) float64 {
	p := m.params
	raw := vector[1]*p.DebtRatioWeight +
		(1-vector[0]/p.IncomeScale)*p.IncomeWeight +
		(1-vector[2]/p.HistoryScale)*p.HistoryWeight
	return raw * 100
}
