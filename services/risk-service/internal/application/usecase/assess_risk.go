package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/domain/port"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/domain/service"
)

// AssessmentTypeCredit selects the model-backed credit assessment. Other
// assessment types (operational, market, liquidity) produce a static
// placeholder result until their models are implemented.
const AssessmentTypeCredit = "credit"

// Conservative defaults applied when the request omits an optional field.
// They describe a median applicant so that a sparse request still yields a
// meaningful assessment.
var (
	defaultAnnualIncome = decimal.NewFromInt(50000)
	defaultLoanAmount   = decimal.NewFromInt(25000)
)

const (
	defaultCreditHistoryYears = 5
	defaultDebtToIncomeRatio  = 0.3
	defaultEmploymentStatus   = "EMPLOYED"
	defaultLoanPurpose        = "PERSONAL"
	defaultApplicantAge       = 35
)

// AssessRiskUseCase runs a risk assessment for a customer, delegating the
// scoring to the inference service through the RiskPredictor port.
type AssessRiskUseCase struct {
	predictor port.RiskPredictor
	analyzer  *service.FactorAnalyzer
	logger    *slog.Logger
}

func NewAssessRiskUseCase(predictor port.RiskPredictor, analyzer *service.FactorAnalyzer, logger *slog.Logger) *AssessRiskUseCase {
	return &AssessRiskUseCase{
		predictor: predictor,
		analyzer:  analyzer,
		logger:    logger,
	}
}

// Execute performs the assessment named by the request's assessment type.
func (uc *AssessRiskUseCase) Execute(ctx context.Context, req dto.RiskAssessmentRequest) dto.RiskAssessmentResponse {
	switch req.AssessmentType {
	case AssessmentTypeCredit:
		return uc.assessCreditRisk(ctx, req)
	default:
		return uc.assessDefault(req)
	}
}

func (uc *AssessRiskUseCase) assessCreditRisk(ctx context.Context, req dto.RiskAssessmentRequest) dto.RiskAssessmentResponse {
	income := defaultAnnualIncome
	if req.AnnualIncome != nil {
		income = *req.AnnualIncome
	}

	historyYears := defaultCreditHistoryYears
	if req.CreditHistoryLength != nil {
		historyYears = *req.CreditHistoryLength
	}

	debtRatio := defaultDebtToIncomeRatio
	if req.DebtToIncomeRatio != nil {
		debtRatio = *req.DebtToIncomeRatio
	}

	loanAmount := defaultLoanAmount
	if req.LoanAmount != nil {
		loanAmount = *req.LoanAmount
	}

	employment := defaultEmploymentStatus
	if req.EmploymentStatus != nil {
		employment = *req.EmploymentStatus
	}

	purpose := defaultLoanPurpose
	if req.LoanPurpose != nil {
		purpose = *req.LoanPurpose
	}

	features := model.CreditFeatures{
		AnnualIncome:        income,
		CreditHistoryLength: historyYears,
		CurrentDebt:         income.Mul(decimal.NewFromFloat(debtRatio)),
		EmploymentStatus:    employment,
		Age:                 defaultApplicantAge,
		LoanAmount:          loanAmount,
		LoanPurpose:         purpose,
	}

	result := uc.predictor.PredictCreditRisk(ctx, req.CustomerID, features)
	if result.Outcome != model.OutcomeModel {
		uc.logger.Warn("credit assessment used fallback prediction",
			"customer_id", req.CustomerID,
			"outcome", string(result.Outcome),
		)
	}

	recommendation := "DECLINE"
	if result.Prediction.ApprovalRecommendation {
		recommendation = "APPROVE"
	}

	// Factors reflect what the caller actually supplied, not the
	// defaulted feature vector, and are computed locally so they remain
	// available even when the model is unreachable.
	factors := uc.analyzer.CreditFactors(req.AnnualIncome, req.DebtToIncomeRatio, req.CreditHistoryLength)

	return dto.RiskAssessmentResponse{
		CustomerID:     req.CustomerID,
		AssessmentType: AssessmentTypeCredit,
		RiskScore:      result.Prediction.RiskScore,
		RiskCategory:   result.Prediction.RiskCategory,
		Recommendation: recommendation,
		Outcome:        string(result.Outcome),
		Confidence:     result.Confidence,
		Factors:        factors,
		Timestamp:      time.Now().UTC(),
	}
}

// assessDefault covers assessment types with no model behind them yet. The
// static MONITOR result is an explicit placeholder, not a scored opinion.
func (uc *AssessRiskUseCase) assessDefault(req dto.RiskAssessmentRequest) dto.RiskAssessmentResponse {
	return dto.RiskAssessmentResponse{
		CustomerID:     req.CustomerID,
		AssessmentType: req.AssessmentType,
		RiskScore:      45,
		RiskCategory:   "MEDIUM",
		Recommendation: "MONITOR",
		Outcome:        string(model.OutcomeNotImplemented),
		Confidence:     0.5,
		Factors:        map[string]string{"assessment": "DEFAULT"},
		Timestamp:      time.Now().UTC(),
	}
}
