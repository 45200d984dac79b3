package model

import "github.com/shopspring/decimal"

// Outcome records how a prediction result was obtained. The distinction
// between soft and hard fallbacks encodes the platform's safety posture:
// an unreachable risk engine biases toward caution, a merely degraded one
// stays neutral.
type Outcome string

const (
	// OutcomeModel means the inference service responded with a real prediction.
	OutcomeModel Outcome = "MODEL"

	// OutcomeSoftFallback means the inference service responded with a
	// non-200 status; a neutral default was substituted.
	OutcomeSoftFallback Outcome = "SOFT_FALLBACK"

	// OutcomeHardFallback means the inference service was unreachable; a
	// conservative default was substituted.
	OutcomeHardFallback Outcome = "HARD_FALLBACK"

	// OutcomeNotImplemented means no model exists for the assessment type;
	// a static placeholder was returned without consulting any service.
	OutcomeNotImplemented Outcome = "NOT_IMPLEMENTED"
)

// CreditFeatures is the feature payload sent to the credit risk model.
type CreditFeatures struct {
	AnnualIncome        decimal.Decimal
	CreditHistoryLength int
	CurrentDebt         decimal.Decimal
	EmploymentStatus    string
	Age                 int
	LoanAmount          decimal.Decimal
	LoanPurpose         string
}

// Transaction is the payload sent to the fraud detection model.
type Transaction struct {
	TransactionID             string
	CustomerID                string
	Amount                    decimal.Decimal
	MerchantCategory          string
	Location                  string
	TimeOfDay                 int
	DayOfWeek                 int
	CardPresent               bool
	PreviousTransactionsCount int
}

// CreditRiskPrediction is the credit risk model output.
type CreditRiskPrediction struct {
	RiskScore              float64 `json:"risk_score"`
	RiskCategory           string  `json:"risk_category"`
	ApprovalRecommendation bool    `json:"approval_recommendation"`
}

// FraudPrediction is the fraud detection model output.
type FraudPrediction struct {
	IsFraud          bool    `json:"is_fraud"`
	FraudProbability float64 `json:"fraud_probability"`
	RiskLevel        string  `json:"risk_level"`
}

// CreditRiskResult is a credit prediction together with how it was obtained.
type CreditRiskResult struct {
	Outcome    Outcome
	Prediction CreditRiskPrediction
	Confidence float64
}

// FraudResult is a fraud prediction together with how it was obtained.
type FraudResult struct {
	Outcome    Outcome
	Prediction FraudPrediction
	Confidence float64
}

// SoftFallbackCreditResult is the neutral default used when the inference
// service responds but with an error status.
func SoftFallbackCreditResult() CreditRiskResult {
	return CreditRiskResult{
		Outcome: OutcomeSoftFallback,
		Prediction: CreditRiskPrediction{
			RiskScore:              50,
			RiskCategory:           "MEDIUM",
			ApprovalRecommendation: false,
		},
		Confidence: 0.5,
	}
}

// HardFallbackCreditResult is the conservative default used when the
// inference service is unreachable. It is deliberately more alarming than
// the soft fallback so an outage never turns into silent approvals.
func HardFallbackCreditResult() CreditRiskResult {
	return CreditRiskResult{
		Outcome: OutcomeHardFallback,
		Prediction: CreditRiskPrediction{
			RiskScore:              75,
			RiskCategory:           "HIGH",
			ApprovalRecommendation: false,
		},
		Confidence: 0,
	}
}

// SoftFallbackFraudResult is the neutral fraud default for non-200 responses.
func SoftFallbackFraudResult() FraudResult {
	return FraudResult{
		Outcome: OutcomeSoftFallback,
		Prediction: FraudPrediction{
			IsFraud:          false,
			FraudProbability: 0.1,
			RiskLevel:        "LOW",
		},
		Confidence: 0.5,
	}
}

// HardFallbackFraudResult is the conservative fraud default used when the
// inference service is unreachable: treat the transaction as fraudulent.
func HardFallbackFraudResult() FraudResult {
	return FraudResult{
		Outcome: OutcomeHardFallback,
		Prediction: FraudPrediction{
			IsFraud:          true,
			FraudProbability: 0.8,
			RiskLevel:        "HIGH",
		},
		Confidence: 0,
	}
}
