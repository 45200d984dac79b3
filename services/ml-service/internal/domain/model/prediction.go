package model

// CreditRiskPrediction is the structured output of the credit risk model.
type CreditRiskPrediction struct {
	RiskScore              float64 `json:"risk_score"`
	RiskCategory           string  `json:"risk_category"`
	ApprovalRecommendation bool    `json:"approval_recommendation"`
}

// FraudPrediction is the structured output of the fraud detection model.
type FraudPrediction struct {
	IsFraud          bool    `json:"is_fraud"`
	FraudProbability float64 `json:"fraud_probability"`
	RiskLevel        string  `json:"risk_level"`
}

// PredictionResult pairs a model prediction with its confidence.
// Results are immutable once produced and never persisted.
type PredictionResult struct {
	Prediction any     `json:"prediction"`
	Confidence float64 `json:"confidence"`
}
