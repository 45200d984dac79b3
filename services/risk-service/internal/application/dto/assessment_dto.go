package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskAssessmentRequest is the inbound payload for a risk assessment.
// Optional fields are pointers so that absence can be distinguished from a
// zero value; missing fields are filled with conservative defaults.
type RiskAssessmentRequest struct {
	CustomerID          string           `json:"customer_id"`
	AssessmentType      string           `json:"assessment_type"`
	AnnualIncome        *decimal.Decimal `json:"annual_income,omitempty"`
	CreditHistoryLength *int             `json:"credit_history_length,omitempty"`
	DebtToIncomeRatio   *float64         `json:"debt_to_income_ratio,omitempty"`
	LoanAmount          *decimal.Decimal `json:"loan_amount,omitempty"`
	EmploymentStatus    *string          `json:"employment_status,omitempty"`
	LoanPurpose         *string          `json:"loan_purpose,omitempty"`
}

// RiskAssessmentResponse is the outcome of a risk assessment.
type RiskAssessmentResponse struct {
	CustomerID     string            `json:"customer_id"`
	AssessmentType string            `json:"assessment_type"`
	RiskScore      float64           `json:"risk_score"`
	RiskCategory   string            `json:"risk_category"`
	Recommendation string            `json:"recommendation"`
	Outcome        string            `json:"outcome"`
	Confidence     float64           `json:"confidence"`
	Factors        map[string]string `json:"factors"`
	Timestamp      time.Time         `json:"timestamp"`
}

// ComplianceCheckRequest asks for a set of regulatory checks against a
// customer.
type ComplianceCheckRequest struct {
	CustomerID string   `json:"customer_id"`
	CheckTypes []string `json:"check_types"`
}

// ComplianceCheck is the result of a single regulatory check.
type ComplianceCheck struct {
	CustomerID string         `json:"customer_id"`
	CheckType  string         `json:"check_type"`
	Status     string         `json:"status"`
	Details    map[string]any `json:"details"`
}

// ComplianceReport aggregates the individual check results.
type ComplianceReport struct {
	CustomerID    string            `json:"customer_id"`
	OverallStatus string            `json:"overall_status"`
	Checks        []ComplianceCheck `json:"checks"`
	RiskLevel     string            `json:"risk_level"`
	LastUpdated   time.Time         `json:"last_updated"`
}

// CustomerRiskProfile is a summary view of a customer's standing risk.
// There is no profile store yet, so the served profile is static.
type CustomerRiskProfile struct {
	CustomerID     string         `json:"customer_id"`
	RiskProfile    string         `json:"risk_profile"`
	LastAssessment string         `json:"last_assessment"`
	Factors        map[string]any `json:"factors"`
}
