package service

import "github.com/shopspring/decimal"

// Factor labels produced by the analyzer.
const (
	FactorIncomeAdequacy   = "income_adequacy"
	FactorDebtBurden       = "debt_burden"
	FactorCreditExperience = "credit_experience"
)

var incomeAdequacyThreshold = decimal.NewFromInt(40000)

// FactorAnalyzer derives qualitative risk factors from the fields the
// customer actually supplied. It deliberately ignores the defaults applied
// for the model call: a missing field reads as the weak label, never as
// the default's label.
type FactorAnalyzer struct{}

// NewFactorAnalyzer creates a new FactorAnalyzer instance.
func NewFactorAnalyzer() *FactorAnalyzer {
	return &FactorAnalyzer{}
}

// CreditFactors labels income adequacy, debt burden, and credit experience.
// Nil inputs mean the customer did not supply the field.
func (a *FactorAnalyzer) CreditFactors(income *decimal.Decimal, debtRatio *float64, historyYears *int) map[string]string {
	factors := map[string]string{
		FactorIncomeAdequacy:   "POOR",
		FactorDebtBurden:       "HIGH",
		FactorCreditExperience: "LIMITED",
	}

	if income != nil && income.GreaterThan(incomeAdequacyThreshold) {
		factors[FactorIncomeAdequacy] = "GOOD"
	}
	if debtRatio != nil && *debtRatio < 0.4 {
		factors[FactorDebtBurden] = "LOW"
	}
	if historyYears != nil && *historyYears > 3 {
		factors[FactorCreditExperience] = "GOOD"
	}

	return factors
}
