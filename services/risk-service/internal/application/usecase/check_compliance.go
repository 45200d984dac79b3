package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/application/dto"
)

// Supported compliance check identifiers.
const (
	CheckTypeKYC       = "kyc"
	CheckTypeAML       = "aml"
	CheckTypeSanctions = "sanctions"
)

// Check statuses. An unrecognized check type is reported as PENDING rather
// than rejected, and a single PENDING check makes the overall report
// PENDING.
const (
	CheckStatusPassed  = "PASSED"
	CheckStatusPending = "PENDING"
)

// CheckComplianceUseCase evaluates regulatory checks for a customer. The
// current rule set is static; results are deterministic per check type.
type CheckComplianceUseCase struct {
	logger *slog.Logger
}

func NewCheckComplianceUseCase(logger *slog.Logger) *CheckComplianceUseCase {
	return &CheckComplianceUseCase{logger: logger}
}

// Execute runs the requested checks in order and aggregates the overall
// status. When no check types are given, the full standard set is run.
func (uc *CheckComplianceUseCase) Execute(ctx context.Context, req dto.ComplianceCheckRequest) dto.ComplianceReport {
	checkTypes := req.CheckTypes
	if len(checkTypes) == 0 {
		checkTypes = []string{CheckTypeKYC, CheckTypeAML, CheckTypeSanctions}
	}

	checks := make([]dto.ComplianceCheck, 0, len(checkTypes))
	overall := CheckStatusPassed
	for _, checkType := range checkTypes {
		check := runCheck(req.CustomerID, checkType)
		if check.Status != CheckStatusPassed {
			overall = CheckStatusPending
		}
		checks = append(checks, check)
	}

	uc.logger.Info("compliance checks completed",
		"customer_id", req.CustomerID,
		"overall_status", overall,
		"checks", len(checks),
	)

	return dto.ComplianceReport{
		CustomerID:    req.CustomerID,
		OverallStatus: overall,
		Checks:        checks,
		RiskLevel:     "LOW",
		LastUpdated:   time.Now().UTC(),
	}
}

// Report returns the standing compliance report for a customer. There is
// no report store yet; the served report reflects the standard passed
// checks.
func (uc *CheckComplianceUseCase) Report(ctx context.Context, customerID string) dto.ComplianceReport {
	return dto.ComplianceReport{
		CustomerID:    customerID,
		OverallStatus: CheckStatusPassed,
		Checks: []dto.ComplianceCheck{
			{
				CustomerID: customerID,
				CheckType:  CheckTypeKYC,
				Status:     CheckStatusPassed,
				Details:    map[string]any{"verification_score": 95},
			},
			{
				CustomerID: customerID,
				CheckType:  CheckTypeAML,
				Status:     CheckStatusPassed,
				Details:    map[string]any{"risk_score": 15},
			},
		},
		RiskLevel:   "LOW",
		LastUpdated: time.Now().UTC(),
	}
}

func runCheck(customerID, checkType string) dto.ComplianceCheck {
	switch checkType {
	case CheckTypeKYC:
		return dto.ComplianceCheck{
			CustomerID: customerID,
			CheckType:  CheckTypeKYC,
			Status:     CheckStatusPassed,
			Details: map[string]any{
				"identity_verified":  true,
				"address_verified":   true,
				"documents_complete": true,
			},
		}
	case CheckTypeAML:
		return dto.ComplianceCheck{
			CustomerID: customerID,
			CheckType:  CheckTypeAML,
			Status:     CheckStatusPassed,
			Details: map[string]any{
				"transaction_monitoring": "CLEAN",
				"suspicious_activity":    false,
				"source_of_funds":        "VERIFIED",
			},
		}
	case CheckTypeSanctions:
		return dto.ComplianceCheck{
			CustomerID: customerID,
			CheckType:  CheckTypeSanctions,
			Status:     CheckStatusPassed,
			Details: map[string]any{
				"watchlist_screening": "CLEAR",
				"pep_check":           "NEGATIVE",
				"adverse_media":       "NONE",
			},
		}
	default:
		return dto.ComplianceCheck{
			CustomerID: customerID,
			CheckType:  checkType,
			Status:     CheckStatusPending,
			Details:    map[string]any{"message": "Check type not implemented"},
		}
	}
}
