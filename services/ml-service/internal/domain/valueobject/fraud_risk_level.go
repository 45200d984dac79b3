package valueobject

import "fmt"

// FraudRiskLevel is an immutable value object classifying a fraud probability.
type FraudRiskLevel struct {
	value string
}

var (
	FraudRiskLevelLow    = FraudRiskLevel{value: "LOW"}
	FraudRiskLevelMedium = FraudRiskLevel{value: "MEDIUM"}
	FraudRiskLevelHigh   = FraudRiskLevel{value: "HIGH"}
)

// FraudRiskLevelFromString reconstructs a FraudRiskLevel from its string representation.
func FraudRiskLevelFromString(s string) (FraudRiskLevel, error) {
	switch s {
	case "LOW":
		return FraudRiskLevelLow, nil
	case "MEDIUM":
		return FraudRiskLevelMedium, nil
	case "HIGH":
		return FraudRiskLevelHigh, nil
	default:
		return FraudRiskLevel{}, fmt.Errorf("invalid fraud risk level: %s", s)
	}
}

// FraudRiskLevelFromProbability derives the FraudRiskLevel from a fraud
// probability in [0,1]. Above 0.7 HIGH, above 0.3 MEDIUM, otherwise LOW.
func FraudRiskLevelFromProbability(p float64) FraudRiskLevel {
	switch {
	case p > 0.7:
		return FraudRiskLevelHigh
	case p > 0.3:
		return FraudRiskLevelMedium
	default:
		return FraudRiskLevelLow
	}
}

// String returns the string representation.
func (l FraudRiskLevel) String() string {
	return l.value
}

// IsZero returns true if the FraudRiskLevel has not been set.
func (l FraudRiskLevel) IsZero() bool {
	return l.value == ""
}

// Equal checks equality with another FraudRiskLevel.
func (l FraudRiskLevel) Equal(other FraudRiskLevel) bool {
	return l.value == other.value
}
