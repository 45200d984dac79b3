package valueobject

import "fmt"

// RiskCategory is an immutable value object classifying a credit risk score.
type RiskCategory struct {
	value string
}

var (
	RiskCategoryLow    = RiskCategory{value: "LOW"}
	RiskCategoryMedium = RiskCategory{value: "MEDIUM"}
	RiskCategoryHigh   = RiskCategory{value: "HIGH"}
)

// RiskCategoryFromString reconstructs a RiskCategory from its string representation.
func RiskCategoryFromString(s string) (RiskCategory, error) {
	switch s {
	case "LOW":
		return RiskCategoryLow, nil
	case "MEDIUM":
		return RiskCategoryMedium, nil
	case "HIGH":
		return RiskCategoryHigh, nil
	default:
		return RiskCategory{}, fmt.Errorf("invalid risk category: %s", s)
	}
}

// RiskCategoryFromScore derives the RiskCategory from a risk score (0-100).
// Bands are monotonic: below 30 LOW, below 70 MEDIUM, otherwise HIGH.
func RiskCategoryFromScore(score float64) RiskCategory {
	switch {
	case score < 30:
		return RiskCategoryLow
	case score < 70:
		return RiskCategoryMedium
	default:
		return RiskCategoryHigh
	}
}

// String returns the string representation.
func (c RiskCategory) String() string {
	return c.value
}

// IsZero returns true if the RiskCategory has not been set.
func (c RiskCategory) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another RiskCategory.
func (c RiskCategory) Equal(other RiskCategory) bool {
	return c.value == other.value
}
