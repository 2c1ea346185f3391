package domain

import "fmt"

// RiskLevel is the discrete user-facing risk band.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank orders risk levels from low (0) to critical (3).
func (r RiskLevel) Rank() int {
	switch r {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}

// Thresholds are the ascending cut points partitioning [0, 1] into risk bands.
// Each band is closed on its lower edge, so a probability exactly on a cut
// point classifies into the higher band.
type Thresholds struct {
	Medium   float64
	High     float64
	Critical float64
}

// DefaultThresholds returns the production risk band cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{Medium: 0.25, High: 0.5, Critical: 0.75}
}

// Validate rejects cut points that are not strictly ascending within (0, 1).
func (t Thresholds) Validate() error {
	if t.Medium <= 0 || t.Medium >= t.High || t.High >= t.Critical || t.Critical >= 1 {
		return fmt.Errorf("risk thresholds must satisfy 0 < medium < high < critical < 1, got %g/%g/%g",
			t.Medium, t.High, t.Critical)
	}
	return nil
}

// Classify maps a probability to its risk band. Total and side-effect free.
func (t Thresholds) Classify(probability float64) RiskLevel {
	switch {
	case probability >= t.Critical:
		return RiskCritical
	case probability >= t.High:
		return RiskHigh
	case probability >= t.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}
