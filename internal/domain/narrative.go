package domain

import (
	"fmt"
	"strings"
)

// TrendDeadBand is the minimum absolute change in aggregate corridor risk
// before a comparison is labeled "higher" or "lower". The dead band keeps
// near-equal scores from flipping trend labels on noise; it is a tunable
// design constant, not a contract callers may assume.
const TrendDeadBand = 0.02

// Trend labels for corridor comparisons.
const (
	TrendHigher  = "higher"
	TrendLower   = "lower"
	TrendSimilar = "similar"
)

// CorridorComparison describes how a corridor's risk shifts at a later hour.
type CorridorComparison struct {
	CompareHourOffset int     `json:"compare_hour_offset"`
	BaseRisk          float64 `json:"base_risk"`
	CompareRisk       float64 `json:"compare_risk"`
	Delta             float64 `json:"delta"`
	Trend             string  `json:"trend"`
	Text              string  `json:"text"`
}

// Narrate renders guidance text for a corridor, keyed by the corridor's risk
// level and naming the highest-risk hop(s).
func Narrate(result CorridorResult) string {
	worst, names := worstHops(result.PerHopRiskScores)
	aggregate := result.AggregateCorridorRisk * 100

	switch result.RiskLevel {
	case RiskCritical:
		return fmt.Sprintf(
			"CRITICAL corridor risk (aggregate %.1f%%) with peak hop risk %.1f%% at %s. "+
				"Prioritize mitigation and active travel advisories along this path.",
			aggregate, worst*100, names)
	case RiskHigh:
		return fmt.Sprintf(
			"HIGH corridor risk (aggregate %.1f%%) with peak hop risk %.1f%% at %s. "+
				"Plan around the riskiest segments and allow extra travel time.",
			aggregate, worst*100, names)
	case RiskMedium:
		return fmt.Sprintf(
			"MEDIUM corridor risk (aggregate %.1f%%). Maintain routine controls and "+
				"re-check %s if weather intensity rises.",
			aggregate, names)
	default:
		return fmt.Sprintf(
			"LOW corridor risk (aggregate %.1f%%) across %d neighborhoods. "+
				"Current conditions are comparatively stable; the highest-risk hop is %s.",
			aggregate, len(result.OrderedNeighborhoods), names)
	}
}

// Compare labels the risk trend between a base corridor and the same corridor
// re-scored compareHourOffset hours later. Deltas within TrendDeadBand of zero
// are reported as similar.
func Compare(base, compare CorridorResult, compareHourOffset int) CorridorComparison {
	delta := compare.AggregateCorridorRisk - base.AggregateCorridorRisk

	trend := TrendSimilar
	switch {
	case delta > TrendDeadBand:
		trend = TrendHigher
	case delta < -TrendDeadBand:
		trend = TrendLower
	}

	var text string
	if trend == TrendSimilar {
		text = fmt.Sprintf(
			"Corridor risk in %d hour(s) is similar: %.1f%% vs %.1f%% now (%+.1f percentage points).",
			compareHourOffset, compare.AggregateCorridorRisk*100, base.AggregateCorridorRisk*100, delta*100)
	} else {
		text = fmt.Sprintf(
			"Corridor risk in %d hour(s) is %s: %.1f%% vs %.1f%% now (%+.1f percentage points).",
			compareHourOffset, trend, compare.AggregateCorridorRisk*100, base.AggregateCorridorRisk*100, delta*100)
	}

	return CorridorComparison{
		CompareHourOffset: compareHourOffset,
		BaseRisk:          base.AggregateCorridorRisk,
		CompareRisk:       compare.AggregateCorridorRisk,
		Delta:             delta,
		Trend:             trend,
		Text:              text,
	}
}

// worstHops returns the maximum hop probability and a comma-joined list of
// every hop at that maximum.
func worstHops(hops []CorridorHop) (float64, string) {
	if len(hops) == 0 {
		return 0, "the corridor"
	}

	worst := hops[0].Probability
	for _, h := range hops[1:] {
		if h.Probability > worst {
			worst = h.Probability
		}
	}

	var names []string
	for _, h := range hops {
		if h.Probability == worst {
			names = append(names, h.Neighborhood)
		}
	}
	return worst, strings.Join(names, ", ")
}
