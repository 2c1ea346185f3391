package domain

import "time"

// PredictionResult is the calibrated judgment for a single scenario.
type PredictionResult struct {
	Neighborhood     string    `json:"neighborhood"`
	RawProbability   float64   `json:"raw_probability"`
	Probability      float64   `json:"probability"`
	CalibrationDelta float64   `json:"calibration_delta"`
	RiskLevel        RiskLevel `json:"risk_level"`
	ScoredAt         time.Time `json:"scored_at"`
}

// Score runs calibration and classification over a raw model probability.
// This is the only place a PredictionResult is assembled, so the clamping
// invariant (both probabilities in [0, 1]) holds everywhere downstream.
func Score(raw float64, s Scenario, c Calibration, t Thresholds) PredictionResult {
	probability, delta := c.Calibrate(raw, s)
	return PredictionResult{
		Neighborhood:     s.Neighborhood,
		RawProbability:   clamp01(raw),
		Probability:      probability,
		CalibrationDelta: delta,
		RiskLevel:        t.Classify(probability),
		ScoredAt:         clock.Now().UTC(),
	}
}

// CorridorRequest asks for a corridor judgment between two neighborhoods.
// The embedded Scenario supplies the base weather/temporal fields; its
// neighborhood is substituted per hop. HourOffset advances the scenario's
// hour, rolling day_of_week forward across midnight.
type CorridorRequest struct {
	FromNeighborhood string `json:"from_neighborhood"`
	ToNeighborhood   string `json:"to_neighborhood"`
	HourOffset       int    `json:"hour_offset"`
	Scenario
}

// CorridorHop is one neighborhood's position and score within a corridor.
// Hop is 1-based; the source neighborhood is hop 1.
type CorridorHop struct {
	Hop          int       `json:"hop"`
	Neighborhood string    `json:"neighborhood"`
	Probability  float64   `json:"probability"`
	RiskLevel    RiskLevel `json:"risk_level"`
}

// CorridorResult is the combined judgment for a whole corridor. The
// ordered_neighborhoods sequence is a connected walk in the graph and always
// has the same length as per_hop_risk_scores.
type CorridorResult struct {
	FromNeighborhood      string        `json:"from_neighborhood"`
	ToNeighborhood        string        `json:"to_neighborhood"`
	OrderedNeighborhoods  []string      `json:"ordered_neighborhoods"`
	PerHopRiskScores      []CorridorHop `json:"per_hop_risk_scores"`
	AggregateCorridorRisk float64       `json:"aggregate_corridor_risk"`
	RiskLevel             RiskLevel     `json:"risk_level"`
	NarrativeGuidance     string        `json:"narrative_guidance"`
	GeneratedAt           time.Time     `json:"generated_at"`
}

// ComposeCorridor assembles the corridor judgment from an ordered path and its
// scored hops: aggregate risk, risk band, narrative, and timestamp. path and
// hops must be the same length and non-empty.
func ComposeCorridor(path []string, hops []CorridorHop, t Thresholds) CorridorResult {
	probabilities := make([]float64, len(hops))
	for i, h := range hops {
		probabilities[i] = h.Probability
	}
	aggregate := AggregateCorridorRisk(probabilities)

	result := CorridorResult{
		FromNeighborhood:      path[0],
		ToNeighborhood:        path[len(path)-1],
		OrderedNeighborhoods:  path,
		PerHopRiskScores:      hops,
		AggregateCorridorRisk: aggregate,
		RiskLevel:             t.Classify(aggregate),
		GeneratedAt:           clock.Now().UTC(),
	}
	result.NarrativeGuidance = Narrate(result)
	return result
}
