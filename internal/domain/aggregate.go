package domain

// AggregateCorridorRisk combines per-hop calibrated probabilities into one
// corridor score: the probability of at least one adverse event across the
// corridor, 1 − Π(1 − p_i). For a single hop this is the hop's own
// probability; increasing any hop's probability never decreases the result,
// and the output stays in [0, 1] without clamping. An empty corridor scores 0.
func AggregateCorridorRisk(probabilities []float64) float64 {
	survival := 1.0
	for _, p := range probabilities {
		survival *= 1 - clamp01(p)
	}
	return 1 - survival
}
