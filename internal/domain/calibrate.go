package domain

// Calibration holds the guardrail constants applied to raw model output.
// The values are operational heuristics, not learned parameters; they are kept
// in a struct so deployments can tune them via configuration and tests can
// exercise each guardrail in isolation.
type Calibration struct {
	// SeasonalityFactor scales the probability down outside December through March.
	SeasonalityFactor float64
	// OvernightBoost is added between 22:00 and 05:59, then re-clipped.
	OvernightBoost float64
	// WarmDampeningFactor scales the probability down when the temperature is
	// above ThawThresholdC and precipitation is below DryPrecipMax.
	WarmDampeningFactor float64
	// ThawThresholdC is the temperature in °C above which pavement is assumed
	// to be thawing.
	ThawThresholdC float64
	// DryPrecipMax is the precipitation in mm below which conditions count as dry.
	DryPrecipMax float64
}

// DefaultCalibration returns the production guardrail constants.
func DefaultCalibration() Calibration {
	return Calibration{
		SeasonalityFactor:   0.6,
		OvernightBoost:      0.05,
		WarmDampeningFactor: 0.7,
		ThawThresholdC:      0.0,
		DryPrecipMax:        1.0,
	}
}

// Calibrate applies the guardrails to a raw model probability and returns the
// calibrated probability plus the signed calibration delta. It is pure and
// total: any well-formed scenario yields a probability in [0, 1].
func (c Calibration) Calibrate(raw float64, s Scenario) (probability, delta float64) {
	raw = clamp01(raw)
	p := raw

	if !winterMonth(s.Month) {
		p *= c.SeasonalityFactor
	}
	if overnightHour(s.Hour) {
		p = clamp01(p + c.OvernightBoost)
	}
	if s.Temperature > c.ThawThresholdC && s.Precipitation < c.DryPrecipMax {
		p *= c.WarmDampeningFactor
	}

	p = clamp01(p)
	return p, p - raw
}

// winterMonth reports whether month falls in the December through March window.
func winterMonth(month int) bool {
	return month == 12 || (month >= 1 && month <= 3)
}

// overnightHour reports whether hour falls in the low-visibility, low-traffic
// window from 22:00 through 05:59.
func overnightHour(hour int) bool {
	return hour >= 22 || hour <= 5
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
