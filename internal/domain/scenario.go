package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidScenario marks a scenario field outside its valid range.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is one weather/temporal/neighborhood situation to score.
// SESIndex and InfrastructureQuality are pointers so a request can override
// the neighborhood's stored context for what-if queries; nil means "use the
// value from the graph".
type Scenario struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"wind_speed"`
	WindChill     float64 `json:"wind_chill"`
	Precipitation float64 `json:"precipitation"`
	SnowDepth     float64 `json:"snow_depth"`
	Hour          int     `json:"hour"`
	DayOfWeek     int     `json:"day_of_week"`
	Month         int     `json:"month"`
	Neighborhood  string  `json:"neighborhood"`

	SESIndex              *float64 `json:"ses_index,omitempty"`
	InfrastructureQuality *float64 `json:"infrastructure_quality,omitempty"`
}

// FeatureVector is the fully resolved input handed to the model collaborator.
// Field names match the feature columns the classifier was trained on.
type FeatureVector struct {
	Temperature           float64 `json:"temperature"`
	WindSpeed             float64 `json:"wind_speed"`
	WindChill             float64 `json:"wind_chill"`
	Precipitation         float64 `json:"precipitation"`
	SnowDepth             float64 `json:"snow_depth"`
	Hour                  int     `json:"hour"`
	DayOfWeek             int     `json:"day_of_week"`
	Month                 int     `json:"month"`
	Neighborhood          string  `json:"neighborhood"`
	SESIndex              float64 `json:"ses_index"`
	InfrastructureQuality float64 `json:"infrastructure_quality"`
}

// Validate checks field ranges. Neighborhood presence is not checked here:
// corridor requests substitute the neighborhood per hop.
func (s Scenario) Validate() error {
	if s.Hour < 0 || s.Hour > 23 {
		return fmt.Errorf("%w: hour %d outside 0-23", ErrInvalidScenario, s.Hour)
	}
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week %d outside 0-6", ErrInvalidScenario, s.DayOfWeek)
	}
	if s.Month < 1 || s.Month > 12 {
		return fmt.Errorf("%w: month %d outside 1-12", ErrInvalidScenario, s.Month)
	}
	if s.SESIndex != nil && (*s.SESIndex < 0 || *s.SESIndex > 1) {
		return fmt.Errorf("%w: ses_index %g outside 0-1", ErrInvalidScenario, *s.SESIndex)
	}
	if s.InfrastructureQuality != nil && (*s.InfrastructureQuality < 0 || *s.InfrastructureQuality > 1) {
		return fmt.Errorf("%w: infrastructure_quality %g outside 0-1", ErrInvalidScenario, *s.InfrastructureQuality)
	}
	return nil
}

// Advance returns a copy with Hour moved forward by hourOffset, rolling
// DayOfWeek across midnight boundaries. A zero offset is a no-op.
func (s Scenario) Advance(hourOffset int) Scenario {
	if hourOffset <= 0 {
		return s
	}
	total := s.Hour + hourOffset
	s.Hour = total % 24
	s.DayOfWeek = (s.DayOfWeek + total/24) % 7
	return s
}

// ForNeighborhood returns a copy scoped to the given neighborhood name.
func (s Scenario) ForNeighborhood(name string) Scenario {
	s.Neighborhood = name
	return s
}

// Features resolves the scenario into a model input, filling SES and
// infrastructure context from the given neighborhood unless the scenario
// overrides them.
func (s Scenario) Features(n *Neighborhood) FeatureVector {
	ses := n.SESIndex
	infra := n.InfrastructureQuality
	if s.SESIndex != nil {
		ses = *s.SESIndex
	}
	if s.InfrastructureQuality != nil {
		infra = *s.InfrastructureQuality
	}

	return FeatureVector{
		Temperature:           s.Temperature,
		WindSpeed:             s.WindSpeed,
		WindChill:             s.WindChill,
		Precipitation:         s.Precipitation,
		SnowDepth:             s.SnowDepth,
		Hour:                  s.Hour,
		DayOfWeek:             s.DayOfWeek,
		Month:                 s.Month,
		Neighborhood:          n.Name,
		SESIndex:              ses,
		InfrastructureQuality: infra,
	}
}
