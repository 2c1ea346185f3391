// Package engine composes the neighborhood graph, the model collaborator, and
// the calibration rules into the two serving operations: single-scenario
// prediction and corridor judgment. It holds no mutable state, so concurrent
// requests need no coordination.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/winter-risk-engine/internal/domain"
	"github.com/couchcryptid/winter-risk-engine/internal/observability"
)

// Engine is the risk calibration and corridor aggregation core.
type Engine struct {
	graph       *domain.Graph
	model       domain.Model
	calibration domain.Calibration
	thresholds  domain.Thresholds
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates an Engine over an immutable graph and a model collaborator.
func New(
	graph *domain.Graph,
	model domain.Model,
	calibration domain.Calibration,
	thresholds domain.Thresholds,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Engine {
	metrics.GraphNeighborhoods.Set(float64(graph.Len()))
	return &Engine{
		graph:       graph,
		model:       model,
		calibration: calibration,
		thresholds:  thresholds,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness reports whether the engine can serve predictions.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if e.graph == nil || e.graph.Len() == 0 {
		return errors.New("neighborhood graph is not loaded")
	}
	if e.model == nil {
		return errors.New("model collaborator is not configured")
	}
	return nil
}

// Predict scores a single scenario: model → calibration → classification.
// Model failures propagate unchanged; a scoring failure must never be masked
// as a valid risk score.
func (e *Engine) Predict(ctx context.Context, s domain.Scenario) (domain.PredictionResult, error) {
	if err := s.Validate(); err != nil {
		e.countError(err)
		return domain.PredictionResult{}, err
	}

	node, err := e.resolveContext(s)
	if err != nil {
		e.countError(err)
		return domain.PredictionResult{}, err
	}

	raw, err := e.predictRaw(ctx, s.Features(node))
	if err != nil {
		e.countError(err)
		return domain.PredictionResult{}, err
	}

	result := domain.Score(raw, s, e.calibration, e.thresholds)
	result.Neighborhood = node.Name

	e.metrics.PredictionsTotal.WithLabelValues(string(result.RiskLevel)).Inc()
	e.metrics.CalibrationShift.Observe(result.CalibrationDelta)
	e.logger.Debug("scenario scored",
		"neighborhood", node.Name,
		"raw_probability", result.RawProbability,
		"probability", result.Probability,
		"risk_level", result.RiskLevel,
	)
	return result, nil
}

// PredictCorridor resolves the shortest corridor between the requested
// endpoints, scores every neighborhood on it under the hour-advanced scenario,
// and combines the hops into one judgment.
func (e *Engine) PredictCorridor(ctx context.Context, req domain.CorridorRequest) (domain.CorridorResult, error) {
	if req.HourOffset < 0 {
		err := fmt.Errorf("%w: hour_offset %d must be >= 0", domain.ErrInvalidScenario, req.HourOffset)
		e.countError(err)
		return domain.CorridorResult{}, err
	}
	if err := req.Scenario.Validate(); err != nil {
		e.countError(err)
		return domain.CorridorResult{}, err
	}

	path, err := e.graph.ShortestPath(req.FromNeighborhood, req.ToNeighborhood)
	if err != nil {
		e.countError(err)
		return domain.CorridorResult{}, err
	}

	base := req.Scenario.Advance(req.HourOffset)
	hops := make([]domain.CorridorHop, 0, len(path))

	for i, name := range path {
		prediction, err := e.Predict(ctx, base.ForNeighborhood(name))
		if err != nil {
			return domain.CorridorResult{}, fmt.Errorf("score hop %d (%s): %w", i+1, name, err)
		}
		hops = append(hops, domain.CorridorHop{
			Hop:          i + 1,
			Neighborhood: prediction.Neighborhood,
			Probability:  prediction.Probability,
			RiskLevel:    prediction.RiskLevel,
		})
	}

	result := domain.ComposeCorridor(path, hops, e.thresholds)

	e.metrics.CorridorsScored.Inc()
	e.metrics.CorridorHops.Observe(float64(len(path)))
	e.logger.Info("corridor scored",
		"from", result.FromNeighborhood,
		"to", result.ToNeighborhood,
		"hops", len(path),
		"aggregate_risk", result.AggregateCorridorRisk,
		"risk_level", result.RiskLevel,
	)
	return result, nil
}

// resolveContext looks the scenario's neighborhood up in the graph. A name
// missing from the graph is only acceptable for what-if queries that supply
// both context overrides explicitly.
func (e *Engine) resolveContext(s domain.Scenario) (*domain.Neighborhood, error) {
	node, err := e.graph.Resolve(s.Neighborhood)
	if err != nil {
		if s.SESIndex != nil && s.InfrastructureQuality != nil {
			return &domain.Neighborhood{Name: s.Neighborhood}, nil
		}
		return nil, err
	}
	return node, nil
}

func (e *Engine) predictRaw(ctx context.Context, features domain.FeatureVector) (float64, error) {
	start := time.Now()
	raw, err := e.model.PredictRaw(ctx, features)
	e.metrics.ModelRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, fmt.Errorf("model predict for %q: %w", features.Neighborhood, err)
	}
	return raw, nil
}

func (e *Engine) countError(err error) {
	reason := "internal"
	switch {
	case errors.Is(err, domain.ErrInvalidScenario):
		reason = "invalid_scenario"
	case errors.Is(err, domain.ErrUnknownNeighborhood):
		reason = "unknown_neighborhood"
	case errors.Is(err, domain.ErrNoPathFound):
		reason = "no_path"
	case errors.Is(err, domain.ErrModelUnavailable):
		reason = "model_unavailable"
	}
	e.metrics.PredictionErrors.WithLabelValues(reason).Inc()
}
