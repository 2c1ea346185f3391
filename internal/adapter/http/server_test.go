package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/winter-risk-engine/internal/domain"
)

type fakePredictor struct {
	predictResult  domain.PredictionResult
	predictErr     error
	corridorResult domain.CorridorResult
	corridorErr    error

	predictCalls  []domain.Scenario
	corridorCalls []domain.CorridorRequest
}

func (p *fakePredictor) Predict(_ context.Context, s domain.Scenario) (domain.PredictionResult, error) {
	p.predictCalls = append(p.predictCalls, s)
	return p.predictResult, p.predictErr
}

func (p *fakePredictor) PredictCorridor(_ context.Context, req domain.CorridorRequest) (domain.CorridorResult, error) {
	p.corridorCalls = append(p.corridorCalls, req)
	if p.corridorErr != nil {
		return domain.CorridorResult{}, p.corridorErr
	}
	result := p.corridorResult
	// Offset-sensitive aggregate so comparison tests see distinct corridors.
	result.AggregateCorridorRisk += 0.01 * float64(req.HourOffset)
	return result, nil
}

type fakeReadiness struct {
	err error
}

func (r *fakeReadiness) CheckReadiness(context.Context) error { return r.err }

func newTestServer(predictor Predictor, ready ReadinessChecker) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", predictor, ready, logger)
}

const scenarioBody = `{
	"temperature": -15.5,
	"wind_speed": 25.0,
	"wind_chill": -28.0,
	"precipitation": 2.5,
	"snow_depth": 30.0,
	"hour": 8,
	"day_of_week": 1,
	"month": 1,
	"neighborhood": "Downtown"
}`

func corridorBody(extra string) string {
	body := `{
		"from_neighborhood": "Downtown",
		"to_neighborhood": "Terwillegar",
		"temperature": -15.5,
		"wind_speed": 25.0,
		"wind_chill": -28.0,
		"precipitation": 2.5,
		"snow_depth": 30.0,
		"hour": 8,
		"day_of_week": 1,
		"month": 1`
	if extra != "" {
		body += ",\n" + extra
	}
	return body + "\n}"
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		s := newTestServer(&fakePredictor{}, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("readyz ready", func(t *testing.T) {
		s := newTestServer(&fakePredictor{}, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodGet, "/readyz", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz not ready", func(t *testing.T) {
		s := newTestServer(&fakePredictor{}, &fakeReadiness{err: errors.New("graph missing")})

		rec := doRequest(t, s, http.MethodGet, "/readyz", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "graph missing")
	})

	t.Run("metrics", func(t *testing.T) {
		s := newTestServer(&fakePredictor{}, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodGet, "/metrics", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHandlePredict(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		predictor := &fakePredictor{
			predictResult: domain.PredictionResult{
				Neighborhood:   "Downtown",
				RawProbability: 0.60,
				Probability:    0.60,
				RiskLevel:      domain.RiskHigh,
			},
		}
		s := newTestServer(predictor, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodPost, "/predict", scenarioBody)

		require.Equal(t, http.StatusOK, rec.Code)

		var result domain.PredictionResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "Downtown", result.Neighborhood)
		assert.Equal(t, domain.RiskHigh, result.RiskLevel)

		require.Len(t, predictor.predictCalls, 1)
		assert.Equal(t, -15.5, predictor.predictCalls[0].Temperature)
		assert.Equal(t, 8, predictor.predictCalls[0].Hour)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(&fakePredictor{}, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodPost, "/predict", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "request_id")
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"invalid scenario", fmt.Errorf("%w: hour", domain.ErrInvalidScenario), http.StatusBadRequest},
			{"unknown neighborhood", fmt.Errorf("%w: Atlantis", domain.ErrUnknownNeighborhood), http.StatusNotFound},
			{"model unavailable", fmt.Errorf("%w: down", domain.ErrModelUnavailable), http.StatusServiceUnavailable},
			{"internal", errors.New("boom"), http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := newTestServer(&fakePredictor{predictErr: tt.err}, &fakeReadiness{})

				rec := doRequest(t, s, http.MethodPost, "/predict", scenarioBody)

				assert.Equal(t, tt.want, rec.Code)
			})
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		s := newTestServer(&fakePredictor{}, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodGet, "/predict", "")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandleCorridor(t *testing.T) {
	baseResult := domain.CorridorResult{
		FromNeighborhood:     "Downtown",
		ToNeighborhood:       "Terwillegar",
		OrderedNeighborhoods: []string{"Downtown", "Oliver", "Terwillegar"},
		PerHopRiskScores: []domain.CorridorHop{
			{Hop: 1, Neighborhood: "Downtown", Probability: 0.2, RiskLevel: domain.RiskLow},
			{Hop: 2, Neighborhood: "Oliver", Probability: 0.3, RiskLevel: domain.RiskMedium},
			{Hop: 3, Neighborhood: "Terwillegar", Probability: 0.2, RiskLevel: domain.RiskLow},
		},
		AggregateCorridorRisk: 0.40,
		RiskLevel:             domain.RiskMedium,
		NarrativeGuidance:     "MEDIUM corridor risk.",
	}

	t.Run("success without comparison", func(t *testing.T) {
		predictor := &fakePredictor{corridorResult: baseResult}
		s := newTestServer(predictor, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodPost, "/corridor", corridorBody(""))

		require.Equal(t, http.StatusOK, rec.Code)

		var response corridorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, []string{"Downtown", "Oliver", "Terwillegar"}, response.OrderedNeighborhoods)
		assert.Nil(t, response.Comparison)

		require.Len(t, predictor.corridorCalls, 1)
		assert.Equal(t, "Downtown", predictor.corridorCalls[0].FromNeighborhood)
		assert.Equal(t, 0, predictor.corridorCalls[0].HourOffset)
	})

	t.Run("comparison triggers a second offset run", func(t *testing.T) {
		predictor := &fakePredictor{corridorResult: baseResult}
		s := newTestServer(predictor, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodPost, "/corridor",
			corridorBody(`"hour_offset": 2, "compare_hour_offset": 6`))

		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, predictor.corridorCalls, 2)
		assert.Equal(t, 2, predictor.corridorCalls[0].HourOffset)
		assert.Equal(t, 8, predictor.corridorCalls[1].HourOffset)

		var response corridorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.NotNil(t, response.Comparison)
		assert.Equal(t, 6, response.Comparison.CompareHourOffset)
		// Fake aggregate moves 0.01 per offset hour: 0.48 vs 0.42.
		assert.Equal(t, domain.TrendHigher, response.Comparison.Trend)
		assert.InDelta(t, 0.06, response.Comparison.Delta, 1e-9)
		assert.Equal(t, []string{"Downtown", "Oliver", "Terwillegar"},
			response.Comparison.Corridor.OrderedNeighborhoods)
	})

	t.Run("hour_offset out of range", func(t *testing.T) {
		s := newTestServer(&fakePredictor{corridorResult: baseResult}, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodPost, "/corridor", corridorBody(`"hour_offset": 168`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/corridor", corridorBody(`"hour_offset": -1`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("compare_hour_offset bounds", func(t *testing.T) {
		s := newTestServer(&fakePredictor{corridorResult: baseResult}, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodPost, "/corridor", corridorBody(`"compare_hour_offset": 0`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/corridor",
			corridorBody(`"hour_offset": 160, "compare_hour_offset": 10`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"unknown neighborhood", fmt.Errorf("%w: Atlantis", domain.ErrUnknownNeighborhood), http.StatusNotFound},
			{"no path", fmt.Errorf("%w: Far Island", domain.ErrNoPathFound), http.StatusUnprocessableEntity},
			{"model unavailable", fmt.Errorf("%w: down", domain.ErrModelUnavailable), http.StatusServiceUnavailable},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := newTestServer(&fakePredictor{corridorErr: tt.err}, &fakeReadiness{})

				rec := doRequest(t, s, http.MethodPost, "/corridor", corridorBody(""))

				assert.Equal(t, tt.want, rec.Code)
			})
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(&fakePredictor{}, &fakeReadiness{})

		rec := doRequest(t, s, http.MethodPost, "/corridor", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
