package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/couchcryptid/winter-risk-engine/internal/domain"
)

// maxHourOffset bounds what-if time offsets to one week. Offsets past a day
// are legitimate (day_of_week rolls forward) but an unbounded offset is
// always a client mistake.
const maxHourOffset = 167

// Predictor is the engine surface the transport layer depends on.
type Predictor interface {
	Predict(ctx context.Context, s domain.Scenario) (domain.PredictionResult, error)
	PredictCorridor(ctx context.Context, req domain.CorridorRequest) (domain.CorridorResult, error)
}

type handlers struct {
	predictor Predictor
	logger    *slog.Logger
}

// corridorRequest is the wire form of a corridor query. The optional
// compare_hour_offset triggers a second corridor run that many hours after
// the base request, plus a trend comparison.
type corridorRequest struct {
	domain.CorridorRequest
	CompareHourOffset *int `json:"compare_hour_offset,omitempty"`
}

type corridorResponse struct {
	domain.CorridorResult
	Comparison *comparisonPayload `json:"comparison,omitempty"`
}

type comparisonPayload struct {
	domain.CorridorComparison
	Corridor domain.CorridorResult `json:"corridor"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (h *handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With("request_id", requestID, "route", "predict")

	var scenario domain.Scenario
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err), requestID)
		return
	}

	result, err := h.predictor.Predict(r.Context(), scenario)
	if err != nil {
		logger.Warn("prediction failed", "error", err)
		writeError(w, statusFor(err), err, requestID)
		return
	}

	logger.Info("prediction served",
		"neighborhood", result.Neighborhood,
		"risk_level", result.RiskLevel,
	)
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) handleCorridor(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With("request_id", requestID, "route", "corridor")

	var req corridorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err), requestID)
		return
	}

	if req.HourOffset < 0 || req.HourOffset > maxHourOffset {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("hour_offset must be between 0 and %d", maxHourOffset), requestID)
		return
	}
	if req.CompareHourOffset != nil {
		offset := *req.CompareHourOffset
		if offset <= 0 || req.HourOffset+offset > maxHourOffset {
			writeError(w, http.StatusBadRequest,
				fmt.Errorf("compare_hour_offset must be positive and keep the total offset within %d hours", maxHourOffset),
				requestID)
			return
		}
	}

	base, err := h.predictor.PredictCorridor(r.Context(), req.CorridorRequest)
	if err != nil {
		logger.Warn("corridor scoring failed", "error", err)
		writeError(w, statusFor(err), err, requestID)
		return
	}

	response := corridorResponse{CorridorResult: base}

	if req.CompareHourOffset != nil {
		compareReq := req.CorridorRequest
		compareReq.HourOffset += *req.CompareHourOffset

		compared, err := h.predictor.PredictCorridor(r.Context(), compareReq)
		if err != nil {
			logger.Warn("comparison corridor scoring failed", "error", err)
			writeError(w, statusFor(err), err, requestID)
			return
		}
		response.Comparison = &comparisonPayload{
			CorridorComparison: domain.Compare(base, compared, *req.CompareHourOffset),
			Corridor:           compared,
		}
	}

	logger.Info("corridor served",
		"from", base.FromNeighborhood,
		"to", base.ToNeighborhood,
		"hops", len(base.OrderedNeighborhoods),
		"risk_level", base.RiskLevel,
		"compared", req.CompareHourOffset != nil,
	)
	writeJSON(w, http.StatusOK, response)
}

// statusFor maps domain errors to HTTP status codes. Unknown neighborhoods
// and disconnected endpoints are client-input errors; a model failure is a
// dependency outage.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidScenario):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownNeighborhood):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoPathFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error, requestID string) {
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestID})
}
