// Package model implements the domain.Model contract against the external
// model-serving HTTP endpoint.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/winter-risk-engine/internal/domain"
)

// Client calls the model server's raw-prediction endpoint. Every failure mode
// wraps domain.ErrModelUnavailable so the engine can propagate it untouched.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a model-server client. token may be empty when the server
// runs without authentication (local development).
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// PredictRaw posts the feature vector to POST {base}/predict_raw and returns
// the raw probability.
func (c *Client) PredictRaw(ctx context.Context, features domain.FeatureVector) (float64, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return 0, fmt.Errorf("%w: encode features: %v", domain.ErrModelUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_raw", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: create request: %v", domain.ErrModelUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%w: model server status %d: %s", domain.ErrModelUnavailable, resp.StatusCode, msg)
	}

	var parsed predictRawResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("%w: decode response: %v", domain.ErrModelUnavailable, err)
	}

	if parsed.RawProbability < 0 || parsed.RawProbability > 1 {
		return 0, fmt.Errorf("%w: raw probability %g outside [0,1]", domain.ErrModelUnavailable, parsed.RawProbability)
	}
	return parsed.RawProbability, nil
}

// Model server response type.

type predictRawResponse struct {
	RawProbability float64 `json:"raw_probability"`
}
