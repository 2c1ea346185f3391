// Package config loads service settings from environment variables, applying
// defaults and validating before the process starts serving.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/winter-risk-engine/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Neighborhood dataset.
	GraphDatasetPath string

	// Model collaborator.
	ModelURL       string
	ModelToken     string
	ModelTimeout   time.Duration
	ModelCacheSize int

	// Decision constants. Defaults come from the domain package; every value
	// can be overridden so guardrails and risk bands are tunable per
	// deployment without a rebuild.
	Calibration domain.Calibration
	Thresholds  domain.Thresholds
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	modelTimeout, err := parseDuration("MODEL_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveInt("MODEL_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	calibration, err := loadCalibration()
	if err != nil {
		return nil, err
	}

	thresholds, err := loadThresholds()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GraphDatasetPath: os.Getenv("GRAPH_DATASET_PATH"),

		ModelURL:       os.Getenv("MODEL_URL"),
		ModelToken:     os.Getenv("MODEL_TOKEN"),
		ModelTimeout:   modelTimeout,
		ModelCacheSize: cacheSize,

		Calibration: calibration,
		Thresholds:  thresholds,
	}

	if cfg.GraphDatasetPath == "" {
		return nil, errors.New("GRAPH_DATASET_PATH is required")
	}
	if cfg.ModelURL == "" {
		return nil, errors.New("MODEL_URL is required")
	}

	return cfg, nil
}

func loadCalibration() (domain.Calibration, error) {
	c := domain.DefaultCalibration()

	var err error
	if c.SeasonalityFactor, err = parseUnitFloat("SEASONALITY_FACTOR", c.SeasonalityFactor); err != nil {
		return c, err
	}
	if c.OvernightBoost, err = parseUnitFloat("OVERNIGHT_BOOST", c.OvernightBoost); err != nil {
		return c, err
	}
	if c.WarmDampeningFactor, err = parseUnitFloat("WARM_DAMPENING_FACTOR", c.WarmDampeningFactor); err != nil {
		return c, err
	}
	if c.ThawThresholdC, err = parseFloat("THAW_THRESHOLD_C", c.ThawThresholdC); err != nil {
		return c, err
	}
	if c.DryPrecipMax, err = parseFloat("DRY_PRECIP_MAX", c.DryPrecipMax); err != nil {
		return c, err
	}
	if c.DryPrecipMax < 0 {
		return c, errors.New("DRY_PRECIP_MAX must be >= 0")
	}
	return c, nil
}

func loadThresholds() (domain.Thresholds, error) {
	t := domain.DefaultThresholds()

	var err error
	if t.Medium, err = parseUnitFloat("RISK_THRESHOLD_MEDIUM", t.Medium); err != nil {
		return t, err
	}
	if t.High, err = parseUnitFloat("RISK_THRESHOLD_HIGH", t.High); err != nil {
		return t, err
	}
	if t.Critical, err = parseUnitFloat("RISK_THRESHOLD_CRITICAL", t.Critical); err != nil {
		return t, err
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDuration(name string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return d, nil
}

func parsePositiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return n, nil
}

func parseFloat(name string, def float64) (float64, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

// parseUnitFloat parses a float that must stay in [0, 1].
func parseUnitFloat(name string, def float64) (float64, error) {
	v, err := parseFloat(name, def)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%s must be in [0,1], got %g", name, v)
	}
	return v, nil
}
