package config

import (
	"os"
	"strconv"
	"time"
)

// Get reads an environment variable with a fallback default.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Config carries the tunable routing-policy knobs. Values are threaded into
// each component's constructor rather than read from globals, so tests can
// run with small batch limits and a zero throttle.
type Config struct {
	// Maximum coordinates per external trip/route call.
	BatchLimit int
	// Courtesy delay between successive external calls within one run.
	// Zero disables throttling; its absence is not a correctness issue.
	ThrottleDelay time.Duration
	// A city+state match below WeakImportance triggers a state-agnostic
	// retry, accepted when its importance exceeds RetryImportance.
	WeakImportance  float64
	RetryImportance float64

	GeocodeBaseURL string
	OSRMBaseURL    string
	HTTPTimeout    time.Duration
}

// Default returns the production defaults.
func Default() Config {
	return Config{
		BatchLimit:      23,
		ThrottleDelay:   300 * time.Millisecond,
		WeakImportance:  0.4,
		RetryImportance: 0.6,
		GeocodeBaseURL:  "https://nominatim.openstreetmap.org",
		OSRMBaseURL:     "https://router.project-osrm.org",
		HTTPTimeout:     10 * time.Second,
	}
}

// FromEnv builds a Config from environment variables, falling back to the
// defaults for anything unset or unparseable.
func FromEnv() Config {
	cfg := Default()

	if v, err := strconv.Atoi(Get("BATCH_LIMIT", "")); err == nil && v > 0 {
		cfg.BatchLimit = v
	}
	if v, err := strconv.Atoi(Get("THROTTLE_DELAY_MS", "")); err == nil && v >= 0 {
		cfg.ThrottleDelay = time.Duration(v) * time.Millisecond
	}
	if v, err := strconv.ParseFloat(Get("WEAK_IMPORTANCE", ""), 64); err == nil {
		cfg.WeakImportance = v
	}
	if v, err := strconv.ParseFloat(Get("RETRY_IMPORTANCE", ""), 64); err == nil {
		cfg.RetryImportance = v
	}

	cfg.GeocodeBaseURL = Get("GEOCODE_BASE_URL", cfg.GeocodeBaseURL)
	cfg.OSRMBaseURL = Get("OSRM_BASE_URL", cfg.OSRMBaseURL)

	return cfg
}
