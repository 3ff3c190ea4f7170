// Package config defines process configuration and its loading hooks.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Mode is either "draw" (one-shot CLI) or "serve" (HTTP API).
	Mode string `koanf:"mode"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Input is the roster TSV path for draw mode; "-" reads stdin.
	Input string `koanf:"input"`

	// TargetTotal is the number of matches requested in draw mode.
	TargetTotal int `koanf:"target_total"`

	// Seed fixes the random source. Zero derives one from the clock.
	Seed int64 `koanf:"seed"`

	// FullNames keeps the full participant name in labels instead of the first word.
	FullNames bool `koanf:"full_names"`

	// MaxStoredDraws bounds the in-memory draw store.
	MaxStoredDraws int `koanf:"max_stored_draws"`

	// MaxTargetTotal caps target_total accepted by the API.
	MaxTargetTotal int `koanf:"max_target_total"`

	// ShutdownTimeoutSec bounds graceful HTTP shutdown.
	ShutdownTimeoutSec int `koanf:"shutdown_timeout_sec"`
}

// Modes.
const (
	ModeDraw  = "draw"
	ModeServe = "serve"
)

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Mode:               ModeDraw,
		Addr:               ":9080",
		Input:              "-",
		TargetTotal:        0,
		MaxStoredDraws:     1000,
		MaxTargetTotal:     10_000,
		ShutdownTimeoutSec: 10,
	}
}
