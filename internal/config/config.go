// Package config defines process configuration and its loading.
//
// Conventions follow the rest of the repo: defaults come from New, a Load
// helper layers an optional YAML file and environment variables on top, and
// external errors are wrapped via this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ScoreFile is the path of the persisted leaderboard CSV.
	ScoreFile string `koanf:"score_file"`

	// SettingsFile is the path of the persisted key=value settings.
	SettingsFile string `koanf:"settings_file"`

	// MetricsAddr exposes Prometheus metrics over HTTP when non-empty,
	// e.g. ":9090". Empty disables the endpoint.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		ScoreFile:    "guess_highscores.csv",
		SettingsFile: "guess_settings.env",
		MetricsAddr:  "",
	}
}
