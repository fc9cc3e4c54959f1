// Package config provides configuration management for the dbnav CLI.
package config

import "time"

// Default configuration values.
const (
	DefaultBackendURL     = "http://127.0.0.1:34115"
	DefaultBackendTimeout = 30 * time.Second
	DefaultAlertDuration  = 3 * time.Second
	DefaultResultDuration = 5 * time.Second
	DefaultUIPort         = 8765
	DefaultOutput         = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel       = "warn"
	ConfigFileName        = "dbnav.yaml"
	EnvPrefix             = "DBNAV_"
)

// Config holds all CLI configuration options.
type Config struct {
	Backend  BackendConfig `koanf:"backend"`
	Alerts   AlertsConfig  `koanf:"alerts"`
	UI       UIConfig      `koanf:"ui"`
	Output   string        `koanf:"output"`
	Verbose  bool          `koanf:"verbose"`
	LogLevel string        `koanf:"log_level"`
}

// BackendConfig locates the backend that owns the databases.
type BackendConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// AlertsConfig sets how long each notification channel stays visible.
type AlertsConfig struct {
	Duration       time.Duration `koanf:"duration"`
	ResultDuration time.Duration `koanf:"result_duration"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port     int  `koanf:"port"`
	Watch    bool `koanf:"watch"`
	AutoOpen bool `koanf:"auto_open"`
}

// defaults returns the flat key map loaded before any other layer.
func defaults() map[string]any {
	return map[string]any{
		"backend.url":            DefaultBackendURL,
		"backend.timeout":        DefaultBackendTimeout,
		"alerts.duration":        DefaultAlertDuration,
		"alerts.result_duration": DefaultResultDuration,
		"ui.port":                DefaultUIPort,
		"ui.watch":               true,
		"ui.auto_open":           false,
		"output":                 DefaultOutput,
		"verbose":                false,
		"log_level":              DefaultLogLevel,
	}
}
