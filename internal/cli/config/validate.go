package config

import (
	"fmt"
	"net/url"
	"slices"
)

// OutputModes lists the accepted values of output.
var OutputModes = []string{"auto", "text", "markdown", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url must be an http or https URL, got %q", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %s", c.Backend.Timeout)
	}
	if c.Alerts.Duration <= 0 || c.Alerts.ResultDuration <= 0 {
		return fmt.Errorf("alert durations must be positive, got %s and %s", c.Alerts.Duration, c.Alerts.ResultDuration)
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port out of range: %d", c.UI.Port)
	}
	if !slices.Contains(OutputModes, c.Output) {
		return fmt.Errorf("output must be one of %v, got %q", OutputModes, c.Output)
	}
	return nil
}
