// Package config loads and validates the dad toolkit configuration.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Run: RunConfig{
			PollSeconds:    10,
			TimeoutMinutes: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
