package app

import (
	"io"

	"google.golang.org/api/option"

	"nightking/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Nightking is the validated process configuration.
	Nightking config.NightkingConfig

	// Debug forces debug logging regardless of Nightking.Log.Level.
	Debug bool

	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer

	// ComputeOptions and PubSubOptions replace the credentials derived from
	// Nightking.CredentialsFile when set. Used to point the clients at
	// emulators and fakes.
	ComputeOptions []option.ClientOption
	PubSubOptions  []option.ClientOption
}

// NewConfig creates a new application configuration
func NewConfig(cfg config.NightkingConfig, debug bool) *Config {
	return &Config{
		Nightking: cfg,
		Debug:     debug,
	}
}
