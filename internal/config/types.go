package config

import "time"

// NightkingConfig is the top-level configuration.
type NightkingConfig struct {
	// Project is the Google Cloud project holding both the instances and
	// the subscription.
	Project string `yaml:"project" mapstructure:"project"`

	// Subscription is the Pub/Sub subscription name (not the full path).
	Subscription string `yaml:"subscription" mapstructure:"subscription"`

	// PollInterval is the wait between status queries while an instance
	// is stopping.
	PollInterval time.Duration `yaml:"pollInterval" mapstructure:"pollInterval"`

	// MaxWait bounds how long a stopping instance is observed. Zero means
	// no bound.
	MaxWait time.Duration `yaml:"maxWait" mapstructure:"maxWait"`

	// CredentialsFile is a service account key. Empty uses Application
	// Default Credentials.
	CredentialsFile string `yaml:"credentialsFile,omitempty" mapstructure:"credentialsFile"`

	// ShutdownGrace is how long the daemon lets in-flight reconciliations
	// run after a shutdown signal. Those still running afterwards are
	// interrupted and their notifications left for redelivery.
	ShutdownGrace time.Duration `yaml:"shutdownGrace" mapstructure:"shutdownGrace"`

	Receive ReceiveConfig `yaml:"receive" mapstructure:"receive"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ReceiveConfig tunes Pub/Sub flow control.
type ReceiveConfig struct {
	MaxOutstanding int `yaml:"maxOutstanding" mapstructure:"maxOutstanding"`
	Goroutines     int `yaml:"goroutines" mapstructure:"goroutines"`
}

// MetricsConfig controls the optional metrics endpoint.
type MetricsConfig struct {
	// Address to serve /metrics and /healthz on, e.g. ":9090".
	Address string `yaml:"address" mapstructure:"address"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}
