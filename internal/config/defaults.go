package config

import "time"

const (
	// DefaultSubscription matches the subscription created by the
	// preemption notification setup.
	DefaultSubscription = "night-king-preempt"

	// DefaultPollInterval is the wait between polls of a stopping instance.
	DefaultPollInterval = 30 * time.Second

	// DefaultShutdownGrace stays below systemd's default stop timeout.
	DefaultShutdownGrace = 60 * time.Second

	DefaultMaxOutstanding = 10
	DefaultGoroutines     = 1
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() NightkingConfig {
	return NightkingConfig{
		Subscription:  DefaultSubscription,
		PollInterval:  DefaultPollInterval,
		ShutdownGrace: DefaultShutdownGrace,
		Receive: ReceiveConfig{
			MaxOutstanding: DefaultMaxOutstanding,
			Goroutines:     DefaultGoroutines,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
