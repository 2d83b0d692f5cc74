package config

import (
	"nightking/pkg/logging"
)

// Validate checks the configuration and returns a
// *ConfigurationErrorCollection listing every problem, or nil.
func (c NightkingConfig) Validate() error {
	var errs ConfigurationErrorCollection

	if c.Project == "" {
		errs.Add(ConfigurationError{
			Field:   "project",
			Message: "project is required",
			Suggestions: []string{
				"pass --project <gce-project-id>",
				"set NIGHTKING_PROJECT",
			},
		})
	}
	if c.Subscription == "" {
		errs.Add(ConfigurationError{
			Field:       "subscription",
			Message:     "subscription must not be empty",
			Suggestions: []string{"omit the setting to use " + DefaultSubscription},
		})
	}
	if c.PollInterval <= 0 {
		errs.Add(ConfigurationError{
			Field:   "pollInterval",
			Message: "poll interval must be positive, got " + c.PollInterval.String(),
		})
	}
	if c.MaxWait < 0 {
		errs.Add(ConfigurationError{
			Field:       "maxWait",
			Message:     "max wait must not be negative, got " + c.MaxWait.String(),
			Suggestions: []string{"use 0 to wait for stopping instances indefinitely"},
		})
	}
	if c.ShutdownGrace < 0 {
		errs.Add(ConfigurationError{
			Field:       "shutdownGrace",
			Message:     "shutdown grace must not be negative, got " + c.ShutdownGrace.String(),
			Suggestions: []string{"use 0 to interrupt in-flight reconciliations immediately"},
		})
	}
	if c.Receive.MaxOutstanding < 0 {
		errs.Add(ConfigurationError{
			Field:   "receive.maxOutstanding",
			Message: "must not be negative",
		})
	}
	if c.Receive.Goroutines < 0 {
		errs.Add(ConfigurationError{
			Field:   "receive.goroutines",
			Message: "must not be negative",
		})
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs.Add(ConfigurationError{
			Field:       "log.level",
			Message:     err.Error(),
			Suggestions: []string{"use one of debug, info, warn, error"},
		})
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs.Add(ConfigurationError{
			Field:       "log.format",
			Message:     err.Error(),
			Suggestions: []string{"use text or json"},
		})
	}

	if errs.HasErrors() {
		return &errs
	}
	return nil
}
