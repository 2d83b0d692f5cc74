// Package logging provides the structured logging used throughout nightking.
//
// It is a thin layer over Go's standard slog package that tags every record
// with a subsystem and offers printf-style helpers, so call sites stay short:
//
//	logging.Init(logging.Options{Level: logging.LevelInfo, Format: logging.FormatJSON})
//
//	logging.Info("Reconciler", "Attempting to start instance %q in zone %q", name, zone)
//	logging.Warn("Reconciler", "No instance named %q in zone %q", name, zone)
//	logging.Error("Bootstrap", err, "Failed to create Compute client")
//
// # Log Levels
//
//   - Debug: operation responses and other verbose detail
//   - Info: every decision the daemon takes for a message
//   - Warn: non-fatal problems such as unparseable payloads or missing instances
//   - Error: malformed payloads and failed API calls
//
// # Subsystems
//
//   - Bootstrap: application initialization and shutdown
//   - Config: configuration loading and validation
//   - Subscriber: Pub/Sub receive loop
//   - Intake: message decoding and acknowledgment
//   - Reconciler: instance polling and start requests
//   - Compute: Compute Engine API adapter
//   - Metrics: metrics HTTP endpoint
//
// # Output
//
// Records are written as slog text (the default) or JSON. Errors are attached
// as the "error" attribute and the subsystem as the "subsystem" attribute, so
// both formats can be filtered the same way by log aggregation systems.
//
// Logging is safe for concurrent use once Init has been called.
package logging
