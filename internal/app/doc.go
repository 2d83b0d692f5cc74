// Package app provides application bootstrap and lifecycle management for
// nightking.
//
// It wires the components built elsewhere into a running process:
//
//   - Compute: the Compute Engine adapter (internal/gce)
//   - Reconciler: the resurrection state machine (internal/reconciler)
//   - Handler: decoding and acknowledgment (internal/intake)
//   - Listener: the Pub/Sub subscription (internal/subscriber), daemon only
//   - Metrics: a private Prometheus registry, optionally served over HTTP
//
// # Modes
//
// ModeDaemon is the long running lurker. Run listens on the subscription
// until SIGINT or SIGTERM, serves metrics if an address is configured and
// reports readiness to systemd when started as a notify service.
//
// ModeOneShot skips the subscription. Resurrect and Status operate on
// instances named on the command line and return their results for
// printing.
//
// # Usage
//
//	cfg := app.NewConfig(loaded, debug)
//	application, err := app.NewApplication(ctx, cfg, app.ModeDaemon)
//	if err != nil {
//	    return err
//	}
//	defer application.Close()
//	return application.Run(ctx)
package app
