package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/api/option"

	"nightking/internal/gce"
	"nightking/internal/intake"
	"nightking/internal/metrics"
	"nightking/internal/reconciler"
	"nightking/internal/subscriber"
	"nightking/pkg/logging"
)

// Services holds all initialized components used by the application.
type Services struct {
	// Compute talks to the Compute Engine API.
	Compute *gce.Client

	// Registry collects every nightking metric plus the Go runtime
	// collectors.
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder

	// Reconciler is shared by all events; it holds no per-instance state.
	Reconciler *reconciler.InstanceReconciler

	// Handler is the intake path for subscription messages. Nil in
	// ModeOneShot.
	Handler *intake.Handler

	// Listener pulls from the subscription. Nil in ModeOneShot.
	Listener *subscriber.Listener

	// MetricsServer is set in ModeDaemon when a metrics address is
	// configured.
	MetricsServer *metrics.Server
}

// InitializeServices creates the components needed by mode. Client
// construction failures are returned; nothing is contacted yet except for
// credential discovery.
func InitializeServices(ctx context.Context, cfg *Config, mode Mode) (*Services, error) {
	nk := cfg.Nightking

	computeOpts, pubsubOpts := cfg.ComputeOptions, cfg.PubSubOptions
	if computeOpts == nil || (mode == ModeDaemon && pubsubOpts == nil) {
		credOpts, err := gce.ClientOptions(ctx, nk.CredentialsFile)
		if err != nil {
			return nil, err
		}
		if computeOpts == nil {
			computeOpts = credOpts
		}
		if pubsubOpts == nil {
			pubsubOpts = credOpts
		}
	}

	compute, err := gce.NewClient(ctx, nk.Project, computeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Compute client: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)

	services := &Services{
		Compute:  compute,
		Registry: registry,
		Metrics:  recorder,
		Reconciler: reconciler.New(compute, reconciler.Config{
			PollInterval: nk.PollInterval,
			MaxWait:      nk.MaxWait,
			Metrics:      recorder,
		}),
	}

	if mode != ModeDaemon {
		return services, nil
	}

	listener, err := newListener(ctx, cfg, pubsubOpts)
	if err != nil {
		return nil, err
	}
	services.Listener = listener
	services.Handler = intake.NewHandler(services.Reconciler, listener.Path(), recorder)

	if nk.Metrics.Address != "" {
		services.MetricsServer = metrics.NewServer(nk.Metrics.Address, registry)
	}

	logging.Debug("Bootstrap", "Services initialized for project %s", compute.Project())
	return services, nil
}

func newListener(ctx context.Context, cfg *Config, opts []option.ClientOption) (*subscriber.Listener, error) {
	nk := cfg.Nightking
	listener, err := subscriber.NewListener(ctx, nk.Project, nk.Subscription, subscriber.Settings{
		MaxOutstandingMessages: nk.Receive.MaxOutstanding,
		NumGoroutines:          nk.Receive.Goroutines,
		ShutdownGrace:          nk.ShutdownGrace,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription listener: %w", err)
	}
	return listener, nil
}

// Close releases client connections.
func (s *Services) Close() error {
	if s.Listener != nil {
		return s.Listener.Close()
	}
	return nil
}
