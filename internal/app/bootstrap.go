package app

import (
	"context"
	"errors"
	"fmt"

	"nightking/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs nightking.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, build clients and components
//  2. Execution phase: Run the daemon, or call Resurrect/Status
type Application struct {
	config   *Config
	mode     Mode
	services *Services
}

// NewApplication initializes logging from cfg and creates the services
// needed by mode. cfg.Nightking must already be validated.
func NewApplication(ctx context.Context, cfg *Config, mode Mode) (*Application, error) {
	if err := initLogging(cfg); err != nil {
		return nil, err
	}

	logging.Info("Bootstrap", "Starting nightking in %s mode for project %s", mode, cfg.Nightking.Project)

	services, err := InitializeServices(ctx, cfg, mode)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		mode:     mode,
		services: services,
	}, nil
}

func initLogging(cfg *Config) error {
	level, err := logging.ParseLevel(cfg.Nightking.Log.Level)
	if err != nil {
		return err
	}
	if cfg.Debug {
		level = logging.LevelDebug
	}
	format, err := logging.ParseFormat(cfg.Nightking.Log.Format)
	if err != nil {
		return err
	}

	logging.Init(logging.Options{Level: level, Format: format, Output: cfg.LogOutput})
	return nil
}

// Services exposes the initialized components.
func (a *Application) Services() *Services {
	return a.services
}

// Run executes the daemon. It blocks until the process is signalled, ctx is
// cancelled or the subscription fails.
func (a *Application) Run(ctx context.Context) error {
	if a.mode != ModeDaemon {
		return errors.New("application was not initialized in daemon mode")
	}
	return runDaemonMode(ctx, a.services)
}

// Close releases client connections.
func (a *Application) Close() error {
	return a.services.Close()
}
