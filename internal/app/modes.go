package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"golang.org/x/sync/errgroup"

	"nightking/pkg/logging"
)

// Mode selects which components are started.
type Mode int

const (
	// ModeDaemon listens on the subscription until signalled.
	ModeDaemon Mode = iota
	// ModeOneShot runs operator commands against named instances.
	ModeOneShot
)

// String makes Mode satisfy the fmt.Stringer interface.
func (m Mode) String() string {
	switch m {
	case ModeDaemon:
		return "daemon"
	case ModeOneShot:
		return "one-shot"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// notifySystemd sends state to systemd when running under a notify unit.
// Outside systemd it is a no-op.
func notifySystemd(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logging.WarnErr("Daemon", err, "Failed to notify systemd (%s)", state)
		return
	}
	if sent {
		logging.Debug("Daemon", "Notified systemd: %s", state)
	}
}

// runDaemonMode listens for preemption notifications until ctx is cancelled
// or SIGINT/SIGTERM arrives.
//
// The subscription and the optional metrics server run in one errgroup: a
// failure in either stops both. In-flight handlers get the shutdown grace
// period to finish. Those still running afterwards are interrupted and their
// messages are left unacknowledged so Pub/Sub redelivers them.
func runDaemonMode(ctx context.Context, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := services.Listener.Check(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := services.Listener.Listen(gctx, services.Handler); err != nil {
			return err
		}
		if gctx.Err() == nil {
			return errors.New("subscription receive ended unexpectedly")
		}
		return nil
	})

	if services.MetricsServer != nil {
		g.Go(func() error {
			return services.MetricsServer.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Daemon", "Shutting down")
		notifySystemd(daemon.SdNotifyStopping)
		return nil
	})

	notifySystemd(daemon.SdNotifyReady)
	logging.Info("Daemon", "Lurking for preempted instances. Press Ctrl+C to stop.")

	return g.Wait()
}
