package reconciler

import (
	"context"
	"errors"
	"time"

	"nightking/internal/instance"
	"nightking/internal/metrics"
)

// DefaultPollInterval is how long the reconciler waits between status
// queries while an instance is STOPPING.
const DefaultPollInterval = 30 * time.Second

// Outcome is the terminal state of one reconciliation.
type Outcome string

const (
	// OutcomeResurrected means a start request was issued.
	OutcomeResurrected Outcome = "Resurrected"

	// OutcomeNotFound means the status query failed.
	OutcomeNotFound Outcome = "NotFound"

	// OutcomeNotTerminated means the instance was in a state that needs no
	// action, including already RUNNING.
	OutcomeNotTerminated Outcome = "NotTerminated"

	// OutcomeGaveUpObserving means the reconciler stopped waiting for a
	// STOPPING instance, either because MaxWait was reached or because the
	// context was cancelled.
	OutcomeGaveUpObserving Outcome = "GaveUpObserving"
)

// Result describes how a reconciliation ended.
type Result struct {
	// Outcome is the terminal state.
	Outcome Outcome

	// LastStatus is the last status observed, empty if no query succeeded.
	LastStatus instance.Status

	// Polls is the number of status queries made.
	Polls int

	// Waited is the total time spent sleeping between polls.
	Waited time.Duration

	// Operation is the start operation, if one was returned.
	Operation *instance.Operation

	// Error is the query, start or cancellation error, if any.
	Error error
}

// Interrupted reports whether the reconciliation ended because its context
// was cancelled rather than because of anything observed on the instance.
func (r Result) Interrupted() bool {
	return errors.Is(r.Error, context.Canceled) || errors.Is(r.Error, context.DeadlineExceeded)
}

// ComputeAPI is the slice of the Compute Engine API the reconciler consumes.
// Implementations must be safe for concurrent use and should wrap
// instance.ErrNotFound when the instance does not exist.
type ComputeAPI interface {
	GetInstance(ctx context.Context, zone, name string) (*instance.Instance, error)
	StartInstance(ctx context.Context, zone, name string) (*instance.Operation, error)
}

// Sleeper pauses between polls. Sleep returns early with ctx.Err() when
// the context is cancelled.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// Config holds the reconciler settings.
type Config struct {
	// PollInterval is the delay between queries while the instance is
	// STOPPING. Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// MaxWait bounds the total time spent waiting on a STOPPING instance.
	// Zero means wait indefinitely.
	MaxWait time.Duration

	// Sleeper defaults to a timer-based sleeper.
	Sleeper Sleeper

	// Metrics defaults to an unregistered recorder.
	Metrics *metrics.Recorder
}
