package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nightking/internal/instance"
	"nightking/internal/metrics"
	"nightking/pkg/logging"
)

const subsystem = "Reconciler"

// InstanceReconciler drives a preempted instance back to RUNNING.
type InstanceReconciler struct {
	api          ComputeAPI
	pollInterval time.Duration
	maxWait      time.Duration
	sleeper      Sleeper
	metrics      *metrics.Recorder
}

// New creates an InstanceReconciler. The ComputeAPI is shared by all
// reconciliations.
func New(api ComputeAPI, cfg Config) *InstanceReconciler {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = timerSleeper{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewRecorder(nil)
	}

	return &InstanceReconciler{
		api:          api,
		pollInterval: cfg.PollInterval,
		maxWait:      cfg.MaxWait,
		sleeper:      cfg.Sleeper,
		metrics:      cfg.Metrics,
	}
}

// Reconcile polls ref until it reaches a terminal outcome. It never panics on
// API errors and always returns.
func (r *InstanceReconciler) Reconcile(ctx context.Context, ref instance.Reference) (result Result) {
	done := r.metrics.ReconcileStarted()
	defer func() {
		outcome := string(result.Outcome)
		if outcome == "" {
			outcome = "aborted"
		}
		done(outcome)
	}()

	logging.Info(subsystem, "Got resurrection request for instance %q in zone %q", ref.Name, ref.Zone)

	return r.poll(ctx, ref)
}

func (r *InstanceReconciler) poll(ctx context.Context, ref instance.Reference) Result {
	var result Result

	for {
		inst, err := r.api.GetInstance(ctx, ref.Zone, ref.Name)
		result.Polls++
		if err == nil && inst == nil {
			err = fmt.Errorf("compute API returned no instance for %s", ref)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return r.interrupted(ref, fmt.Errorf("%w: %w", ctxErr, err), result)
			}
			return r.queryFailed(ref, err, result)
		}

		result.LastStatus = inst.Status
		r.metrics.RecordPoll(string(inst.Status))

		switch inst.Status {
		case instance.StatusStopping:
			wait := r.nextWait(result.Waited)
			if wait <= 0 {
				logging.Warn(subsystem, "Instance %q in zone %q still stopping after %s - giving up", ref.Name, ref.Zone, result.Waited)
				result.Outcome = OutcomeGaveUpObserving
				return result
			}

			logging.Info(subsystem, "Instance %q in zone %q not yet terminated - waiting %s", ref.Name, ref.Zone, wait)
			if err := r.sleeper.Sleep(ctx, wait); err != nil {
				return r.interrupted(ref, err, result)
			}
			result.Waited += wait

		case instance.StatusTerminated:
			return r.start(ctx, ref, result)

		default:
			logging.Info(subsystem, "Instance %q in zone %q not terminated (status %s)", ref.Name, ref.Zone, inst.Status)
			result.Outcome = OutcomeNotTerminated
			return result
		}
	}
}

// nextWait returns how long to sleep before the next poll. The last sleep is
// shortened so the loop re-polls exactly at maxWait; zero means the budget is
// spent.
func (r *InstanceReconciler) nextWait(waited time.Duration) time.Duration {
	if r.maxWait <= 0 {
		return r.pollInterval
	}
	return min(r.pollInterval, r.maxWait-waited)
}

// interrupted ends the loop because ctx was cancelled. The caller decides
// whether the request is worth redelivering.
func (r *InstanceReconciler) interrupted(ref instance.Reference, err error, result Result) Result {
	logging.WarnErr(subsystem, err, "Stopped waiting for instance %q in zone %q", ref.Name, ref.Zone)
	result.Outcome = OutcomeGaveUpObserving
	result.Error = err
	return result
}

// queryFailed ends the loop. Not-found and other API errors are not retried:
// the notification may be stale or reference a deleted instance.
func (r *InstanceReconciler) queryFailed(ref instance.Reference, err error, result Result) Result {
	if errors.Is(err, instance.ErrNotFound) {
		r.metrics.RecordQueryError(metrics.QueryErrorNotFound)
		logging.Warn(subsystem, "No instance named %q in zone %q", ref.Name, ref.Zone)
	} else {
		r.metrics.RecordQueryError(metrics.QueryErrorAPI)
		logging.WarnErr(subsystem, err, "Failed to get instance %q in zone %q", ref.Name, ref.Zone)
	}

	result.Outcome = OutcomeNotFound
	result.Error = err
	return result
}

// start issues the start request. The response is logged, never validated.
func (r *InstanceReconciler) start(ctx context.Context, ref instance.Reference, result Result) Result {
	logging.Info(subsystem, "Attempting to start instance %q in zone %q", ref.Name, ref.Zone)

	op, err := r.api.StartInstance(ctx, ref.Zone, ref.Name)
	r.metrics.RecordStart(err)
	if err != nil {
		logging.Error(subsystem, err, "Start request for instance %q in zone %q failed", ref.Name, ref.Zone)
		result.Error = err
	} else {
		logging.Debug(subsystem, "Started GCE operation: %s", op)
	}

	result.Outcome = OutcomeResurrected
	result.Operation = op
	return result
}
