// Package reconciler brings preempted Compute Engine instances back up.
//
// # Overview
//
// A preemption notification can arrive before Compute Engine has finished
// tearing the instance down. Issuing a start while the instance is still
// STOPPING races the shutdown, so the reconciler polls the instance status
// and only starts it once it has reached TERMINATED.
//
// # State Policy
//
// Each call to Reconcile runs a polling loop against the Compute API:
//
//   - query fails (not found or any API error): stop, OutcomeNotFound
//   - STOPPING: sleep the poll interval and query again
//   - TERMINATED: issue a start request, OutcomeResurrected
//   - anything else (RUNNING, STAGING, ...): stop, OutcomeNotTerminated
//
// Query failures are never retried; the only condition that re-polls is
// STOPPING. The poll interval is fixed and the loop has no iteration cap
// unless Config.MaxWait is set. With MaxWait the last sleep is shortened so
// the final poll happens exactly at MaxWait, and the reconciler gives up
// with OutcomeGaveUpObserving if the instance is still STOPPING then.
//
// # Cancellation
//
// The context is only cancelled when the process shuts down. A sleep or
// query cut short by it ends the loop with OutcomeGaveUpObserving and a
// Result for which Interrupted reports true, so callers can leave the
// request for redelivery instead of treating it as handled.
//
// # Start Requests
//
// Start requests are fire-and-forget. The returned operation is logged at
// debug level and never inspected; an error from the start call is logged
// and the outcome is still OutcomeResurrected. Starting an instance that is
// already starting is harmless on Compute Engine, which is what makes
// concurrent reconciliations of the same instance safe.
//
// # Concurrency
//
// An InstanceReconciler holds no per-call state and is safe for concurrent
// use. Every call reads the instance status fresh from the API.
//
// Example usage:
//
//	r := reconciler.New(computeClient, reconciler.Config{})
//	result := r.Reconcile(ctx, instance.Reference{Name: "worker-1", Zone: "us-east1-b"})
//	logging.Info("Intake", "Reconciliation finished: %s", result.Outcome)
package reconciler
