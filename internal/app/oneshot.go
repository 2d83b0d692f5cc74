package app

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"nightking/internal/formatting"
	"nightking/internal/instance"
	"nightking/internal/intake"
	"nightking/internal/reconciler"
	"nightking/pkg/logging"
)

// statusConcurrency bounds parallel instance lookups.
const statusConcurrency = 8

// Status queries the current state of each named instance in zone. Lookup
// failures are reported per row, not as an error.
func (a *Application) Status(ctx context.Context, zone string, names []string) ([]formatting.InstanceStatus, error) {
	refs, err := references(zone, names)
	if err != nil {
		return nil, err
	}
	rows := make([]formatting.InstanceStatus, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statusConcurrency)

	for i, ref := range refs {
		g.Go(func() error {
			inst, err := a.services.Compute.GetInstance(gctx, ref.Zone, ref.Name)
			rows[i] = formatting.InstanceStatus{Reference: ref, Instance: inst, Error: err}
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Resurrect runs each named instance through the same intake path as
// subscription messages, concurrently, and returns the results in input
// order.
func (a *Application) Resurrect(ctx context.Context, zone string, names []string) ([]formatting.Resurrection, error) {
	refs, err := references(zone, names)
	if err != nil {
		return nil, err
	}
	payloads := make([][]byte, len(refs))
	for i, ref := range refs {
		if payloads[i], err = json.Marshal(ref); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", ref, err)
		}
	}
	rows := make([]formatting.Resurrection, len(refs))

	var g errgroup.Group
	for i, ref := range refs {
		rows[i].Reference = ref
		capture := &capturingReconciler{inner: a.services.Reconciler, result: &rows[i].Result}
		handler := intake.NewHandler(capture, "command line", a.services.Metrics)

		g.Go(func() error {
			ev := intake.NewSyntheticEvent(payloads[i], func() {
				logging.Debug("Resurrect", "Request for %s acknowledged", ref)
			})
			handler.Handle(ctx, ev)
			return nil
		})
	}

	_ = g.Wait()
	return rows, nil
}

func references(zone string, names []string) ([]instance.Reference, error) {
	refs := make([]instance.Reference, 0, len(names))
	for _, name := range names {
		ref := instance.Reference{Name: name, Zone: zone}
		if err := ref.Validate(); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// capturingReconciler stores the result of the single reconciliation it
// performs.
type capturingReconciler struct {
	inner  intake.Reconciler
	result *reconciler.Result
}

func (c *capturingReconciler) Reconcile(ctx context.Context, ref instance.Reference) reconciler.Result {
	r := c.inner.Reconcile(ctx, ref)
	*c.result = r
	return r
}
