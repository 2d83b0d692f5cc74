// Package intake turns delivered notifications into reconciliations and owns
// the acknowledgment contract: every event is acknowledged exactly once,
// whatever happens while handling it, unless shutdown interrupted the
// reconciliation. Those events are left for redelivery.
package intake

import (
	"context"
	"errors"
	"fmt"

	"nightking/internal/instance"
	"nightking/internal/metrics"
	"nightking/internal/reconciler"
	"nightking/pkg/logging"
	nkstrings "nightking/pkg/strings"
)

const subsystem = "Intake"

// Reconciler is what the Handler hands decoded references to.
type Reconciler interface {
	Reconcile(ctx context.Context, ref instance.Reference) reconciler.Result
}

// Handler decodes events and runs them through a Reconciler.
type Handler struct {
	reconciler Reconciler
	source     string
	metrics    *metrics.Recorder
}

// NewHandler creates a Handler. source names where events come from (the
// subscription path) and only appears in logs. A nil recorder is replaced by
// an unregistered one.
func NewHandler(r Reconciler, source string, rec *metrics.Recorder) *Handler {
	if rec == nil {
		rec = metrics.NewRecorder(nil)
	}
	return &Handler{
		reconciler: r,
		source:     source,
		metrics:    rec,
	}
}

// Handle processes one event. It blocks until reconciliation reaches a
// terminal outcome and never panics. ev is acknowledged unless ctx was
// cancelled before the reconciliation could finish.
func (h *Handler) Handle(ctx context.Context, ev Event) {
	logging.Info(subsystem, "Handling message %s from subscription %q", ev.ID(), h.source)

	ack := true
	defer func() {
		if p := recover(); p != nil {
			logging.Error(subsystem, fmt.Errorf("panic: %v", p), "Handling message %s panicked", ev.ID())
		}
		if !ack {
			logging.Warn(subsystem, "Leaving message %s unacknowledged for redelivery", ev.ID())
			return
		}
		logging.Info(subsystem, "ACKing message %s", ev.ID())
		ev.Ack()
	}()

	ref, err := instance.DecodeReference(ev.Data())
	if err != nil {
		h.rejected(ev, err)
		return
	}
	h.metrics.RecordEvent(metrics.EventAccepted)

	result := h.reconciler.Reconcile(ctx, ref)
	logging.Info(subsystem, "Message %s for instance %s finished: %s after %d poll(s)", ev.ID(), ref, result.Outcome, result.Polls)

	if ctx.Err() != nil && result.Interrupted() {
		ack = false
	}
}

// rejected logs a payload that can never be processed. Redelivery would not
// help, so the caller still acknowledges it.
func (h *Handler) rejected(ev Event, err error) {
	payload := nkstrings.Payload(ev.Data())
	switch {
	case errors.Is(err, instance.ErrMalformedPayload):
		h.metrics.RecordEvent(metrics.EventMalformedPayload)
		logging.WarnErr(subsystem, err, "Failed parsing JSON message %s - ignoring it: %q", ev.ID(), payload)
	case errors.Is(err, instance.ErrMissingField):
		h.metrics.RecordEvent(metrics.EventMissingField)
		logging.Error(subsystem, err, "Parsed message %s missing mandatory fields: %s", ev.ID(), payload)
	default:
		h.metrics.RecordEvent(metrics.EventInvalidShape)
		logging.Error(subsystem, err, "Parsed message %s not a valid instance description: %s", ev.ID(), payload)
	}
}
