// Package metrics exposes nightking's Prometheus collectors.
//
// A Recorder is shared by every concurrent message handler; the underlying
// collectors are safe for concurrent use, so no additional locking is needed.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nightking"

// Event results recorded by the intake.
const (
	EventAccepted         = "accepted"
	EventMalformedPayload = "malformed_payload"
	EventInvalidShape     = "invalid_shape"
	EventMissingField     = "missing_field"
)

// Query error kinds recorded by the reconciler.
const (
	QueryErrorNotFound = "not_found"
	QueryErrorAPI      = "api"
)

// Recorder tracks message handling and reconciliation activity.
type Recorder struct {
	events      *prometheus.CounterVec
	outcomes    *prometheus.CounterVec
	polls       *prometheus.CounterVec
	starts      *prometheus.CounterVec
	queryErrors *prometheus.CounterVec
	duration    prometheus.Histogram
	inflight    prometheus.Gauge
}

// NewRecorder creates a Recorder and registers its collectors with reg.
// A nil reg creates unregistered collectors, which is what tests and
// one-shot commands use.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Preemption notifications received, by decode result.",
		}, []string{"result"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_outcomes_total",
			Help:      "Finished reconciliations, by outcome.",
		}, []string{"outcome"}),
		polls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instance_polls_total",
			Help:      "Instance status queries that returned a status, by status.",
		}, []string{"status"}),
		starts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "start_requests_total",
			Help:      "Instance start requests, by client-side result.",
		}, []string{"result"}),
		queryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_errors_total",
			Help:      "Instance status queries that failed, by kind.",
		}, []string{"kind"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Wall time from first status query to terminal outcome.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 30, 60, 120, 300, 600, 1800},
		}),
		inflight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inflight_reconciliations",
			Help:      "Reconciliations currently in progress.",
		}),
	}
}

// RecordEvent counts a received message by its decode result.
func (r *Recorder) RecordEvent(result string) {
	r.events.WithLabelValues(result).Inc()
}

// RecordPoll counts a successful status query.
func (r *Recorder) RecordPoll(status string) {
	r.polls.WithLabelValues(status).Inc()
}

// RecordQueryError counts a failed status query.
func (r *Recorder) RecordQueryError(kind string) {
	r.queryErrors.WithLabelValues(kind).Inc()
}

// RecordStart counts a start request. A nil err means the API accepted the
// request, which says nothing about whether the instance came up.
func (r *Recorder) RecordStart(err error) {
	if err != nil {
		r.starts.WithLabelValues("error").Inc()
		return
	}
	r.starts.WithLabelValues("issued").Inc()
}

// ReconcileStarted marks a reconciliation as in flight. The returned
// function records the outcome and duration and must be called exactly once.
func (r *Recorder) ReconcileStarted() func(outcome string) {
	started := time.Now()
	r.inflight.Inc()
	return func(outcome string) {
		r.inflight.Dec()
		r.outcomes.WithLabelValues(outcome).Inc()
		r.duration.Observe(time.Since(started).Seconds())
	}
}
