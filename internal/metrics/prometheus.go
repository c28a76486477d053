package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder with Prometheus counters.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	usersRegistered prometheus.Counter
	signins         *prometheus.CounterVec
	stepsAdded      prometheus.Counter
	stepsDeleted    prometheus.Counter
	completions     prometheus.Counter
	remindersAdded  prometheus.Counter
	selfiesUploaded prometheus.Counter
	selfiesRejected prometheus.Counter
}

// NewPrometheus returns a Recorder backed by its own registry.
func NewPrometheus() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusRecorder{
		registry: registry,
		usersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "glowtrack_users_registered_total",
			Help: "Accounts created.",
		}),
		signins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "glowtrack_signins_total",
			Help: "Sign-in attempts by outcome.",
		}, []string{"status"}),
		stepsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "glowtrack_routine_steps_added_total",
			Help: "Routine steps added.",
		}),
		stepsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "glowtrack_routine_steps_deleted_total",
			Help: "Routine step delete requests.",
		}),
		completions: factory.NewCounter(prometheus.CounterOpts{
			Name: "glowtrack_completions_marked_total",
			Help: "Mark-done requests (including idempotent repeats).",
		}),
		remindersAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "glowtrack_reminders_added_total",
			Help: "Reminders added.",
		}),
		selfiesUploaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "glowtrack_selfies_uploaded_total",
			Help: "Selfies accepted and stored.",
		}),
		selfiesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "glowtrack_selfies_rejected_total",
			Help: "Selfie uploads rejected by validation.",
		}),
	}
}

// Handler returns the /metrics exposition handler.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// IncUserRegistered increments the registration counter.
func (p *PrometheusRecorder) IncUserRegistered() { p.usersRegistered.Inc() }

// IncSignIn increments the sign-in counter for the given outcome.
func (p *PrometheusRecorder) IncSignIn(status string) {
	p.signins.WithLabelValues(status).Inc()
}

// IncStepAdded increments the step-added counter.
func (p *PrometheusRecorder) IncStepAdded() { p.stepsAdded.Inc() }

// IncStepDeleted increments the step-deleted counter.
func (p *PrometheusRecorder) IncStepDeleted() { p.stepsDeleted.Inc() }

// IncCompletionMarked increments the completion counter.
func (p *PrometheusRecorder) IncCompletionMarked() { p.completions.Inc() }

// IncReminderAdded increments the reminder counter.
func (p *PrometheusRecorder) IncReminderAdded() { p.remindersAdded.Inc() }

// IncSelfieUploaded increments the upload counter.
func (p *PrometheusRecorder) IncSelfieUploaded() { p.selfiesUploaded.Inc() }

// IncSelfieRejected increments the rejected-upload counter.
func (p *PrometheusRecorder) IncSelfieRejected() { p.selfiesRejected.Inc() }
