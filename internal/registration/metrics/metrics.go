// Package metrics holds the Prometheus instruments for registration
// submissions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeRedirected = "redirected"
	OutcomeInvalid    = "invalid"
	OutcomeError      = "error"
)

type Metrics struct {
	Submissions        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	MinorSubmissions   prometheus.Counter
	TokenDegraded      *prometheus.CounterVec
	SubmitLatency      prometheus.Histogram
}

// New registers the metrics on reg. Passing nil uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_submissions_total",
			Help: "Form submissions by outcome and client device class",
		}, []string{"outcome", "device"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_validation_failures_total",
			Help: "Failing fields by field name and message key",
		}, []string{"field", "reason"}),
		MinorSubmissions: f.NewCounter(prometheus.CounterOpts{
			Name: "registration_minor_submissions_total",
			Help: "Redirected submissions where the registrant is a minor",
		}),
		TokenDegraded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_session_token_degraded_total",
			Help: "Session tokens generated from a fallback randomness tier",
		}, []string{"tier"}),
		SubmitLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "registration_submit_duration_seconds",
			Help:    "Time spent validating and building a redirect",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
	}
}

func (m *Metrics) IncrementSubmission(outcome, device string) {
	m.Submissions.WithLabelValues(outcome, device).Inc()
}

func (m *Metrics) IncrementValidationFailure(field, reason string) {
	m.ValidationFailures.WithLabelValues(field, reason).Inc()
}

func (m *Metrics) IncrementMinor() {
	m.MinorSubmissions.Inc()
}

func (m *Metrics) IncrementTokenDegraded(tier string) {
	m.TokenDegraded.WithLabelValues(tier).Inc()
}

func (m *Metrics) ObserveSubmitLatency(seconds float64) {
	m.SubmitLatency.Observe(seconds)
}
