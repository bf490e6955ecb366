package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikey/mail-triage/internal/core"
)

const namespace = "mail_triage"

// Recorder collects triage metrics on its own registry
type Recorder struct {
	registry        *prometheus.Registry
	messages        *prometheus.CounterVec
	urgent          prometheus.Counter
	sentiment       *prometheus.CounterVec
	polishFailures  prometheus.Counter
	urgencyObserved prometheus.Histogram
}

// NewRecorder creates a recorder and registers its collectors
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Messages triaged, by source.",
		}, []string{"source"}),
		urgent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "urgent_total",
			Help:      "Messages classified as urgent.",
		}),
		sentiment: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentiment_total",
			Help:      "Messages triaged, by sentiment label.",
		}, []string{"label"}),
		polishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polish_failures_total",
			Help:      "Draft polishing attempts that fell back to the template.",
		}),
		urgencyObserved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "urgency",
			Help:      "Distribution of urgency scores.",
			Buckets:   []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),
	}

	r.registry.MustRegister(
		r.messages,
		r.urgent,
		r.sentiment,
		r.polishFailures,
		r.urgencyObserved,
	)
	return r
}

// ObserveTriage records one triaged message
func (r *Recorder) ObserveTriage(t *core.Triage) {
	source := t.Message.Source
	if source == "" {
		source = "unknown"
	}
	r.messages.WithLabelValues(source).Inc()
	r.sentiment.WithLabelValues(string(t.Analysis.SentimentLabel)).Inc()
	r.urgencyObserved.Observe(t.Analysis.Urgency)
	if core.IsUrgent(t.Analysis.Urgency) {
		r.urgent.Inc()
	}
}

// ObservePolishFailure records a polisher error
func (r *Recorder) ObservePolishFailure() {
	r.polishFailures.Inc()
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
