// Package metrics holds the Prometheus collectors exported on /metrics.
// All recording methods are safe on a nil *Metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "toxscan"

var latencyBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

type Metrics struct {
	scores          *prometheus.CounterVec
	scoreDuration   prometheus.Histogram
	resolutions     *prometheus.CounterVec
	unmappedDropped prometheus.Counter
	lookups         *prometheus.CounterVec
	externalLatency *prometheus.HistogramVec
	vocabLoads      *prometheus.CounterVec
	vocabMarkers    prometheus.Gauge
	labReports      *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which tests use to avoid global state.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazard_scores_total",
			Help:      "Hazard scores computed, by level.",
		}, []string{"level"}),
		scoreDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hazard_score_duration_seconds",
			Help:      "Time spent parsing, normalizing and aggregating one ingredient list.",
			Buckets:   latencyBuckets,
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "name_resolutions_total",
			Help:      "Names resolved by the normalizer, by matching step.",
		}, []string{"method"}),
		unmappedDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unmapped_dropped_total",
			Help:      "Unmapped names not recorded because the curation buffer was full.",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_lookups_total",
			Help:      "Barcode lookups, by the tier that answered.",
		}, []string{"tier"}),
		externalLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_request_duration_seconds",
			Help:      "Latency of product database requests.",
			Buckets:   latencyBuckets,
		}, []string{"source", "outcome"}),
		vocabLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vocabulary_loads_total",
			Help:      "Vocabulary load attempts, by result.",
		}, []string{"result"}),
		vocabMarkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vocabulary_markers",
			Help:      "Markers in the currently loaded vocabulary.",
		}),
		labReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lab_reports_total",
			Help:      "Lab reports normalized, by panel.",
		}, []string{"panel"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route pattern and status code.",
		}, []string{"method", "route", "status"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.scores, m.scoreDuration, m.resolutions, m.unmappedDropped, m.lookups,
			m.externalLatency, m.vocabLoads, m.vocabMarkers, m.labReports, m.httpRequests,
		)
	}
	return m
}

func (m *Metrics) ObserveScore(level string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.scores.WithLabelValues(level).Inc()
	m.scoreDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) IncResolution(method string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(method).Inc()
}

func (m *Metrics) IncUnmappedDropped() {
	if m == nil {
		return
	}
	m.unmappedDropped.Inc()
}

func (m *Metrics) IncLookup(tier string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(tier).Inc()
}

func (m *Metrics) ObserveExternal(source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.externalLatency.WithLabelValues(source, outcome).Observe(elapsed.Seconds())
}

// ObserveVocabularyLoad records a load attempt. markers is ignored on failure.
func (m *Metrics) ObserveVocabularyLoad(markers int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.vocabLoads.WithLabelValues("error").Inc()
		return
	}
	m.vocabLoads.WithLabelValues("ok").Inc()
	m.vocabMarkers.Set(float64(markers))
}

func (m *Metrics) IncLabReport(panel string) {
	if m == nil {
		return
	}
	m.labReports.WithLabelValues(panel).Inc()
}

func (m *Metrics) IncHTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
