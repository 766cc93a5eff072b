// Package metrics exposes Prometheus instrumentation for the assessment
// pipeline and its HTTP surface.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the offer analyzer. All recorder
// methods tolerate a nil receiver so instrumentation can be optional.
type Metrics struct {
	// HTTP request latency by route and method
	RequestDuration *prometheus.HistogramVec

	// HTTP request outcomes by route, method, and status code
	RequestCount *prometheus.CounterVec

	// Assessment verdicts produced
	AssessmentVerdicts *prometheus.CounterVec

	// Market resolutions by snapshot source (exact, relaxed, broad, default)
	MarketResolutions *prometheus.CounterVec

	// Assessment cache lookups by result
	CacheRequests *prometheus.CounterVec

	// Contribution intake outcomes (accepted, duplicate, invalid, failed)
	ContributionOutcomes *prometheus.CounterVec
}

// New creates and registers all metrics in the default registry.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "offer_analyzer_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and method",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route", "method"}),

		RequestCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "offer_analyzer_http_requests_total",
			Help: "Total HTTP requests by route, method, and status code",
		}, []string{"route", "method", "status"}),

		AssessmentVerdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "offer_analyzer_assessments_total",
			Help: "Total assessments completed by verdict",
		}, []string{"verdict"}),

		MarketResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "offer_analyzer_market_resolutions_total",
			Help: "Total market snapshot resolutions by source",
		}, []string{"source"}),

		CacheRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "offer_analyzer_cache_requests_total",
			Help: "Total assessment cache lookups by result",
		}, []string{"result"}),

		ContributionOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "offer_analyzer_contributions_total",
			Help: "Total contribution submissions by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
		m.RequestCount.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	}
}

// IncrementVerdict records an assessment outcome.
func (m *Metrics) IncrementVerdict(verdict string) {
	if m != nil {
		m.AssessmentVerdicts.WithLabelValues(verdict).Inc()
	}
}

// IncrementMarketResolution records which source served a market snapshot.
func (m *Metrics) IncrementMarketResolution(source string) {
	if m != nil {
		m.MarketResolutions.WithLabelValues(source).Inc()
	}
}

// IncrementCacheResult records an assessment cache hit or miss.
func (m *Metrics) IncrementCacheResult(hit bool) {
	if m != nil {
		result := "miss"
		if hit {
			result = "hit"
		}
		m.CacheRequests.WithLabelValues(result).Inc()
	}
}

// IncrementContribution records a contribution intake outcome.
func (m *Metrics) IncrementContribution(outcome string) {
	if m != nil {
		m.ContributionOutcomes.WithLabelValues(outcome).Inc()
	}
}
