// Package telemetry exposes pipeline metrics to Prometheus.
package telemetry

import (
	"net/http"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names
const (
	MetricPipelineRunsTotal       = "ledger_pipeline_runs_total"
	MetricPipelineDurationSeconds = "ledger_pipeline_duration_seconds"
	MetricCacheRequestsTotal      = "ledger_document_cache_requests_total"
	MetricAnomaliesFlagged        = "ledger_payables_anomalies_flagged"
	MetricGrandTotal              = "ledger_outstanding_grand_total"
	MetricCategoryTotal           = "ledger_outstanding_category_total"
	MetricHTTPRequestsTotal       = "ledger_http_requests_total"
	MetricHTTPDurationSeconds     = "ledger_http_request_duration_seconds"
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	CacheHit       = "hit"
	CacheMiss      = "miss"
)

// Metrics records pipeline activity on a private registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	pipelineRuns     *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	cacheRequests    *prometheus.CounterVec
	anomalies        prometheus.Gauge
	grandTotal       prometheus.Gauge
	categoryTotal    *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates Metrics registered on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		pipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPipelineRunsTotal,
			Help: "Pipeline runs by produced document and outcome",
		}, []string{"document", "outcome"}),
		pipelineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricPipelineDurationSeconds,
			Help:    "Duration of generation, analysis, consolidation and compilation by document",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"document"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricCacheRequestsTotal,
			Help: "Document cache lookups by document and result",
		}, []string{"document", "result"}),
		anomalies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricAnomaliesFlagged,
			Help: "Payables flagged by the anomaly detector in the latest snapshot",
		}),
		grandTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricGrandTotal,
			Help: "Grand total of outstanding current liabilities in the latest snapshot",
		}),
		categoryTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: MetricCategoryTotal,
			Help: "Outstanding total per category in the latest snapshot",
		}, []string{"category"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "HTTP requests by method, route pattern and status class",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPDurationSeconds,
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pipelineRuns,
		m.pipelineDuration,
		m.cacheRequests,
		m.anomalies,
		m.grandTotal,
		m.categoryTotal,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// ObservePipeline records one run that produced document
func (m *Metrics) ObservePipeline(document string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.pipelineRuns.WithLabelValues(document, outcome).Inc()
	m.pipelineDuration.WithLabelValues(document).Observe(d.Seconds())
}

// ObserveCache records a document cache lookup
func (m *Metrics) ObserveCache(document string, hit bool) {
	if m == nil {
		return
	}
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	m.cacheRequests.WithLabelValues(document, result).Inc()
}

// SetSnapshot publishes the figures of the latest consolidated snapshot
func (m *Metrics) SetSnapshot(summary report.Summary, anomalies int) {
	if m == nil {
		return
	}
	m.anomalies.Set(float64(anomalies))
	m.grandTotal.Set(summary.GrandTotal.InexactFloat64())
	for _, row := range summary.Rows {
		m.categoryTotal.WithLabelValues(string(row.Category)).Set(row.Total.InexactFloat64())
	}
}

// ObserveHTTP records one served request. status is the status class
// ("2xx", "4xx", ...) to keep cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Registry returns the registry holding every metric
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
