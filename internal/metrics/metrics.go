package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	AuthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuthFailuresTotal,
			Help: HelpTextAuthFailuresTotal,
		},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitedTotal,
			Help: HelpTextRateLimitedTotal,
		},
	)
)

// Evaluation Metrics
var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEvaluationsTotal,
			Help: HelpTextEvaluationsTotal,
		},
		[]string{LabelResult},
	)

	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameEvaluationDuration,
			Help:    HelpTextEvaluationDuration,
			Buckets: EvaluationBuckets,
		},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheLookupsTotal,
			Help: HelpTextCacheLookupsTotal,
		},
		[]string{LabelOutcome},
	)

	CycleTruncationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCycleTruncationsTotal,
			Help: HelpTextCycleTruncationsTotal,
		},
	)

	ApproximatedResults = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameApproximatedResults,
			Help: HelpTextApproximatedResults,
		},
	)
)

// Dataset Metrics
var (
	CatalogBlueprints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogBlueprints,
			Help: HelpTextCatalogBlueprints,
		},
	)

	ProducerConflicts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameProducerConflicts,
			Help: HelpTextProducerConflicts,
		},
	)

	PriceEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePriceEntries,
			Help: HelpTextPriceEntries,
		},
	)

	DatasetReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDatasetReloads,
			Help: HelpTextDatasetReloads,
		},
		[]string{LabelResult},
	)
)
