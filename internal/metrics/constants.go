package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameAuthFailuresTotal    = "http_auth_failures_total"
	MetricNameRateLimitedTotal     = "http_rate_limited_total"
)

// Evaluation metric names
const (
	MetricNameEvaluationsTotal      = "evaluations_total"
	MetricNameEvaluationDuration    = "evaluation_duration_seconds"
	MetricNameCacheLookupsTotal     = "cache_lookups_total"
	MetricNameCycleTruncationsTotal = "cycle_truncations_total"
	MetricNameApproximatedResults   = "approximated_results"
)

// Dataset metric names
const (
	MetricNameCatalogBlueprints = "catalog_blueprints"
	MetricNameProducerConflicts = "producer_conflicts"
	MetricNamePriceEntries      = "price_entries"
	MetricNameDatasetReloads    = "dataset_reloads_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextAuthFailuresTotal    = "Requests rejected for a missing or wrong API key"
	HelpTextRateLimitedTotal     = "Requests rejected by the per-client request window"
)

// Evaluation metric help text
const (
	HelpTextEvaluationsTotal      = "Total number of cost evaluations served, by whether they were computed or cached"
	HelpTextEvaluationDuration    = "Time spent computing a full catalog evaluation in seconds"
	HelpTextCacheLookupsTotal     = "Total number of result cache lookups by outcome"
	HelpTextCycleTruncationsTotal = "Total number of blueprints whose evaluation was cut by a dependency cycle"
	HelpTextApproximatedResults   = "Number of results carrying an approximation flag in the last computed evaluation"
)

// Dataset metric help text
const (
	HelpTextCatalogBlueprints = "Number of blueprints in the loaded catalog"
	HelpTextProducerConflicts = "Number of product types with more than one producing blueprint"
	HelpTextPriceEntries      = "Number of priced types in the loaded price table"
	HelpTextDatasetReloads    = "Total number of dataset reloads by result"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelResult  = "result"
	LabelOutcome = "outcome"
)

// Label values
const (
	ResultComputed = "computed"
	ResultCached   = "cached"
	ResultSuccess  = "success"
	ResultFailure  = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// EvaluationBuckets covers small test catalogs up to full SDE runs
var EvaluationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5}
