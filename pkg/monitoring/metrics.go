// Package monitoring provides metrics collection and monitoring functionality for the email validator service.
// It includes Prometheus metrics for validation scores, cache hits and misses, DNS lookup and probe durations,
// batch sizes and timings, circuit breaker state, and rate-limit rejections.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ValidationScores tracks the distribution of validation scores
	ValidationScores = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_validator_scores",
			Help:    "Distribution of email validation scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"validation_type"},
	)

	// CacheOperations tracks cache hits and misses
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_validator_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// DNSLookupDuration tracks DNS lookup times
	DNSLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_validator_dns_lookup_duration_seconds",
			Help:    "DNS lookup duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"lookup_type"},
	)

	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "The total number of cache hits",
		},
		[]string{"cache_type"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "The total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// BatchSize tracks the distribution of batch sizes
	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "email_validator_batch_size",
			Help:    "Distribution of batch validation request sizes",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// BatchProcessingTime tracks the time taken to process entire batches
	BatchProcessingTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "email_validator_batch_processing_seconds",
			Help:    "Time taken to process entire batch requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	// ConcurrentBatchRequests tracks the number of batch requests being processed concurrently
	ConcurrentBatchRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "email_validator_concurrent_batch_requests",
			Help: "Number of batch requests being processed concurrently",
		},
	)

	// CircuitBreakerState tracks the current state of a named circuit breaker
	// (0=closed, 1=half_open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "email_validator_circuit_breaker_state",
			Help: "Current circuit breaker state: 0=closed, 1=half_open, 2=open",
		},
		[]string{"breaker"},
	)

	// CircuitBreakerTrips counts transitions into the open state.
	CircuitBreakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_validator_circuit_breaker_trips_total",
			Help: "Total number of times a circuit breaker tripped open",
		},
		[]string{"breaker"},
	)

	// RateLimitRejections counts requests rejected by a rate limiter.
	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_validator_rate_limit_rejections_total",
			Help: "Total number of requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	// ProbeDuration tracks the duration of a network-backed probe.
	ProbeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_validator_probe_duration_seconds",
			Help:    "Duration of a network-backed probe (smtp, auth, reputation, gravatar)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"probe"},
	)
)

// RecordValidationScore records a validation score
func RecordValidationScore(validationType string, score float64) {
	ValidationScores.WithLabelValues(validationType).Observe(score)
}

// RecordCacheOperation records a cache hit or miss
func RecordCacheOperation(operation, result string) {
	CacheOperations.WithLabelValues(operation, result).Inc()
}

// RecordDNSLookup records DNS lookup duration
func RecordDNSLookup(lookupType string, duration time.Duration) {
	DNSLookupDuration.WithLabelValues(lookupType).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit for the specified cache type
func RecordCacheHit(cacheType string) {
	cacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the specified cache type
func RecordCacheMiss(cacheType string) {
	cacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordBatchMetrics records metrics for batch operations
func RecordBatchMetrics(batchSize int, duration time.Duration) {
	BatchSize.Observe(float64(batchSize))
	BatchProcessingTime.Observe(duration.Seconds())
}

// IncrementConcurrentBatches increments the concurrent batch counter
func IncrementConcurrentBatches() {
	ConcurrentBatchRequests.Inc()
}

// DecrementConcurrentBatches decrements the concurrent batch counter
func DecrementConcurrentBatches() {
	ConcurrentBatchRequests.Dec()
}

// RecordCircuitBreakerState sets the current state gauge for a named breaker.
func RecordCircuitBreakerState(breaker string, state int) {
	CircuitBreakerState.WithLabelValues(breaker).Set(float64(state))
}

// RecordCircuitBreakerTrip increments a named breaker's trip counter.
func RecordCircuitBreakerTrip(breaker string) {
	CircuitBreakerTrips.WithLabelValues(breaker).Inc()
}

// RecordRateLimitRejection increments a named limiter's rejection counter.
func RecordRateLimitRejection(limiter string) {
	RateLimitRejections.WithLabelValues(limiter).Inc()
}

// RecordProbeDuration records a network-backed probe's duration.
func RecordProbeDuration(probe string, duration time.Duration) {
	ProbeDuration.WithLabelValues(probe).Observe(duration.Seconds())
}
