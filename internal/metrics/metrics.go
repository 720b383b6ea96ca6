// Package metrics declares the Prometheus collectors of the feed pipeline.
// Collectors register with the default registry on import.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feedsense"

var (
	// Summarizer
	SummaryFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_fallbacks_total",
			Help:      "Summaries that degraded to the default summary",
		},
		[]string{"reason"}, // "store_error", "panic"
	)

	EventsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_ingested_total",
			Help:      "Behavior events accepted at the ingestion boundary",
		},
	)

	// Normalizer
	NormalizeFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalize_fallbacks_total",
			Help:      "Raw posts that were replaced by a fallback record",
		},
		[]string{"platform", "reason"}, // "map_error", "invalid", "panic", "unsupported"
	)

	// Cache
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by keyspace and result",
		},
		[]string{"keyspace", "result"}, // keyspace: "summary", "ranked_feed"; result: "hit", "miss", "error"
	)

	// Ranking
	RankingFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_fallbacks_total",
			Help:      "Ranking runs that fell back to the heuristic order",
		},
		[]string{"reason"}, // "panic", "stage_error", "oracle_error", "oracle_invalid", "oracle_disabled"
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Duration of a full ranking run",
			Buckets:   prometheus.DefBuckets,
		},
	)

	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_requests_total",
			Help:      "Ranking oracle calls by backend and outcome",
		},
		[]string{"backend", "outcome"}, // outcome: "success", "error", "invalid", "breaker_open"
	)

	OracleBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "oracle_breaker_state",
			Help:      "Ranking oracle circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"backend"},
	)

	// Platforms
	PlatformFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "platform_fetch_total",
			Help:      "Platform feed fetches by platform and outcome",
		},
		[]string{"platform", "outcome"}, // outcome: "success", "error"
	)

	// Persistence
	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Swallowed store write failures by operation",
		},
		[]string{"operation"}, // "insert_events", "update_profile", "upsert_posts"
	)

	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status class",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)

// CacheResult records a cache lookup outcome.
func CacheResult(keyspace string, hit bool, err error) {
	switch {
	case err != nil:
		CacheRequests.WithLabelValues(keyspace, "error").Inc()
	case hit:
		CacheRequests.WithLabelValues(keyspace, "hit").Inc()
	default:
		CacheRequests.WithLabelValues(keyspace, "miss").Inc()
	}
}

// ObserveRanking records the duration of a ranking run started at start.
func ObserveRanking(start time.Time) {
	RankingDuration.Observe(time.Since(start).Seconds())
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
