// file: internal/metrics/metrics.go
// version: 1.1.0
// guid: 4a5b6c7d-8e9f-0a1b-2c3d-4e5f6a7b8c94

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	matchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "honne",
		Name:      "match_requests_total",
		Help:      "Total number of matching runs requested",
	})
	matchCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "honne",
		Name:      "match_cache_hits_total",
		Help:      "Matching runs served from the result cache",
	})
	matchesFound = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "honne",
		Name:      "matches_found_total",
		Help:      "Total matches produced by match type",
	}, []string{"type"})
	matchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "honne",
		Name:      "match_duration_seconds",
		Help:      "Histogram of matching run durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms up to ~4s
	})

	matchCacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "honne",
		Name:      "match_cache_entries",
		Help:      "Current number of entries in the match result cache",
	})
	similarityCacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "honne",
		Name:      "similarity_cache_entries",
		Help:      "Current number of entries in the similarity score cache",
	})

	analyzeRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "honne",
		Name:      "analyze_requests_total",
		Help:      "Total posting analyses requested (LLM findings + matching)",
	})
	analyzeFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "honne",
		Name:      "analyze_failed_total",
		Help:      "Posting analyses that failed before matching",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(matchRequests, matchCacheHits, matchesFound, matchDuration,
			matchCacheSize, similarityCacheSize, analyzeRequests, analyzeFailed)
	})
}

// Matching lifecycle helpers
func IncMatchRequests()                { matchRequests.Inc() }
func IncMatchCacheHits()               { matchCacheHits.Inc() }
func IncMatchesFound(matchType string) { matchesFound.WithLabelValues(matchType).Inc() }
func ObserveMatchDuration(d time.Duration) {
	matchDuration.Observe(d.Seconds())
}

// Gauges
func SetMatchCacheSize(n int)      { matchCacheSize.Set(float64(n)) }
func SetSimilarityCacheSize(n int) { similarityCacheSize.Set(float64(n)) }

// Analysis helpers
func IncAnalyzeRequests() { analyzeRequests.Inc() }
func IncAnalyzeFailed()   { analyzeFailed.Inc() }
