package Metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EngineRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "makemyway_engine_requests_total",
		Help: "Total routing engine calls by operation",
	}, []string{"op"})
	EngineFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "makemyway_engine_failures_total",
		Help: "Total routing engine failures by operation",
	}, []string{"op"})
	EngineDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "makemyway_engine_duration_ms",
		Help:    "Routing engine call duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "makemyway_cache_hits_total",
		Help: "Total routing cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "makemyway_cache_misses_total",
		Help: "Total routing cache misses",
	})
	SearchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "makemyway_searches_total",
		Help: "Total route searches by outcome",
	}, []string{"outcome"})
	SearchAttempts = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "makemyway_search_attempts",
		Help:    "Attempts used per route search",
		Buckets: []float64{1, 2, 3, 4, 5},
	})
	GeocodeRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "makemyway_geocode_requests_total",
		Help: "Total geocoding search requests",
	})
)

func init() {
	prometheus.MustRegister(
		EngineRequestsTotal,
		EngineFailuresTotal,
		EngineDurationMs,
		CacheHitsTotal,
		CacheMissesTotal,
		SearchesTotal,
		SearchAttempts,
		GeocodeRequestsTotal,
	)
}

// Handler returns the HTTP handler serving the Prometheus exposition page.
func Handler() http.Handler {
	return promhttp.Handler()
}
