// Package metrics provides Prometheus metrics for the inventory tracker.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Tracker Run Metrics
	TrackerRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_runs_total",
			Help: "Total number of tracker runs by outcome",
		},
		[]string{"outcome"}, // "success", "degraded", "inventory_failed"
	)

	TrackerRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_run_duration_seconds",
			Help:    "Time taken for one full tracker run",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	TrackerItemsReported = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_items_reported",
			Help: "Unique items in the most recent report",
		},
	)

	// Price Store Metrics
	ObservationsSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_observations_saved_total",
			Help: "Total number of price observations written to the store",
		},
	)

	// Steam Inventory API Metrics
	SteamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_steam_requests_total",
			Help: "Steam inventory fetches by result",
		},
		[]string{"result"}, // "success", "failed"
	)

	SteamFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_steam_fetch_duration_seconds",
			Help:    "Steam inventory fetch latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// Skinport Catalog API Metrics
	SkinportRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_skinport_requests_total",
			Help: "Skinport catalog fetches by result",
		},
		[]string{"result"}, // "success", "failed"
	)

	SkinportFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_skinport_fetch_duration_seconds",
			Help:    "Skinport catalog fetch latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	SkinportCatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_skinport_catalog_cache_hits_total",
			Help: "Catalog lookups served from the in-memory cache",
		},
	)

	SkinportCatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_skinport_catalog_cache_misses_total",
			Help: "Catalog lookups that required a live fetch",
		},
	)

	// Trend Analysis Metrics
	TrendClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_trend_classifications_total",
			Help: "Trend classifications by outcome",
		},
		[]string{"trend"}, // "High", "Low", "Stable", "InsufficientData"
	)
)
