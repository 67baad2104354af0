// Package metrics provides Prometheus instrumentation for the roommate
// marketplace. It exposes counters for HTTP traffic and domain events plus
// histograms for request and match query latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route, and status class.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roomie_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records HTTP request latency in seconds by route.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roomie_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"route"})

	// MatchQueryDuration records end-to-end match query latency in seconds.
	MatchQueryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roomie_match_query_duration_seconds",
		Help:    "Match query latency in seconds",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	// MatchResultsReturned records how many candidates each match page returned.
	MatchResultsReturned = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roomie_match_results_returned",
		Help:    "Number of candidates returned per match query page",
		Buckets: []float64{0, 1, 5, 10, 20, 35, 50},
	})

	// DomainEventsTotal counts domain events published, labeled by type.
	DomainEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roomie_domain_events_total",
		Help: "Total number of domain events published",
	}, []string{"type"})

	// ProfileViewsFlushed counts buffered profile views drained to the database.
	ProfileViewsFlushed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roomie_profile_views_flushed_total",
		Help: "Total number of buffered profile views written to the database",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		MatchQueryDuration,
		MatchResultsReturned,
		DomainEventsTotal,
		ProfileViewsFlushed,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
