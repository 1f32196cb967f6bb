package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the autocomplete machinery. Lookup failures are invisible to
// end users, so these are the only way to notice a broken search backend.
var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffdeck_search_requests_total",
			Help: "Autocomplete requests issued after debounce settled",
		},
		[]string{"field"},
	)

	failuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffdeck_search_failures_total",
			Help: "Autocomplete lookups that failed and were swallowed",
		},
		[]string{"field"},
	)

	staleDiscardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staffdeck_search_stale_responses_total",
			Help: "Responses discarded because a newer request superseded them",
		},
		[]string{"field"},
	)
)
