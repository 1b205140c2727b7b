package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		shortenRequestsTotal,
		shortenLatencyMs,
	)
}

var (
	shortenRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shorten_requests_total",
			Help: "Shortening attempts by outcome (ok/no_token/failed).",
		},
		[]string{"outcome"},
	)

	shortenLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shortener_api_latency_ms",
			Help:    "Shortening API call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"provider", "success"},
	)
)

func IncShorten(outcome string) {
	shortenRequestsTotal.WithLabelValues(norm(outcome)).Inc()
}

func ObserveShortenerCall(provider string, latencyMs int64, success bool) {
	shortenLatencyMs.WithLabelValues(norm(provider), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}
