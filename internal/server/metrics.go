package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_playlist_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mood_playlist_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Prediction metrics
	predictRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_playlist_predict_requests_total",
			Help: "Total number of prediction requests",
		},
		[]string{"language", "source"}, // source: transformer, lexicon, overrides, fallback
	)

	predictDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mood_playlist_predict_duration_seconds",
			Help:    "Prediction duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"language"},
	)

	predictTextLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mood_playlist_predict_text_length",
			Help:    "Length of analyzed text in bytes",
			Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	recommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mood_playlist_recommendations_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 10, 20},
		},
	)
)
