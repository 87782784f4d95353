package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusEmpty   = "empty"
	statusError   = "error"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_playground_generations_total",
			Help: "Total number of image generation requests processed.",
		},
		[]string{"status"}, // "success", "empty", "error"
	)
	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ai_playground_generation_duration_seconds",
		Help:    "Duration of a single image generation call to Replicate.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s ... 64s
	})
	replicateAPIErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ai_playground_replicate_api_errors_total",
		Help: "Total number of errors calling the Replicate API.",
	})
)
