package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filedrive",
			Name:      "general_counters",
		},
		[]string{"result"})
}

func NewRequestDuration() *prometheus.HistogramVec {
	return promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "filedrive",
			Name:      "http_request_duration_seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"})
}
