package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rasp_schedule_requests_total",
		Help: "Schedule requests by window kind.",
	}, []string{"window"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rasp_schedule_errors_total",
		Help: "Failed schedule requests by error kind.",
	}, []string{"kind"})

	fetchSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rasp_feed_fetch_seconds",
		Help:    "Duration of Unitech feed downloads.",
		Buckets: prometheus.DefBuckets,
	})
)
