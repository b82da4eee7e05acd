package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_gateway_retries_total",
			Help: "Total number of notification publish retry attempts",
		},
		[]string{"event", "reason"},
	)

	GatewayPublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notification_gateway_publish_duration_seconds",
			Help:    "Duration of notification publishing including retries",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"event", "result"},
	)
)
