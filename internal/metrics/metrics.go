// Package metrics registers the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FastsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fasting_fasts_started_total",
		Help: "Fasts started from idle.",
	})

	FastsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fasting_fasts_finished_total",
		Help: "Fasts finished and logged, by whether the target was reached.",
	}, []string{"completed"})

	RecordWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fasting_record_writes_total",
		Help: "Fasting record mutations by operation.",
	}, []string{"op"})

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fasting_reminders_sent_total",
		Help: "Target-reached reminders delivered.",
	})

	LiveStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fasting_live_streams",
		Help: "Open live timer streams.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fasting_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
