package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	EventsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safety_events_ingested_total",
			Help: "Total number of safety events ingested by kind",
		},
		[]string{"kind"},
	)
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_notifications_total",
			Help: "Total number of alert notification attempts by channel kind and result",
		},
		[]string{"channel_kind", "result"},
	)
	DispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "alert_dispatch_duration_seconds",
			Help:    "Duration of alert notification fan-out in seconds",
			Buckets: prometheus.LinearBuckets(0, 1, 10), // 0 to 10 seconds
		},
	)
	AlertResponseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "alert_response_time_seconds",
			Help:    "Time from alert creation to resolution in seconds",
			Buckets: prometheus.ExponentialBuckets(60, 2, 10), // 1 minute to ~8.5 hours
		},
	)
)

func InitMetrics() {
	for name, c := range map[string]prometheus.Collector{
		"EventsIngested":    EventsIngested,
		"NotificationsSent": NotificationsSent,
		"DispatchDuration":  DispatchDuration,
		"AlertResponseTime": AlertResponseTime,
	} {
		if err := prometheus.Register(c); err != nil {
			log.Error().Err(err).Msgf("Failed to register %s metric", name)
		}
	}
}
