package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainercal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trainercal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CalendarLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainercal_calendar_loads_total",
			Help: "Total number of calendar loads by outcome",
		},
		[]string{"outcome"},
	)

	StaleLoadsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trainercal_stale_loads_dropped_total",
			Help: "Calendar loads discarded because a newer load was started",
		},
	)

	FetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainercal_fetch_failures_total",
			Help: "Failed calendar resource fetches",
		},
		[]string{"resource"},
	)

	CalendarMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainercal_calendar_mutations_total",
			Help: "Calendar mutations by kind",
		},
		[]string{"kind"},
	)

	EventsRelayedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainercal_events_relayed_total",
			Help: "Events received from other instances",
		},
		[]string{"topic"},
	)

	ChangeStreamsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trainercal_change_streams_active",
			Help: "Open calendar change streams",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCalendarLoad(outcome string) {
	CalendarLoadsTotal.WithLabelValues(outcome).Inc()
}

func RecordStaleLoadDropped() {
	StaleLoadsDroppedTotal.Inc()
}

func RecordFetchFailure(resource string) {
	FetchFailuresTotal.WithLabelValues(resource).Inc()
}

func RecordMutation(kind string) {
	CalendarMutationsTotal.WithLabelValues(kind).Inc()
}

func RecordEventRelayed(topic string) {
	EventsRelayedTotal.WithLabelValues(topic).Inc()
}

func ChangeStreamOpened() {
	ChangeStreamsActive.Inc()
}

func ChangeStreamClosed() {
	ChangeStreamsActive.Dec()
}
