package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for the control interface, hosted returns and outbound calls.
var (
	ControlCommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbgate_control_commands_total",
			Help: "Total number of nbmember control interface requests by command and response status",
		},
		[]string{"cmd", "status"},
	)

	PaymentReturnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbgate_payment_returns_total",
			Help: "Total number of hosted payment returns by verification outcome",
		},
		[]string{"outcome"},
	)

	OutboundRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbgate_netbilling_request_duration_seconds",
			Help:    "Duration of outbound NETbilling requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "outcome"},
	)

	SiteCacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbgate_site_cache_lookups_total",
			Help: "Total number of site config cache lookups by dimension and result",
		},
		[]string{"dimension", "result"},
	)

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nbgate_db_query_duration_seconds",
			Help:    "Duration of named site and member store queries",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"query", "operation", "outcome"},
	)

	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nbgate_events_published_total",
			Help: "Total number of hand-off events by type and outcome",
		},
		[]string{"type", "outcome"},
	)
)

// Register registers all metrics with reg. Already registered collectors are ignored.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		ControlCommandsTotal,
		PaymentReturnsTotal,
		OutboundRequestDuration,
		SiteCacheLookupsTotal,
		DBQueryDuration,
		EventsPublishedTotal,
	} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveControlCommand counts one control interface response.
func ObserveControlCommand(cmd string, status int) {
	ControlCommandsTotal.WithLabelValues(cmd, strconv.Itoa(status)).Inc()
}

// ObservePaymentReturn counts one hosted payment return.
func ObservePaymentReturn(outcome string) {
	PaymentReturnsTotal.WithLabelValues(outcome).Inc()
}

// ObserveOutbound records the latency of one NETbilling call.
func ObserveOutbound(endpoint, outcome string, d time.Duration) {
	OutboundRequestDuration.WithLabelValues(endpoint, outcome).Observe(d.Seconds())
}

// ObserveSiteCache counts one cache lookup.
func ObserveSiteCache(dimension string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	SiteCacheLookupsTotal.WithLabelValues(dimension, result).Inc()
}

// ObserveEvent counts one published hand-off event.
func ObserveEvent(eventType string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	EventsPublishedTotal.WithLabelValues(eventType, outcome).Inc()
}

// ObserveDBQuery records the latency of one named store query.
func ObserveDBQuery(query, operation string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	DBQueryDuration.WithLabelValues(query, operation, outcome).Observe(d.Seconds())
}
