// Package metrics defines the Prometheus instruments for campuslink.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for campuslink.
// Pass to components that need to record metrics.
type Metrics struct {
	LoginsTotal     *prometheus.CounterVec
	HydrationsTotal *prometheus.CounterVec
	GuardDecisions  *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec
	JournalFailures prometheus.Counter
	SessionVersion  prometheus.Gauge
}

// New creates and registers all metrics with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		LoginsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "campuslink",
				Name:      "logins_total",
				Help:      "Total login attempts by outcome",
			},
			[]string{"result"}, // result=ok/invalid/unreachable/stale/error
		),
		HydrationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "campuslink",
				Name:      "hydrations_total",
				Help:      "Total session hydrations by outcome",
			},
			[]string{"result"}, // result=authenticated/anonymous
		),
		GuardDecisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "campuslink",
				Name:      "guard_decisions_total",
				Help:      "Total route guard decisions",
			},
			[]string{"route", "action"}, // action=render/redirect
		),
		GatewayDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "campuslink",
				Name:      "gateway_request_duration_seconds",
				Help:      "Auth gateway request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"}, // operation=login/register
		),
		JournalFailures: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "campuslink",
				Name:      "journal_failures_total",
				Help:      "Total activity journal writes that failed",
			},
		),
		SessionVersion: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "campuslink",
				Name:      "session_version",
				Help:      "Current session version counter",
			},
		),
	}
}
