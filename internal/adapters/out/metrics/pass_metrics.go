// Package metrics exposes Prometheus collectors for delivery passes and the
// HTTP API. Collectors are registered on an explicit registerer so that
// tests can use a private registry.
package metrics

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fulfillment"

// PassMetrics records the outcome of every delivery transition pass.
type PassMetrics struct {
	passes     *prometheus.CounterVec
	orders     *prometheus.CounterVec
	duration   prometheus.Histogram
	candidates prometheus.Gauge
}

func NewPassMetrics(reg prometheus.Registerer) *PassMetrics {
	factory := promauto.With(reg)

	return &PassMetrics{
		passes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "delivery_passes_total",
				Help:      "Delivery transition passes by result.",
			},
			[]string{"result"},
		),
		orders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "delivery_pass_orders_total",
				Help:      "Orders handled by delivery transition passes, by outcome.",
			},
			[]string{"outcome"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "delivery_pass_duration_seconds",
				Help:      "Wall-clock duration of delivery transition passes.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		candidates: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "delivery_pass_last_candidates",
				Help:      "Candidates selected by the most recent completed pass.",
			},
		),
	}
}

// ObservePass records a finished pass. A non-nil err means the pass was
// aborted before touching any order.
func (m *PassMetrics) ObservePass(report commands.DeliveryPassReport, elapsed time.Duration, err error) {
	m.duration.Observe(elapsed.Seconds())

	if err != nil {
		m.passes.WithLabelValues("aborted").Inc()
		return
	}

	m.passes.WithLabelValues("completed").Inc()
	m.candidates.Set(float64(report.Candidates))

	m.orders.WithLabelValues("advanced").Add(float64(report.Advanced))
	m.orders.WithLabelValues("skipped_frozen").Add(float64(report.SkippedFrozen))
	m.orders.WithLabelValues("skipped_terminal").Add(float64(report.SkippedTerminal))
	m.orders.WithLabelValues("skipped_malformed").Add(float64(report.SkippedMalformed))
	m.orders.WithLabelValues("failed_persistence").Add(float64(report.FailedPersistence))
	m.orders.WithLabelValues("failed_notification").Add(float64(report.FailedNotification))
	m.orders.WithLabelValues("deferred").Add(float64(report.Deferred))
}

// ObserveOverlap records a trigger that was dropped because a pass was
// still running.
func (m *PassMetrics) ObserveOverlap() {
	m.passes.WithLabelValues("overlapped").Inc()
}
