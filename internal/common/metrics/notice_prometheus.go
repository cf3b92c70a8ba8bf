package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

type NoticePrometheusMetrics struct {
	notices        *prometheus.CounterVec
	stageDuration  *prometheus.HistogramVec
	batchItemsLast *prometheus.GaugeVec
}

func newNoticePrometheusMetrics(reg prometheus.Registerer) *NoticePrometheusMetrics {
	mtc := &NoticePrometheusMetrics{
		notices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fund_notice_items_total",
				Help: "Number of processed notices by variant and outcome",
			},
			[]string{"variant", "outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fund_notice_stage_duration_seconds",
				Help:    "Duration of each notice pipeline stage in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),
		batchItemsLast: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fund_notice_last_batch_items",
				Help: "Item count of the last batch by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(mtc.notices, mtc.stageDuration, mtc.batchItemsLast)

	return mtc
}

func (m *NoticePrometheusMetrics) RecordItem(variant, outcome string) {
	if m == nil {
		return
	}
	if variant == "" {
		variant = "unknown"
	}
	m.notices.WithLabelValues(variant, outcome).Inc()
}

func (m *NoticePrometheusMetrics) ObserveStage(stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func (m *NoticePrometheusMetrics) RecordBatch(succeeded, failed int) {
	if m == nil {
		return
	}
	m.batchItemsLast.WithLabelValues(OutcomeSuccess).Set(float64(succeeded))
	m.batchItemsLast.WithLabelValues(OutcomeFailed).Set(float64(failed))
}
