package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticePrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	notice := m.GetNoticePrometheus()
	notice.RecordItem("buy_individual", OutcomeSuccess)
	notice.RecordItem("buy_individual", OutcomeSuccess)
	notice.RecordItem("", OutcomeFailed)
	notice.ObserveStage("render", 150*time.Millisecond)
	notice.RecordBatch(2, 1)

	assert.Equal(t, float64(2), testutil.ToFloat64(notice.notices.WithLabelValues("buy_individual", OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(notice.notices.WithLabelValues("unknown", OutcomeFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(notice.batchItemsLast.WithLabelValues(OutcomeFailed)))

	httpClient := m.GetHTTPClientPrometheus()
	httpClient.Record(time.Second, "backoffice", "POST", "/banks", 200, 3)
	httpClient.Record(time.Second, "backoffice", "POST", "/banks", 0, 1)

	assert.Equal(t, float64(2), testutil.ToFloat64(httpClient.retries.WithLabelValues("backoffice", "/banks")))
	assert.Equal(t, 2, testutil.CollectAndCount(httpClient.callDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNilNoticeMetricsIsNoop(t *testing.T) {
	var m *NoticePrometheusMetrics
	assert.NotPanics(t, func() {
		m.RecordItem("x", OutcomeSuccess)
		m.ObserveStage("x", time.Second)
		m.RecordBatch(1, 1)
	})
}

func TestPushWithoutGateway(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())
	assert.NoError(t, m.Push(context.Background(), "", "go-fund-notice"))
}

func TestBuildFQName(t *testing.T) {
	assert.Equal(t, "go_fund_notice_worker", BuildFQName("go-fund-notice", "worker"))
	assert.Equal(t, "a_b_c_d", FlattenName("a.b/c=d"))
}

func Test_statusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(201))
	assert.Equal(t, "5xx", statusClass(503))
	assert.Equal(t, StatusTransportError, statusClass(0))
}
