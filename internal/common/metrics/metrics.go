package metrics

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

type Metrics interface {
	RegisterDB(db *sql.DB, role string, dbName string) error
	RegisterRedis(client *redis.Client, serviceName, namespace string) error
	PrometheusRegisterer() prometheus.Registerer
	GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics
	GetNoticePrometheus() *NoticePrometheusMetrics

	// Push sends every collected metric to a pushgateway. The worker exits
	// after a batch, so nothing would be left to scrape.
	Push(ctx context.Context, gatewayURL, job string) error
}

type metrics struct {
	reg               prometheus.Registerer
	gatherer          prometheus.Gatherer
	httpClientMetrics *HTTPClientPrometheusMetrics
	noticeMetrics     *NoticePrometheusMetrics
}

func New() Metrics {
	return newMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry keeps collectors off the global registry, tests use it to
// build more than one instance per process.
func NewWithRegistry(reg *prometheus.Registry) Metrics {
	return newMetrics(reg, reg)
}

func newMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *metrics {
	return &metrics{
		reg:               reg,
		gatherer:          gatherer,
		httpClientMetrics: newHTTPClientPrometheusMetrics(reg),
		noticeMetrics:     newNoticePrometheusMetrics(reg),
	}
}

func (m *metrics) RegisterDB(db *sql.DB, role string, dbName string) error {
	return m.reg.Register(collectors.NewDBStatsCollector(db, fmt.Sprintf("%s_%s", dbName, role)))
}

func (m *metrics) RegisterRedis(client *redis.Client, serviceName, namespace string) error {
	return m.reg.Register(redisprometheus.NewCollector(BuildFQName(serviceName, namespace), "redis", client))
}

func (m *metrics) PrometheusRegisterer() prometheus.Registerer {
	return m.reg
}

func (m *metrics) GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics {
	return m.httpClientMetrics
}

func (m *metrics) GetNoticePrometheus() *NoticePrometheusMetrics {
	return m.noticeMetrics
}

func (m *metrics) Push(ctx context.Context, gatewayURL, job string) error {
	if gatewayURL == "" {
		return nil
	}
	return push.New(gatewayURL, FlattenName(job)).Gatherer(m.gatherer).PushContext(ctx)
}
