package services

import (
	"context"
	"time"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/backoffice"
	"github.com/miblum/go-fund-notice/internal/common/cache"
	"github.com/miblum/go-fund-notice/internal/common/labels"
	"github.com/miblum/go-fund-notice/internal/common/localstorage"
	"github.com/miblum/go-fund-notice/internal/common/metrics"
	"github.com/miblum/go-fund-notice/internal/common/notice"
	"github.com/miblum/go-fund-notice/internal/common/rasterizer"
	"github.com/miblum/go-fund-notice/internal/common/reportwriter"
	"github.com/miblum/go-fund-notice/internal/common/retry"
	"github.com/miblum/go-fund-notice/internal/common/txdetail"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/repositories"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	sqlRepo      repositories.SQLRepository
	cloudStorage repositories.CloudStorageRepository
	fileRepo     repositories.FileRepository

	backoffice    backoffice.Client
	txDetail      txdetail.Client
	renderer      notice.Renderer
	rasterizer    rasterizer.Rasterizer
	reportWriter  reportwriter.Writer
	failureLedger localstorage.LocalStorage[models.FailureLedgerEntry]
	fundCache     cache.Client[models.Fund]
	metrics       metrics.Metrics

	labels   *labels.Table
	location *time.Location
	retryer  retry.Retryer

	common service

	Selector   *selector
	Classifier *classifier
	Notice     *noticeBuilder
	Report     *report
	Storage    *storage
}

func New(
	conf config.Config,
	sqlRepo repositories.SQLRepository,
	cloudStorage repositories.CloudStorageRepository,
	fileRepo repositories.FileRepository,
	backofficeClient backoffice.Client,
	txDetailClient txdetail.Client,
	renderer notice.Renderer,
	rasterizer rasterizer.Rasterizer,
	reportWriter reportwriter.Writer,
	failureLedger localstorage.LocalStorage[models.FailureLedgerEntry],
	fundCache cache.Client[models.Fund],
	metrics metrics.Metrics,
) *Services {
	location, err := common.LoadLocation(conf.Notice.Timezone)
	if err != nil {
		xlog.Warnf(context.Background(), "falling back to %s: %v", common.TimezoneLima, err)
		location, _ = common.LoadLocation(common.TimezoneLima)
	}

	srv := &Services{
		conf:          conf,
		sqlRepo:       sqlRepo,
		cloudStorage:  cloudStorage,
		fileRepo:      fileRepo,
		backoffice:    backofficeClient,
		txDetail:      txDetailClient,
		renderer:      renderer,
		rasterizer:    rasterizer,
		reportWriter:  reportWriter,
		failureLedger: failureLedger,
		fundCache:     fundCache,
		metrics:       metrics,
		labels:        labels.New(conf.Notice.FundNames, conf.Notice.StatusLabels, conf.Notice.DefaultCurrencySymbol),
		location:      location,
		retryer:       retry.NewExponentialBackOff(conf.ExponentialBackoff),
	}
	srv.common.srv = srv
	srv.Selector = (*selector)(&srv.common)
	srv.Classifier = (*classifier)(&srv.common)
	srv.Notice = (*noticeBuilder)(&srv.common)
	srv.Report = (*report)(&srv.common)
	srv.Storage = (*storage)(&srv.common)

	return srv
}

func (s *Services) noticeMetrics() *metrics.NoticePrometheusMetrics {
	if s.metrics == nil {
		return nil
	}
	return s.metrics.GetNoticePrometheus()
}
