package job

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/miblum/go-fund-notice/internal/common/flag"
	"github.com/miblum/go-fund-notice/internal/common/matcher"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/common/xlog/ctxdata"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/services/mock"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestJob_List(t *testing.T) {
	j := New(nil, nil, nil)

	assert.Equal(t, []string{
		"version=v1, name=GenerateNoticeReport",
		"version=v1, name=GenerateNoticeReportByIDs",
		"version=v1, name=ListFailedNotices",
		"version=v1, name=RetryFailedNotices",
	}, j.List())
}

func TestJob_Start(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	mockReport := mock.NewMockReportService(mockCtrl)
	mockSelector := mock.NewMockSelectorService(mockCtrl)

	j := New(nil, mockReport, mockSelector)

	t.Run("success - correlation id is set", func(t *testing.T) {
		mockReport.EXPECT().GenerateNoticeReport(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, req models.NoticeReportRequest) (models.BatchSummary, error) {
				assert.NotEmpty(t, ctxdata.GetCorrelationId(ctx))
				assert.Equal(t, "GenerateNoticeReportByIDs", ctxdata.GetJobName(ctx))
				return models.BatchSummary{Processed: 1}, nil
			})

		summary, err := j.Start(context.Background(), flag.Job{
			JobName: "GenerateNoticeReportByIDs",
			Version: "v1",
			IDs:     []string{"trx-1"},
			CSV:     true,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Processed)
	})

	t.Run("success - retry runs with a correlation id", func(t *testing.T) {
		mockReport.EXPECT().RetryFailedNotices(matcher.ContextWithCorrelationID(), gomock.Any()).
			Return(models.BatchSummary{Selected: 2, Processed: 2}, nil)

		summary, err := j.Start(context.Background(), flag.Job{JobName: "RetryFailedNotices", Version: "v1", PDF: true})
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Processed)
	})

	t.Run("success - snake case job name", func(t *testing.T) {
		mockReport.EXPECT().GenerateNoticeReport(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, req models.NoticeReportRequest) (models.BatchSummary, error) {
				assert.Equal(t, "GenerateNoticeReportByIDs", ctxdata.GetJobName(ctx))
				assert.Equal(t, []string{"trx-1"}, req.Criteria.IDs)
				return models.BatchSummary{}, nil
			})

		_, err := j.Start(context.Background(), flag.Job{
			JobName: "generate_notice_report_by_ids",
			Version: "v1",
			IDs:     []string{"trx-1"},
			CSV:     true,
		})
		require.NoError(t, err)
	})

	t.Run("failed - unknown job", func(t *testing.T) {
		_, err := j.Start(context.Background(), flag.Job{JobName: "GenerateTransactionReport", Version: "v1"})
		assert.ErrorIs(t, err, ErrUnknownJob)
	})

	t.Run("failed - unknown version", func(t *testing.T) {
		_, err := j.Start(context.Background(), flag.Job{JobName: "GenerateNoticeReport", Version: "v2"})
		assert.ErrorIs(t, err, ErrUnknownJob)
	})
}
