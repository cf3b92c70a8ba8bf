package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/flag"
	"github.com/miblum/go-fund-notice/internal/models"
)

func Test_reportHandler_GenerateNoticeReport(t *testing.T) {
	testHelper := reportTestHelper(t)

	lima, _ := common.LoadLocation(common.TimezoneLima)

	type args struct {
		ctx  context.Context
		flag flag.Job
	}
	tests := []struct {
		name    string
		args    args
		doMock  func(args args)
		wantErr error
	}{
		{
			name: "success GenerateNoticeReport",
			args: args{
				ctx: context.TODO(),
				flag: flag.Job{
					Start:   "2024-07-01",
					End:     "2024-07-31",
					FundIDs: []string{"BLUM-CASH-USD"},
					CSV:     true,
					PDF:     true,
				},
			},
			doMock: func(args args) {
				testHelper.mockReportService.EXPECT().GenerateNoticeReport(gomock.AssignableToTypeOf(args.ctx), gomock.Any()).
					DoAndReturn(func(_ context.Context, req models.NoticeReportRequest) (models.BatchSummary, error) {
						assert.True(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, lima).Equal(req.Criteria.Start))
						assert.Equal(t, 31, req.Criteria.End.In(lima).Day())
						assert.Equal(t, []string{"BLUM-CASH-USD"}, req.Criteria.FundIDs)
						assert.True(t, req.WriteCSV)
						assert.True(t, req.WritePDF)
						assert.False(t, req.Upload)
						return models.BatchSummary{Processed: 3}, nil
					})
			},
		},
		{
			name: "error invalid window",
			args: args{
				ctx:  context.TODO(),
				flag: flag.Job{Start: "2024-07-01", CSV: true},
			},
			wantErr: common.ErrInvalidSelection,
		},
		{
			name: "error GenerateNoticeReport",
			args: args{
				ctx:  context.TODO(),
				flag: flag.Job{Start: "2024-07-01", End: "2024-07-02", CSV: true},
			},
			doMock: func(args args) {
				testHelper.mockReportService.EXPECT().GenerateNoticeReport(gomock.AssignableToTypeOf(args.ctx), gomock.Any()).
					Return(models.BatchSummary{}, assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock(tt.args)
			}
			_, err := testHelper.handler.GenerateNoticeReport(tt.args.ctx, tt.args.flag)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_reportHandler_GenerateNoticeReportByIDs(t *testing.T) {
	testHelper := reportTestHelper(t)

	type args struct {
		ctx  context.Context
		flag flag.Job
	}
	tests := []struct {
		name    string
		args    args
		doMock  func(args args)
		wantIDs []string
		wantErr error
	}{
		{
			name: "success ids from flag and file",
			args: args{
				ctx:  context.TODO(),
				flag: flag.Job{IDs: []string{"a,b"}, IDsFile: "ids.csv", CSV: true},
			},
			doMock: func(args args) {
				testHelper.mockSelectorService.EXPECT().ReadTransactionIDs(gomock.AssignableToTypeOf(args.ctx), "ids.csv").
					Return([]string{"c"}, nil)
			},
			wantIDs: []string{"a", "b", "c"},
		},
		{
			name: "error no ids",
			args: args{
				ctx:  context.TODO(),
				flag: flag.Job{CSV: true},
			},
			wantErr: common.ErrInvalidSelection,
		},
		{
			name: "error reading id file",
			args: args{
				ctx:  context.TODO(),
				flag: flag.Job{IDsFile: "missing.csv", CSV: true},
			},
			doMock: func(args args) {
				testHelper.mockSelectorService.EXPECT().ReadTransactionIDs(gomock.AssignableToTypeOf(args.ctx), "missing.csv").
					Return(nil, assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock(tt.args)
			}
			if tt.wantIDs != nil {
				testHelper.mockReportService.EXPECT().GenerateNoticeReport(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req models.NoticeReportRequest) (models.BatchSummary, error) {
						assert.Equal(t, tt.wantIDs, req.Criteria.IDs)
						return models.BatchSummary{}, nil
					})
			}

			_, err := testHelper.handler.GenerateNoticeReportByIDs(tt.args.ctx, tt.args.flag)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_reportHandler_RetryFailedNotices(t *testing.T) {
	testHelper := reportTestHelper(t)

	testHelper.mockReportService.EXPECT().RetryFailedNotices(gomock.Any(), models.NoticeReportRequest{WritePDF: true}).
		Return(models.BatchSummary{Processed: 2}, nil)

	summary, err := testHelper.handler.RetryFailedNotices(context.TODO(), flag.Job{PDF: true})
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
}

func Test_reportHandler_ListFailedNotices(t *testing.T) {
	testHelper := reportTestHelper(t)

	testHelper.mockReportService.EXPECT().ListFailedNotices(gomock.Any()).
		Return([]models.FailureLedgerEntry{{TransactionID: "trx-1", Step: models.StepCapture, Attempts: 2}}, nil)
	testHelper.mockReportService.EXPECT().ListFailedNotices(gomock.Any()).Return(nil, assert.AnError)

	_, err := testHelper.handler.ListFailedNotices(context.TODO(), flag.Job{})
	assert.NoError(t, err)

	_, err = testHelper.handler.ListFailedNotices(context.TODO(), flag.Job{})
	assert.ErrorIs(t, err, assert.AnError)
}
