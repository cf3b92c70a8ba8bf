package report

import (
	"context"
	"fmt"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/flag"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
	"github.com/miblum/go-fund-notice/internal/services"
)

type reportHandler struct {
	reportSrv   services.ReportService
	selectorSrv services.SelectorService
}

func Routes(rs services.ReportService, ss services.SelectorService) map[string]func(ctx context.Context, flag flag.Job) (models.BatchSummary, error) {
	handler := reportHandler{
		reportSrv:   rs,
		selectorSrv: ss,
	}
	return map[string]func(ctx context.Context, flag flag.Job) (models.BatchSummary, error){
		"GenerateNoticeReport":      handler.GenerateNoticeReport,
		"GenerateNoticeReportByIDs": handler.GenerateNoticeReportByIDs,
		"RetryFailedNotices":        handler.RetryFailedNotices,
		"ListFailedNotices":         handler.ListFailedNotices,
		// add more job here
	}
}

func (rh *reportHandler) GenerateNoticeReport(ctx context.Context, flag flag.Job) (summary models.BatchSummary, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	start, end, err := flag.Window()
	if err != nil {
		return summary, err
	}

	req := flag.Request(models.SelectionCriteria{Start: start, End: end})
	return rh.reportSrv.GenerateNoticeReport(ctx, req)
}

func (rh *reportHandler) GenerateNoticeReportByIDs(ctx context.Context, flag flag.Job) (summary models.BatchSummary, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	ids := flag.IDList()
	if flag.IDsFile != "" {
		fileIDs, err := rh.selectorSrv.ReadTransactionIDs(ctx, flag.IDsFile)
		if err != nil {
			return summary, err
		}
		ids = append(ids, fileIDs...)
	}
	if len(ids) == 0 {
		return summary, fmt.Errorf("%w: --ids or --ids-file is required", common.ErrInvalidSelection)
	}

	xlog.Info(ctx, "GenerateNoticeReportByIDs", xlog.Int("ids", len(ids)))

	return rh.reportSrv.GenerateNoticeReport(ctx, flag.Request(models.SelectionCriteria{IDs: ids}))
}

func (rh *reportHandler) RetryFailedNotices(ctx context.Context, flag flag.Job) (summary models.BatchSummary, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	return rh.reportSrv.RetryFailedNotices(ctx, flag.Request(models.SelectionCriteria{}))
}

func (rh *reportHandler) ListFailedNotices(ctx context.Context, _ flag.Job) (summary models.BatchSummary, err error) {
	entries, err := rh.reportSrv.ListFailedNotices(ctx)
	if err != nil {
		return summary, err
	}

	for _, entry := range entries {
		xlog.Info(ctx, "ListFailedNotices",
			xlog.String("transactionId", entry.TransactionID),
			xlog.String("step", entry.Step),
			xlog.String("reason", entry.Reason),
			xlog.Int("attempts", entry.Attempts),
			xlog.Time("lastFailedAt", entry.LastFailedAt))
	}
	xlog.Info(ctx, "ListFailedNotices", xlog.Int("total", len(entries)))

	return summary, nil
}
