package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/metrics"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

const (
	logMessageReport = "[NOTICE-REPORT]"

	stageBuild   = "build"
	stageCapture = "capture"
	stageCSV     = "csv"
	stagePDF     = "pdf"
	stageUpload  = "upload"

	defaultConcurrency = 10
)

type ReportService interface {
	// GenerateNoticeReport runs one batch. Item failures are recorded in the
	// summary and the failure ledger, the returned error is batch fatal.
	GenerateNoticeReport(ctx context.Context, req models.NoticeReportRequest) (summary models.BatchSummary, err error)

	// RetryFailedNotices runs a batch over the ids kept in the failure ledger.
	RetryFailedNotices(ctx context.Context, req models.NoticeReportRequest) (summary models.BatchSummary, err error)

	ListFailedNotices(ctx context.Context) (entries []models.FailureLedgerEntry, err error)
}

type report service

var _ ReportService = (*report)(nil)

// itemResult is the outcome of one transaction, kept at its batch index.
type itemResult struct {
	item    *models.ReportItem
	failure *models.ItemFailure
}

func (r *report) GenerateNoticeReport(ctx context.Context, req models.NoticeReportRequest) (summary models.BatchSummary, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	if !req.WriteCSV && !req.WritePDF {
		return summary, common.ErrNoReportOutput
	}

	selection, err := r.srv.Selector.SelectTransactions(ctx, req.Criteria)
	if err != nil {
		return summary, err
	}

	summary.Selected = len(selection.Transactions)
	for _, skip := range selection.Skips {
		summary.AddSkip(skip.TransactionID, skip.Reason)
	}

	results, err := r.processAll(ctx, selection.Transactions)
	if err != nil {
		return summary, err
	}

	items := make([]models.ReportItem, 0, len(results))
	for _, res := range results {
		if res.failure != nil {
			summary.AddFailure(*res.failure)
		} else {
			summary.Processed++
		}
		if res.item == nil {
			continue
		}
		if res.item.Notice.ClassificationUnavailable {
			summary.Unclassified++
		}
		items = append(items, *res.item)
	}

	if err = r.writeReports(ctx, req, items, &summary); err != nil {
		return summary, err
	}

	r.updateLedger(ctx, results, selection.Skips)

	r.srv.noticeMetrics().RecordBatch(summary.Processed, summary.Failed)
	r.logSummary(ctx, summary)

	return summary, nil
}

// processAll builds and captures every transaction on a bounded pool. Only
// batch fatal errors cancel the pool.
func (r *report) processAll(ctx context.Context, transactions []models.Transaction) ([]itemResult, error) {
	cfg := r.srv.conf.Report

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = concurrency
	}
	limiter := rate.NewLimiter(limit, burst)

	results := make([]itemResult, len(transactions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, trx := range transactions {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}

			res, err := r.processItem(gctx, trx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// processItem returns an error only when the whole batch has to stop.
func (r *report) processItem(ctx context.Context, trx models.Transaction) (itemResult, error) {
	itemCtx := ctx
	if timeout := r.srv.conf.Report.ItemTimeout; timeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	nm := r.srv.noticeMetrics()

	start := time.Now()
	notice, err := r.srv.Notice.BuildNotice(itemCtx, trx)
	nm.ObserveStage(stageBuild, time.Since(start))
	if err != nil {
		if fatal := r.fatalItemError(ctx, err); fatal != nil {
			return itemResult{}, fatal
		}

		failure := models.NewItemFailure(trx.ID, buildStep(err), err)
		xlog.Warn(ctx, logMessageReport+" notice not built",
			xlog.String("transactionId", trx.ID),
			xlog.String("step", failure.Step),
			xlog.Err(err))
		nm.RecordItem(variantLabel(trx, notice), metrics.OutcomeFailed)

		return itemResult{failure: &failure}, nil
	}

	item := &models.ReportItem{
		Notice:    notice,
		ImagePath: filepath.Join(r.srv.conf.Report.ImagesDir, notice.FileName),
		Sender:    r.srv.conf.Report.Sender,
	}

	start = time.Now()
	path, err := r.srv.rasterizer.Capture(itemCtx, notice.HTML, notice.FileName)
	nm.ObserveStage(stageCapture, time.Since(start))
	if err != nil {
		if ctx.Err() != nil {
			return itemResult{}, ctx.Err()
		}

		// the row stays in the CSV, the PDF skips the missing image
		failure := models.NewItemFailure(trx.ID, models.StepCapture, err)
		xlog.Warn(ctx, logMessageReport+" notice not captured",
			xlog.String("transactionId", trx.ID),
			xlog.String("fileName", notice.FileName),
			xlog.Err(err))
		nm.RecordItem(string(notice.Variant), metrics.OutcomeFailed)

		return itemResult{item: item, failure: &failure}, nil
	}

	item.ImagePath = path
	nm.RecordItem(string(notice.Variant), metrics.OutcomeSuccess)

	return itemResult{item: item}, nil
}

// fatalItemError picks the item errors that stop the batch: an unknown
// customer type, an unreachable backend or a cancelled batch. A per item
// timeout is not fatal.
func (r *report) fatalItemError(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return nil
	case errors.Is(err, common.ErrUnrecognizedCustomerType),
		errors.Is(err, common.ErrBackendUnavailable):
		return err
	default:
		return nil
	}
}

// variantLabel names the metric series of a notice that may not have been built.
func variantLabel(trx models.Transaction, notice models.Notice) string {
	if notice.Variant != "" {
		return string(notice.Variant)
	}
	return "unknown_" + string(trx.Type)
}

func buildStep(err error) string {
	switch {
	case errors.Is(err, common.ErrValidation):
		return models.StepValidate
	case errors.Is(err, common.ErrRender):
		return models.StepRender
	default:
		return models.StepBuild
	}
}

func (r *report) writeReports(ctx context.Context, req models.NoticeReportRequest, items []models.ReportItem, summary *models.BatchSummary) error {
	cfg := r.srv.conf.Report
	nm := r.srv.noticeMetrics()

	var paths []string
	if req.WriteCSV {
		summary.CSVPath = filepath.Join(cfg.OutputDir, cfg.CSVFileName)

		start := time.Now()
		rows, err := r.srv.reportWriter.WriteCSV(ctx, summary.CSVPath, items)
		nm.ObserveStage(stageCSV, time.Since(start))
		if err != nil {
			return fmt.Errorf("write csv report: %w", err)
		}
		summary.CSVRows = rows
		paths = append(paths, summary.CSVPath)
	}

	if req.WritePDF {
		summary.PDFPath = filepath.Join(cfg.OutputDir, cfg.PDFFileName)

		start := time.Now()
		res, err := r.srv.reportWriter.WritePDF(ctx, summary.PDFPath, items)
		nm.ObserveStage(stagePDF, time.Since(start))
		if err != nil {
			return fmt.Errorf("write pdf report: %w", err)
		}
		summary.PDFPages = res.Pages
		if len(res.Skipped) > 0 {
			xlog.Info(ctx, logMessageReport+" pdf pages skipped for missing images",
				xlog.Strings("transactionIds", res.Skipped))
		}
		if res.Pages == 0 {
			xlog.Info(ctx, logMessageReport+" pdf not written, no notice has an image")
			summary.PDFPath = ""
		} else {
			paths = append(paths, summary.PDFPath)
		}
	}

	if !req.Upload {
		return nil
	}

	uploadedAt := common.Now()
	for _, path := range paths {
		start := time.Now()
		url, err := r.srv.Storage.UploadReport(ctx, path, uploadedAt)
		nm.ObserveStage(stageUpload, time.Since(start))
		if err != nil {
			return fmt.Errorf("upload %s: %w", filepath.Base(path), err)
		}
		summary.UploadedURLs = append(summary.UploadedURLs, url)
	}

	return nil
}

func (r *report) logSummary(ctx context.Context, summary models.BatchSummary) {
	fields := []xlog.Field{
		xlog.Int("selected", summary.Selected),
		xlog.Int("processed", summary.Processed),
		xlog.Int("skipped", summary.Skipped),
		xlog.Int("failed", summary.Failed),
		xlog.Int("unclassified", summary.Unclassified),
		xlog.Int("csvRows", summary.CSVRows),
		xlog.Int("pdfPages", summary.PDFPages),
	}
	if summary.CSVPath != "" {
		fields = append(fields, xlog.String("csvPath", summary.CSVPath))
	}
	if summary.PDFPath != "" {
		fields = append(fields, xlog.String("pdfPath", summary.PDFPath))
	}
	if len(summary.UploadedURLs) > 0 {
		fields = append(fields, xlog.Strings("uploadedUrls", summary.UploadedURLs))
	}
	if err := summary.Err(); err != nil {
		fields = append(fields, xlog.Err(err))
		xlog.Warn(ctx, logMessageReport, fields...)
		return
	}

	xlog.Info(ctx, logMessageReport, fields...)
}
