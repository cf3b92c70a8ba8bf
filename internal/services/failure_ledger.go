package services

import (
	"context"
	"time"

	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

func (r *report) RetryFailedNotices(ctx context.Context, req models.NoticeReportRequest) (summary models.BatchSummary, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	entries, err := r.ListFailedNotices(ctx)
	if err != nil {
		return summary, err
	}

	if len(entries) == 0 {
		xlog.Info(ctx, logMessageReport+" failure ledger is empty, nothing to retry")
		return summary, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.TransactionID)
	}

	req.Criteria = models.SelectionCriteria{
		IDs:     ids,
		FundIDs: req.Criteria.FundIDs,
	}

	return r.GenerateNoticeReport(ctx, req)
}

func (r *report) ListFailedNotices(ctx context.Context) (entries []models.FailureLedgerEntry, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	if r.srv.failureLedger == nil {
		return nil, nil
	}

	err = r.srv.failureLedger.ForEach(func(_ string, entry models.FailureLedgerEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// updateLedger records this batch's failures and forgets the ids that went
// through or no longer exist. Ledger errors are logged, the report is
// already written.
func (r *report) updateLedger(ctx context.Context, results []itemResult, skips []models.ItemSkip) {
	if r.srv.failureLedger == nil {
		return
	}

	for _, res := range results {
		switch {
		case res.failure != nil:
			if err := r.recordFailure(*res.failure); err != nil {
				xlog.Warn(ctx, logMessageReport+" failed to record failure",
					xlog.String("transactionId", res.failure.TransactionID),
					xlog.Err(err))
			}
		case res.item != nil:
			r.forget(ctx, res.item.Notice.Transaction.ID)
		}
	}

	for _, skip := range skips {
		if skip.Reason == models.SkipTransactionNotFound {
			r.forget(ctx, skip.TransactionID)
		}
	}
}

func (r *report) recordFailure(failure models.ItemFailure) error {
	failedAt := failure.FailedAt
	if failedAt.IsZero() {
		failedAt = time.Now()
	}

	return r.srv.failureLedger.Update(failure.TransactionID,
		func(entry models.FailureLedgerEntry, found bool) (models.FailureLedgerEntry, bool, error) {
			if !found {
				entry = models.FailureLedgerEntry{
					TransactionID: failure.TransactionID,
					FirstFailedAt: failedAt,
				}
			}
			entry.Step = failure.Step
			entry.Reason = failure.Reason
			entry.LastFailedAt = failedAt
			entry.Attempts++

			return entry, true, nil
		})
}

func (r *report) forget(ctx context.Context, transactionID string) {
	var (
		cleared  bool
		attempts int
	)
	err := r.srv.failureLedger.Update(transactionID,
		func(entry models.FailureLedgerEntry, found bool) (models.FailureLedgerEntry, bool, error) {
			cleared, attempts = found, entry.Attempts
			return entry, false, nil
		})
	if err != nil {
		xlog.Warn(ctx, logMessageReport+" failed to clear failure",
			xlog.String("transactionId", transactionID),
			xlog.Err(err))
		return
	}

	if cleared {
		xlog.Info(ctx, logMessageReport+" failure cleared",
			xlog.String("transactionId", transactionID),
			xlog.Int("attempts", attempts))
	}
}
