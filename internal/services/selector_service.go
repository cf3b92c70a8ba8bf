package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

type SelectorService interface {
	// SelectTransactions reads every page before returning. Transactions
	// are unique by id and newest first unless PreserveOrder is set.
	SelectTransactions(ctx context.Context, criteria models.SelectionCriteria) (selection models.Selection, err error)

	// ReadTransactionIDs reads the first column of a local CSV file.
	ReadTransactionIDs(ctx context.Context, path string) (ids []string, err error)
}

type selector service

var _ SelectorService = (*selector)(nil)

const defaultPageSize = 500

func (s *selector) SelectTransactions(ctx context.Context, criteria models.SelectionCriteria) (selection models.Selection, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	var transactions []models.Transaction
	if criteria.ByIDs() {
		transactions, selection.Skips, err = s.selectByIDs(ctx, criteria)
	} else {
		transactions, err = s.selectByWindow(ctx, criteria)
	}
	if err != nil {
		return models.Selection{}, err
	}

	if len(criteria.FundIDs) > 0 && criteria.ByIDs() {
		transactions, selection.Skips = filterFunds(transactions, criteria.FundIDs, selection.Skips)
	}

	selection.Transactions = dedupeTransactions(transactions)
	if !criteria.PreserveOrder {
		sortNewestFirst(selection.Transactions)
	}

	return selection, nil
}

func (s *selector) selectByWindow(ctx context.Context, criteria models.SelectionCriteria) ([]models.Transaction, error) {
	if criteria.Start.IsZero() || criteria.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", common.ErrInvalidSelection)
	}
	if criteria.End.Before(criteria.Start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", common.ErrInvalidSelection, criteria.End, criteria.Start)
	}

	pageSize := s.srv.conf.Report.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	filter := models.TransactionFilter{
		StartMillis: criteria.Start.UnixMilli(),
		EndMillis:   criteria.End.UnixMilli(),
		FundIDs:     criteria.FundIDs,
		Limit:       pageSize,
	}

	repo := s.srv.sqlRepo.GetTransactionRepository()

	var transactions []models.Transaction
	for page := 1; ; page++ {
		var result models.TransactionPage
		err := s.srv.retryer.Retry(ctx, func() error {
			var errFetch error
			result, errFetch = repo.ListByCreationWindow(ctx, filter)
			if errFetch != nil && ctx.Err() != nil {
				return s.srv.retryer.StopRetryWithErr(errFetch)
			}
			return errFetch
		}, nil)
		if err != nil {
			if criteria.LenientPaging {
				xlog.Warn(ctx, "[SELECTOR] stop paging after failed page",
					xlog.Int("page", page),
					xlog.Int("collected", len(transactions)),
					xlog.Err(err))
				break
			}
			return nil, fmt.Errorf("%w: fetch page %d: %w", common.ErrBackendUnavailable, page, err)
		}

		transactions = append(transactions, result.Items...)
		if result.NextCursor == "" {
			break
		}
		filter.Cursor = result.NextCursor
	}

	xlog.Info(ctx, "[SELECTOR] window scanned",
		xlog.Time("start", criteria.Start),
		xlog.Time("end", criteria.End),
		xlog.Int("total", len(transactions)))

	return transactions, nil
}

// selectByIDs looks every id up on its own. Unknown ids become skips, any
// other lookup error ends the selection.
func (s *selector) selectByIDs(ctx context.Context, criteria models.SelectionCriteria) ([]models.Transaction, []models.ItemSkip, error) {
	repo := s.srv.sqlRepo.GetTransactionRepository()

	var (
		transactions []models.Transaction
		skips        []models.ItemSkip
	)
	for _, id := range normalizeIDs(criteria.IDs) {
		var trx models.Transaction
		err := s.srv.retryer.Retry(ctx, func() error {
			var errGet error
			trx, errGet = repo.GetByID(ctx, id)
			if errors.Is(errGet, common.ErrEntityNotFound) || (errGet != nil && ctx.Err() != nil) {
				return s.srv.retryer.StopRetryWithErr(errGet)
			}
			return errGet
		}, nil)
		if err != nil {
			if errors.Is(err, common.ErrEntityNotFound) {
				xlog.Warn(ctx, "[SELECTOR] transaction not found", xlog.String("transactionId", id))
				skips = append(skips, models.ItemSkip{TransactionID: id, Reason: models.SkipTransactionNotFound})
				continue
			}
			return nil, nil, fmt.Errorf("%w: get transaction %s: %w", common.ErrBackendUnavailable, id, err)
		}

		transactions = append(transactions, trx)
	}

	return transactions, skips, nil
}

func (s *selector) ReadTransactionIDs(ctx context.Context, path string) (ids []string, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	file, err := s.srv.fileRepo.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open id file: %w", err)
	}
	defer file.Close()

	for row := range s.srv.fileRepo.StreamReadCSVFile(ctx, file) {
		if row.Err != nil {
			return nil, fmt.Errorf("read id file: %w", row.Err)
		}
		if len(row.Data) == 0 {
			continue
		}

		id := strings.TrimSpace(row.Data[0])
		if id == "" || strings.HasPrefix(id, "#") || isIDHeader(id) {
			continue
		}
		ids = append(ids, id)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	return normalizeIDs(ids), nil
}

func isIDHeader(value string) bool {
	switch strings.ToLower(strings.ReplaceAll(value, " ", "")) {
	case "id", "transactionid":
		return true
	}
	return false
}

// normalizeIDs trims, drops blanks and keeps the first occurrence of each id.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func dedupeTransactions(transactions []models.Transaction) []models.Transaction {
	seen := make(map[string]struct{}, len(transactions))
	out := make([]models.Transaction, 0, len(transactions))
	for _, trx := range transactions {
		if _, ok := seen[trx.ID]; ok {
			continue
		}
		seen[trx.ID] = struct{}{}
		out = append(out, trx)
	}
	return out
}

// sortNewestFirst orders by creation date then id, both descending, the same
// order the window scan reads in.
func sortNewestFirst(transactions []models.Transaction) {
	slices.SortStableFunc(transactions, func(a, b models.Transaction) int {
		if c := cmp.Compare(b.CreationDate, a.CreationDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

func filterFunds(transactions []models.Transaction, fundIDs []string, skips []models.ItemSkip) ([]models.Transaction, []models.ItemSkip) {
	kept := transactions[:0]
	for _, trx := range transactions {
		if !slices.Contains(fundIDs, trx.Fund.ID) {
			skips = append(skips, models.ItemSkip{TransactionID: trx.ID, Reason: models.SkipFundNotSelected})
			continue
		}
		kept = append(kept, trx)
	}
	return kept, skips
}
