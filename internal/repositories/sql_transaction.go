package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/miblum/go-fund-notice/internal/common/pagination"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

type TransactionRepository interface {
	GetByID(ctx context.Context, id string) (trx models.Transaction, err error)
	ListByCreationWindow(ctx context.Context, filter models.TransactionFilter) (page models.TransactionPage, err error)
}

type transactionRepository sqlRepo

var _ TransactionRepository = (*transactionRepository)(nil)

// GetByID returns a models.EntityError when the id is unknown.
func (tr *transactionRepository) GetByID(ctx context.Context, id string) (trx models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	db := tr.r.dbRead

	trx, err = scanTransaction(db.QueryRowContext(ctx, queryTransactionGetByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, models.NewEntityError(models.EntityTransaction, id, nil)
		}
		return models.Transaction{}, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}

	return trx, nil
}

// ListByCreationWindow reads one page of the inclusive creation window.
// NextCursor is empty on the last page.
func (tr *transactionRepository) ListByCreationWindow(ctx context.Context, filter models.TransactionFilter) (page models.TransactionPage, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	opts := pagination.Options{Limit: filter.Limit, Cursor: filter.Cursor}
	cursor, limit, err := opts.BuildCursorAndLimit()
	if err != nil {
		return page, err
	}

	query, args, err := buildTransactionWindowQuery(tr.r.builder, filter, cursor, limit).ToSql()
	if err != nil {
		return page, fmt.Errorf("failed to build transaction query: %w", err)
	}

	db := tr.r.dbRead

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return page, err
	}
	defer rows.Close()

	page.Items = make([]models.Transaction, 0, limit)
	for rows.Next() {
		trx, err := scanTransaction(rows)
		if err != nil {
			return models.TransactionPage{}, err
		}
		page.Items = append(page.Items, trx)
	}

	if err = rows.Err(); err != nil {
		return models.TransactionPage{}, err
	}

	pageSize := limit - pagination.OverFetchOffset
	if len(page.Items) > pageSize {
		page.Items = page.Items[:pageSize]
		last := page.Items[len(page.Items)-1]
		page.NextCursor = pagination.NewCursor(last.CreationDate, last.ID).Encode()
	}

	return page, nil
}
