package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

var queryTransactionReferenceGetByTransactionID = `SELECT "transaction_id", "external_id"
	FROM "transaction_references"
	WHERE "transaction_id" = $1;`

// TransactionReferenceRepository resolves the id a transaction carries in the
// external transaction-detail system.
type TransactionReferenceRepository interface {
	GetByTransactionID(ctx context.Context, transactionID string) (ref models.TransactionReference, err error)
}

type transactionReferenceRepository sqlRepo

var _ TransactionReferenceRepository = (*transactionReferenceRepository)(nil)

func (rr *transactionReferenceRepository) GetByTransactionID(ctx context.Context, transactionID string) (ref models.TransactionReference, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	db := rr.r.dbRead
	err = db.QueryRowContext(ctx, queryTransactionReferenceGetByTransactionID, transactionID).Scan(
		&ref.TransactionID,
		&ref.ExternalID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TransactionReference{}, models.NewEntityError(models.EntityReference, transactionID, nil)
		}
		return models.TransactionReference{}, err
	}

	if ref.ExternalID == "" {
		return models.TransactionReference{}, models.NewEntityError(models.EntityReference, transactionID, nil)
	}

	return ref, nil
}
