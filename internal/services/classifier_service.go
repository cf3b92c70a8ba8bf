package services

import (
	"context"
	"fmt"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

type ClassifierService interface {
	// Classify resolves how a partial redemption was requested. An unknown
	// detail code is not an error, it yields an unclassified result. Any
	// lookup failure matches common.ErrClassificationUnavailable.
	Classify(ctx context.Context, transactionID string) (result models.RedemptionClassification, err error)
}

type classifier service

var _ ClassifierService = (*classifier)(nil)

func (c *classifier) Classify(ctx context.Context, transactionID string) (result models.RedemptionClassification, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	ref, err := c.srv.sqlRepo.GetTransactionReferenceRepository().GetByTransactionID(ctx, transactionID)
	if err != nil {
		return result, fmt.Errorf("%w: cross reference of %s: %w", common.ErrClassificationUnavailable, transactionID, err)
	}

	detail, ok, err := c.srv.txDetail.GetDetail(ctx, ref.ExternalID)
	if err != nil {
		return result, fmt.Errorf("%w: detail of %s: %w", common.ErrClassificationUnavailable, ref.ExternalID, err)
	}
	if !ok {
		return result, fmt.Errorf("%w: no detail for %s", common.ErrClassificationUnavailable, ref.ExternalID)
	}

	return models.ClassificationFromCode(detail.TransactionTypeDetail), nil
}
