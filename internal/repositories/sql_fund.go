package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

var (
	queryFundGetByID = `SELECT "id", "name" FROM "funds" WHERE "id" = $1;`

	queryFundList = `SELECT "id", "name" FROM "funds" ORDER BY "id" ASC;`
)

type FundRepository interface {
	GetByID(ctx context.Context, id string) (fund models.Fund, err error)
	List(ctx context.Context) (funds []models.Fund, err error)
}

type fundRepository sqlRepo

var _ FundRepository = (*fundRepository)(nil)

func (fr *fundRepository) GetByID(ctx context.Context, id string) (fund models.Fund, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	db := fr.r.dbRead
	err = db.QueryRowContext(ctx, queryFundGetByID, id).Scan(
		&fund.ID,
		&fund.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Fund{}, models.NewEntityError(models.EntityFund, id, nil)
		}
		return models.Fund{}, err
	}

	return fund, nil
}

func (fr *fundRepository) List(ctx context.Context) (funds []models.Fund, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	db := fr.r.dbRead

	rows, err := db.QueryContext(ctx, queryFundList)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var fund models.Fund
		if err = rows.Scan(&fund.ID, &fund.Name); err != nil {
			return nil, err
		}
		funds = append(funds, fund)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return funds, nil
}
