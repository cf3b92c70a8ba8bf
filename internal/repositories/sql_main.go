package repositories

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

type sqlRepo struct {
	r *Repository
}

// Repository groups the read-only stores of the fund transaction database.
type Repository struct {
	dbRead  *sql.DB
	common  sqlRepo
	builder sq.StatementBuilderType

	tr  *transactionRepository
	fr  *fundRepository
	trr *transactionReferenceRepository
}

// NewSQLRepository only reads, db may point at a replica.
func NewSQLRepository(db *sql.DB) *Repository {
	rtx := &Repository{
		dbRead:  db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
	rtx.common.r = rtx
	rtx.tr = (*transactionRepository)(&rtx.common)
	rtx.fr = (*fundRepository)(&rtx.common)
	rtx.trr = (*transactionReferenceRepository)(&rtx.common)

	return rtx
}

type SQLRepository interface {
	GetTransactionRepository() TransactionRepository
	GetFundRepository() FundRepository
	GetTransactionReferenceRepository() TransactionReferenceRepository
}

var _ SQLRepository = (*Repository)(nil)

func (r *Repository) GetTransactionRepository() TransactionRepository {
	return r.tr
}

func (r *Repository) GetFundRepository() FundRepository {
	return r.fr
}

func (r *Repository) GetTransactionReferenceRepository() TransactionReferenceRepository {
	return r.trr
}
