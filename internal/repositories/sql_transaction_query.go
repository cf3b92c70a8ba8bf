package repositories

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/miblum/go-fund-notice/internal/common/pagination"
	"github.com/miblum/go-fund-notice/internal/models"
)

const tableFundTransactions = "fund_transactions"

// nullable columns are coalesced so rows scan into plain strings
var transactionColumns = []string{
	`"id"`,
	`"customer_id"`,
	`COALESCE("client_id", '')`,
	`COALESCE("employee_id", '')`,
	`"fund_id"`,
	`"type"`,
	`COALESCE("sub_type", '')`,
	`COALESCE("currency", '')`,
	`"amount"`,
	`"shares"`,
	`"creation_date"`,
	`COALESCE("settlement_date", 0)`,
	`COALESCE("status", '')`,
	`COALESCE("origin_bank_id", '')`,
	`COALESCE("origin_bank_transaction_id", '')`,
	`COALESCE("destiny_account_id", '')`,
}

var queryTransactionGetByID = fmt.Sprintf(
	`SELECT %s FROM %s WHERE "id" = $1;`,
	strings.Join(transactionColumns, ", "), tableFundTransactions,
)

// buildTransactionWindowQuery selects one keyset page of the creation window,
// newest first. The cursor, when present, is the last row of the previous page.
func buildTransactionWindowQuery(psql sq.StatementBuilderType, filter models.TransactionFilter, cursor *pagination.Cursor, limit int) sq.SelectBuilder {
	query := psql.
		Select(transactionColumns...).
		From(tableFundTransactions).
		Where(sq.GtOrEq{`"creation_date"`: filter.StartMillis}).
		Where(sq.LtOrEq{`"creation_date"`: filter.EndMillis})

	if len(filter.FundIDs) > 0 {
		query = query.Where(sq.Expr(`"fund_id" = ANY(?)`, pq.Array(filter.FundIDs)))
	}

	if cursor != nil {
		query = query.Where(sq.Expr(`("creation_date", "id") < (?, ?)`, cursor.CreationDate, cursor.ID))
	}

	return query.
		OrderBy(`"creation_date" DESC`, `"id" DESC`).
		Limit(uint64(limit))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		trx     models.Transaction
		trxType string
		subType string
	)

	err := row.Scan(
		&trx.ID,
		&trx.CustomerID,
		&trx.ClientID,
		&trx.EmployeeID,
		&trx.Fund.ID,
		&trxType,
		&subType,
		&trx.Currency,
		&trx.Amount,
		&trx.Shares,
		&trx.CreationDate,
		&trx.SettlementDate,
		&trx.Status,
		&trx.Origin.Bank.ID,
		&trx.Origin.Bank.TransactionID,
		&trx.Destiny.Account.ID,
	)
	if err != nil {
		return models.Transaction{}, err
	}

	trx.Type = models.TransactionType(trxType)
	trx.SubType = models.TransactionSubType(subType)

	return trx, nil
}
