package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

type TransactionSubType string

const (
	TransactionSubTypePartial TransactionSubType = "PARTIAL"
	TransactionSubTypeTotal   TransactionSubType = "TOTAL"
)

// Transaction is a fund order as stored by the transaction store.
// CreationDate and SettlementDate are epoch milliseconds.
type Transaction struct {
	ID             string              `json:"id" validate:"required,noStartEndSpaces"`
	CustomerID     string              `json:"customerId" validate:"required,noStartEndSpaces"`
	ClientID       string              `json:"clientId,omitempty"`
	EmployeeID     string              `json:"employeeId,omitempty"`
	Fund           FundRef             `json:"fund"`
	Type           TransactionType     `json:"type" validate:"required"`
	SubType        TransactionSubType  `json:"subType,omitempty" validate:"omitempty,oneof=PARTIAL TOTAL"`
	Currency       string              `json:"currency"`
	Amount         decimal.Decimal     `json:"amount" validate:"decimalGte=0"`
	Shares         decimal.NullDecimal `json:"shares" validate:"omitempty,decimalGte=0"`
	CreationDate   int64               `json:"creationDate" validate:"gt=0"`
	SettlementDate int64               `json:"settlementDate"`
	Status         string              `json:"status"`
	Origin         Origin              `json:"origin"`
	Destiny        Destiny             `json:"destiny"`
}

type FundRef struct {
	ID string `json:"id" validate:"required"`
}

type Origin struct {
	Bank OriginBank `json:"bank"`
}

type OriginBank struct {
	ID string `json:"id"`

	// TransactionID is the bank's own operation id, business orders never carry one.
	TransactionID string `json:"transactionId,omitempty"`
}

type Destiny struct {
	Account AccountRef `json:"account"`
}

type AccountRef struct {
	ID string `json:"id"`
}

func (t Transaction) IsPartialSell() bool {
	return t.Type == TransactionTypeSell && t.SubType == TransactionSubTypePartial
}

func (t Transaction) HasClient() bool {
	return t.ClientID != ""
}

// SharesString returns the stored share count or "" when absent.
func (t Transaction) SharesString() string {
	if !t.Shares.Valid {
		return ""
	}
	return t.Shares.Decimal.String()
}

// SelectionCriteria chooses the transactions of a batch. IDs, when set,
// wins over the creation window.
type SelectionCriteria struct {
	IDs     []string
	Start   time.Time
	End     time.Time
	FundIDs []string

	// PreserveOrder keeps the store (or id list) order instead of newest first.
	PreserveOrder bool

	// LenientPaging logs a failed page fetch and keeps what was already read.
	LenientPaging bool
}

func (c SelectionCriteria) ByIDs() bool {
	return len(c.IDs) > 0
}

// TransactionFilter is one page request of the creation window scan.
type TransactionFilter struct {
	StartMillis int64
	EndMillis   int64
	FundIDs     []string
	Cursor      string
	Limit       int
}

// Selection is the outcome of a selector run. Skips lists requested ids
// that do not exist.
type Selection struct {
	Transactions []Transaction
	Skips        []ItemSkip
}

type TransactionPage struct {
	Items []Transaction

	// NextCursor is empty on the last page.
	NextCursor string
}

// TransactionReference maps an internal transaction to the id used by the
// external transaction-detail system.
type TransactionReference struct {
	TransactionID string `json:"transactionId"`
	ExternalID    string `json:"externalId"`
}
