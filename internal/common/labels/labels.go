// Package labels maps coded values stored on transactions to the display
// strings printed on notices and report pages.
package labels

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"PEN": "S/.",
}

var defaultFundNames = map[string]string{
	"BLUM-CASH-PEN":   "Blum Cash Soles FMIV",
	"BLUM-CASH-USD":   "Blum Cash Dólares FMIV",
	"BLUM-RENTA-PEN":  "Blum Renta Soles FMIV",
	"BLUM-RENTA-USD":  "Blum Renta Dólares FMIV",
	"BLUM-GLOBAL-USD": "Blum Global Equity FMIV",
}

var defaultStatusNames = map[string]string{
	"PENDING":     "Pendiente",
	"IN_PROGRESS": "En proceso",
	"CONFIRMED":   "Confirmado",
	"SETTLED":     "Liquidado",
	"REJECTED":    "Rechazado",
	"CANCELED":    "Anulado",
}

var subTypeNames = map[string]string{
	"PARTIAL": "Parcial",
	"TOTAL":   "Total",
}

var transactionTypeNames = map[string]string{
	"BUY":  "Suscripción",
	"SELL": "Rescate",
}

var customerTypeNames = map[string]string{
	"INDIVIDUAL": "Natural",
	"BUSINESS":   "Jurídico",
}

const (
	QualifierByAmount = "por monto"
	QualifierByShares = "por cuotas"
	QualifierFull     = "total"
)

// Table resolves display strings. Overrides come from configuration and win
// over the built-in entries.
type Table struct {
	fundNames             map[string]string
	statusNames           map[string]string
	defaultCurrencySymbol string
}

func New(fundNames, statusNames map[string]string, defaultCurrencySymbol string) *Table {
	return &Table{
		fundNames:             merge(defaultFundNames, fundNames),
		statusNames:           merge(defaultStatusNames, statusNames),
		defaultCurrencySymbol: defaultCurrencySymbol,
	}
}

func merge(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[strings.ToUpper(k)] = v
		out[k] = v
	}
	return out
}

// CurrencySymbol returns "" for unknown codes unless a default symbol is configured.
func (t *Table) CurrencySymbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return s
	}
	return t.defaultCurrencySymbol
}

// FormatAmount renders "{symbol} {amount}", e.g. "$ 100" or "S/. 50".
func (t *Table) FormatAmount(code string, amount decimal.Decimal) string {
	return strings.TrimSpace(t.CurrencySymbol(code) + " " + amount.String())
}

func (t *Table) FundName(fundID string) (string, bool) {
	name, ok := t.fundNames[fundID]
	return name, ok
}

// StatusName falls back to the raw code so a new status is still readable.
func (t *Table) StatusName(code string) string {
	if name, ok := t.statusNames[code]; ok {
		return name
	}
	return code
}

func SubTypeName(subType string) string {
	return subTypeNames[subType]
}

func TransactionTypeName(transactionType string) string {
	if name, ok := transactionTypeNames[transactionType]; ok {
		return name
	}
	return transactionType
}

func CustomerTypeName(customerType string) string {
	if name, ok := customerTypeNames[customerType]; ok {
		return name
	}
	return customerType
}
