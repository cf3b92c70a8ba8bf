package models

import (
	"fmt"
	"strings"

	"github.com/miblum/go-fund-notice/internal/common"
)

// NoticeVariant is the (customer type, transaction type) pair that selects
// the field set and template of a notice.
type NoticeVariant string

const (
	NoticeIndividualBuy  NoticeVariant = "individual_buy"
	NoticeIndividualSell NoticeVariant = "individual_sell"
	NoticeBusinessBuy    NoticeVariant = "business_buy"
	NoticeBusinessSell   NoticeVariant = "business_sell"
)

// VariantOf fails with common.ErrUnrecognizedCustomerType before looking at
// the transaction type.
func VariantOf(customerType CustomerType, transactionType TransactionType) (NoticeVariant, error) {
	var isBuy bool
	switch transactionType {
	case TransactionTypeBuy:
		isBuy = true
	case TransactionTypeSell:
	default:
		if customerType != CustomerTypeIndividual && customerType != CustomerTypeBusiness {
			return "", fmt.Errorf("%w: %q", common.ErrUnrecognizedCustomerType, customerType)
		}
		return "", fmt.Errorf("%w: %q", common.ErrUnrecognizedTransactionType, transactionType)
	}

	switch customerType {
	case CustomerTypeIndividual:
		if isBuy {
			return NoticeIndividualBuy, nil
		}
		return NoticeIndividualSell, nil
	case CustomerTypeBusiness:
		if isBuy {
			return NoticeBusinessBuy, nil
		}
		return NoticeBusinessSell, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnrecognizedCustomerType, customerType)
	}
}

func (v NoticeVariant) IsSell() bool {
	return v == NoticeIndividualSell || v == NoticeBusinessSell
}

// Notice field names, shared by the templates and the report writers.
const (
	FieldName           = "NAME"
	FieldFullName       = "FULL_NAME"
	FieldEmail          = "EMAIL"
	FieldCustomerType   = "CUSTOMER_TYPE"
	FieldDocumentType   = "DOCUMENT_TYPE"
	FieldDocumentNumber = "DOCUMENT_NUMBER"
	FieldFundName       = "FUND_NAME"
	FieldDate           = "DATE"
	FieldHour           = "HOUR"
	FieldTime           = "TIME"
	FieldAmount         = "AMOUNT"
	FieldShares         = "SHARES"
	FieldAccount        = "ACCOUNT"
	FieldBankName       = "BANK_NAME"
	FieldTransactionID  = "TRANSACTION_ID"
	FieldSettlementDate = "SETTLEMENT_DATE"
	FieldStatus         = "STATUS"
	FieldSubType        = "SUBTYPE"
	FieldSubject        = "SUBJECT"
	FieldBusiness       = "BUSINESS"
)

// Placeholder is printed in amount or shares cells that do not apply.
const Placeholder = "-"

type NoticeFields map[string]string

type Notice struct {
	Transaction    Transaction              `json:"transaction"`
	Customer       Customer                 `json:"customer"`
	Variant        NoticeVariant            `json:"variant"`
	Fields         NoticeFields             `json:"fields"`
	Classification RedemptionClassification `json:"classification"`

	// ClassificationUnavailable is set when the detail lookup failed and the
	// notice was built unclassified.
	ClassificationUnavailable bool `json:"classificationUnavailable,omitempty"`

	HTML     string `json:"-"`
	FileName string `json:"fileName"`
}

// NoticeFileName is "{documentNumber}_{creationDate}.png". A document number
// that could leave the images directory fails validation.
func NoticeFileName(documentNumber string, creationDate int64) (string, error) {
	if documentNumber == "" ||
		strings.ContainsAny(documentNumber, "/\\\x00") || strings.Contains(documentNumber, "..") {
		return "", fmt.Errorf("%w: document number %q cannot name a file", common.ErrValidation, documentNumber)
	}
	return fmt.Sprintf("%s_%d.png", documentNumber, creationDate), nil
}
