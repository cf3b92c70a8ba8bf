package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/miblum/go-fund-notice/internal/common"
)

func TestVariantOf(t *testing.T) {
	tests := []struct {
		name            string
		customerType    CustomerType
		transactionType TransactionType
		want            NoticeVariant
		wantErr         error
	}{
		{name: "individual buy", customerType: CustomerTypeIndividual, transactionType: TransactionTypeBuy, want: NoticeIndividualBuy},
		{name: "individual sell", customerType: CustomerTypeIndividual, transactionType: TransactionTypeSell, want: NoticeIndividualSell},
		{name: "business buy", customerType: CustomerTypeBusiness, transactionType: TransactionTypeBuy, want: NoticeBusinessBuy},
		{name: "business sell", customerType: CustomerTypeBusiness, transactionType: TransactionTypeSell, want: NoticeBusinessSell},
		{name: "unknown customer type", customerType: "TRUST", transactionType: TransactionTypeBuy, wantErr: common.ErrUnrecognizedCustomerType},
		{name: "unknown customer and transaction type", customerType: "", transactionType: "SWITCH", wantErr: common.ErrUnrecognizedCustomerType},
		{name: "unknown transaction type", customerType: CustomerTypeBusiness, transactionType: "SWITCH", wantErr: common.ErrUnrecognizedTransactionType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VariantOf(tt.customerType, tt.transactionType)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassificationFromCode(t *testing.T) {
	countTrue := func(c RedemptionClassification) int {
		n := 0
		for _, b := range []bool{c.ByAmount, c.ByShares, c.Full} {
			if b {
				n++
			}
		}
		return n
	}

	for _, code := range []string{RedemptionCodeShares, RedemptionCodeFull, RedemptionCodeNetAmount} {
		c := ClassificationFromCode(code)
		assert.Equal(t, 1, countTrue(c), code)
		assert.True(t, c.Classified())
	}
	assert.True(t, ClassificationFromCode(RedemptionCodeNetAmount).ByAmount)
	assert.True(t, ClassificationFromCode(RedemptionCodeShares).ByShares)
	assert.True(t, ClassificationFromCode(RedemptionCodeFull).Full)

	for _, code := range []string{"", "Redemption_Other", "redemption_shares"} {
		c := ClassificationFromCode(code)
		assert.Equal(t, 0, countTrue(c), code)
		assert.False(t, c.Classified())
	}
}

func TestCustomer(t *testing.T) {
	c := Customer{Name: "Ana", MiddleName: "", LastName: "Pérez", MotherLastName: "Soto"}
	assert.Equal(t, "Ana Pérez Soto", c.FullName())

	_, err := c.PrimaryDocument()
	assert.ErrorIs(t, err, common.ErrMissingIdentityDocument)

	c.IdentityDocuments = []IdentityDocument{{Number: "44556677", Type: "DNI"}, {Number: "X1", Type: "CE"}}
	doc, err := c.PrimaryDocument()
	assert.NoError(t, err)
	assert.Equal(t, "44556677", doc.Number)

	assert.Equal(t, "Luis Rojas", Employee{Name: "Luis", MiddleName: "A", LastName: "Rojas"}.DisplayName())
}

func TestEntityError(t *testing.T) {
	err := NewEntityError(EntityBank, "12", nil)
	assert.ErrorIs(t, err, common.ErrEntityNotFound)
	assert.Equal(t, `bank "12" not found`, err.Error())

	cause := errors.New("status 404")
	wrapped := NewEntityError(EntityAccount, "acc-1", cause)
	assert.ErrorIs(t, wrapped, common.ErrEntityNotFound)
	assert.ErrorIs(t, wrapped, cause)

	var entityErr *EntityError
	assert.ErrorAs(t, wrapped, &entityErr)
	assert.Equal(t, EntityAccount, entityErr.Entity)
}

func TestBatchSummary(t *testing.T) {
	var s BatchSummary
	assert.NoError(t, s.Err())

	s.AddSkip("tx-1", SkipTransactionNotFound)
	s.AddFailure(NewItemFailure("tx-2", StepBuild, NewEntityError(EntityCustomer, "c-1", nil)))

	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Failed)
	err := s.Err()
	assert.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEntityNotFound)
	assert.Contains(t, err.Error(), "transaction tx-2 failed at build")
}

func TestNoticeFileName(t *testing.T) {
	got, err := NoticeFileName("44556677", 1721071800000)
	assert.NoError(t, err)
	assert.Equal(t, "44556677_1721071800000.png", got)

	for _, number := range []string{"", "../etc", "12/34", `12\34`, "a..b"} {
		_, err = NoticeFileName(number, 1721071800000)
		assert.ErrorIs(t, err, common.ErrValidation, number)
	}
}

func TestCloudStoragePayload(t *testing.T) {
	p := NewCloudStoragePayload("notice_report/2024/07/output.pdf")
	assert.Equal(t, "notice_report/2024/07", p.Path)
	assert.Equal(t, "output.pdf", p.Filename)
	assert.Equal(t, "notice_report/2024/07/output.pdf", p.GetFilePath())

	p = NewCloudStoragePayload("output.csv")
	assert.Equal(t, "", p.Path)
	assert.Equal(t, "output.csv", p.GetFilePath())

	at := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "notice_report/2024/07/output.csv", NoticeReportObjectPath(at, "output.csv"))
}
