package services_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/txdetail"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/services"
)

func TestNoticeService_BuildNotice_Buy(t *testing.T) {
	testHelper := serviceTestHelper(t)

	type args struct {
		customer models.Customer
		trx      models.Transaction
	}
	tests := []struct {
		name       string
		args       args
		wantFields models.NoticeFields
		wantVar    models.NoticeVariant
		wantFile   string
	}{
		{
			name: "individual buy prints the bank operation id",
			args: args{
				customer: individualCustomer(),
				trx:      buyTransaction("trx-ib", "cus-1"),
			},
			wantVar:  models.NoticeIndividualBuy,
			wantFile: "45678912_1721071800000.png",
			wantFields: models.NoticeFields{
				models.FieldName:           "Ana",
				models.FieldFullName:       "Ana Lucia Quispe Rojas",
				models.FieldEmail:          "ana@example.com",
				models.FieldCustomerType:   "INDIVIDUAL",
				models.FieldDocumentType:   "DNI",
				models.FieldDocumentNumber: "45678912",
				models.FieldFundName:       "Blum Cash Dólares FMIV",
				models.FieldDate:           "07/15/2024",
				models.FieldHour:           "02:30 PM",
				models.FieldStatus:         "Confirmado",
				models.FieldAmount:         "$ 100",
				models.FieldTransactionID:  "OP-778",
				models.FieldBankName:       "BCP",
				models.FieldSubject:        services.SubjectSubscription,
			},
		},
		{
			name: "business buy never prints the bank operation id",
			args: args{
				customer: businessCustomer(),
				trx: func() models.Transaction {
					trx := buyTransaction("trx-bb", "cus-2")
					trx.Currency = "PEN"
					trx.Amount = decimal.NewFromInt(50)
					return trx
				}(),
			},
			wantVar:  models.NoticeBusinessBuy,
			wantFile: "20123456789_1721071800000.png",
			wantFields: models.NoticeFields{
				models.FieldName:           "Andes SAC",
				models.FieldFullName:       "Andes SAC",
				models.FieldEmail:          "finanzas@andes.pe",
				models.FieldCustomerType:   "BUSINESS",
				models.FieldDocumentType:   "RUC",
				models.FieldDocumentNumber: "20123456789",
				models.FieldFundName:       "Blum Cash Dólares FMIV",
				models.FieldDate:           "07/15/2024",
				models.FieldHour:           "02:30 PM",
				models.FieldStatus:         "Confirmado",
				models.FieldAmount:         "S/. 50",
				models.FieldTransactionID:  "",
				models.FieldBankName:       "BCP",
				models.FieldSubject:        services.SubjectSubscription,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), tt.args.trx.CustomerID).Return(tt.args.customer, nil)
			testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bcp").Return(models.Bank{ID: "bank-bcp", Name: "BCP"}, nil)
			testHelper.mockRenderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return("<html></html>", nil)

			got, err := testHelper.noticeService.BuildNotice(ctx, tt.args.trx)
			require.NoError(t, err)

			assert.Equal(t, tt.wantVar, got.Variant)
			assert.Equal(t, tt.wantFile, got.FileName)
			assert.Equal(t, "<html></html>", got.HTML)
			if diff := cmp.Diff(tt.wantFields, got.Fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNoticeService_BuildNotice_Sell(t *testing.T) {
	testHelper := serviceTestHelper(t)

	settlement := "07/17/2024"

	tests := []struct {
		name       string
		customer   models.Customer
		trx        models.Transaction
		doMock     func(trx models.Transaction)
		wantFields models.NoticeFields
		wantClass  models.RedemptionClassification
		wantUnav   bool
	}{
		{
			name:     "individual partial sell by shares",
			customer: individualCustomer(),
			trx:      sellTransaction("trx-s1", "cus-1", models.TransactionSubTypePartial),
			doMock: func(trx models.Transaction) {
				testHelper.mockReferenceRepository.EXPECT().GetByTransactionID(gomock.Any(), trx.ID).
					Return(models.TransactionReference{TransactionID: trx.ID, ExternalID: "EXT-1"}, nil)
				testHelper.mockTxDetail.EXPECT().GetDetail(gomock.Any(), "EXT-1").
					Return(txdetail.Detail{TransactionID: "EXT-1", TransactionTypeDetail: models.RedemptionCodeShares}, true, nil)
				testHelper.mockBackoffice.EXPECT().GetAccount(gomock.Any(), "acc-1", gomock.Any()).
					Return(models.Account{ID: "acc-1", Number: "191-000111", Bank: models.BankRef{ID: "bank-bcp"}}, nil)
				testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bcp").Return(models.Bank{ID: "bank-bcp", Name: "BCP"}, nil)
			},
			wantClass: models.RedemptionClassification{ByShares: true},
			wantFields: models.NoticeFields{
				models.FieldTime:           "02:30 PM",
				models.FieldSubType:        "Parcial",
				models.FieldAmount:         "-",
				models.FieldShares:         "12.5",
				models.FieldAccount:        "191-000111",
				models.FieldBankName:       "BCP",
				models.FieldSettlementDate: settlement,
				models.FieldSubject:        services.SubjectRedemption,
			},
		},
		{
			name:     "individual partial sell by amount",
			customer: individualCustomer(),
			trx:      sellTransaction("trx-s2", "cus-1", models.TransactionSubTypePartial),
			doMock: func(trx models.Transaction) {
				testHelper.mockReferenceRepository.EXPECT().GetByTransactionID(gomock.Any(), trx.ID).
					Return(models.TransactionReference{TransactionID: trx.ID, ExternalID: "EXT-2"}, nil)
				testHelper.mockTxDetail.EXPECT().GetDetail(gomock.Any(), "EXT-2").
					Return(txdetail.Detail{TransactionTypeDetail: models.RedemptionCodeNetAmount}, true, nil)
				testHelper.mockBackoffice.EXPECT().GetAccount(gomock.Any(), "acc-1", gomock.Any()).
					Return(models.Account{ID: "acc-1", Number: "191-000111", Bank: models.BankRef{ID: "bank-bcp"}}, nil)
				testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bcp").Return(models.Bank{ID: "bank-bcp", Name: "BCP"}, nil)
			},
			wantClass: models.RedemptionClassification{ByAmount: true},
			wantFields: models.NoticeFields{
				models.FieldTime:           "02:30 PM",
				models.FieldSubType:        "Parcial",
				models.FieldAmount:         "S/. 50",
				models.FieldShares:         "-",
				models.FieldAccount:        "191-000111",
				models.FieldBankName:       "BCP",
				models.FieldSettlementDate: settlement,
				models.FieldSubject:        services.SubjectRedemption,
			},
		},
		{
			name:     "individual total sell to a client is never classified",
			customer: individualCustomer(),
			trx: func() models.Transaction {
				trx := sellTransaction("trx-s3", "cus-1", models.TransactionSubTypeTotal)
				trx.ClientID = "cli-9"
				return trx
			}(),
			doMock: func(trx models.Transaction) {
				testHelper.mockBackoffice.EXPECT().GetClient(gomock.Any(), "cli-9").Return(models.Client{ID: "cli-9", Name: "Broker Uno"}, nil)
			},
			wantFields: models.NoticeFields{
				models.FieldTime:           "02:30 PM",
				models.FieldSubType:        "Total",
				models.FieldAmount:         "-",
				models.FieldShares:         "-",
				models.FieldAccount:        " - ",
				models.FieldBankName:       "Broker Uno",
				models.FieldSettlementDate: settlement,
				models.FieldSubject:        services.SubjectRedemption,
			},
		},
		{
			name:     "business sell requested by an employee",
			customer: businessCustomer(),
			trx: func() models.Transaction {
				trx := sellTransaction("trx-s4", "cus-2", models.TransactionSubTypeTotal)
				trx.EmployeeID = "emp-3"
				trx.SettlementDate = 0
				return trx
			}(),
			doMock: func(trx models.Transaction) {
				testHelper.mockBackoffice.EXPECT().GetEmployee(gomock.Any(), "emp-3", "cus-2").
					Return(models.Employee{ID: "emp-3", Name: "Luis", MiddleName: "Alberto", LastName: "Paredes"}, nil)
				testHelper.mockBackoffice.EXPECT().GetAccount(gomock.Any(), "acc-1", gomock.Any()).
					Return(models.Account{ID: "acc-1", Number: "200-3000", Bank: models.BankRef{ID: "bank-bbva"}}, nil)
				testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bbva").Return(models.Bank{ID: "bank-bbva", Name: "BBVA"}, nil)
			},
			wantFields: models.NoticeFields{
				models.FieldName:           "Luis Paredes",
				models.FieldBusiness:       "Andes SAC",
				models.FieldTime:           "02:30 PM",
				models.FieldSubType:        "Total",
				models.FieldAmount:         "-",
				models.FieldShares:         "-",
				models.FieldAccount:        "200-3000",
				models.FieldBankName:       "BBVA",
				models.FieldSettlementDate: "",
				models.FieldSubject:        services.SubjectBusinessRedemption,
			},
		},
		{
			name:     "partial sell left unclassified when the detail is empty",
			customer: individualCustomer(),
			trx:      sellTransaction("trx-s5", "cus-1", models.TransactionSubTypePartial),
			doMock: func(trx models.Transaction) {
				testHelper.mockReferenceRepository.EXPECT().GetByTransactionID(gomock.Any(), trx.ID).
					Return(models.TransactionReference{TransactionID: trx.ID, ExternalID: "EXT-5"}, nil)
				testHelper.mockTxDetail.EXPECT().GetDetail(gomock.Any(), "EXT-5").Return(txdetail.Detail{}, false, nil)
				testHelper.mockBackoffice.EXPECT().GetAccount(gomock.Any(), "acc-1", gomock.Any()).
					Return(models.Account{ID: "acc-1", Number: "191-000111", Bank: models.BankRef{ID: "bank-bcp"}}, nil)
				testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bcp").Return(models.Bank{ID: "bank-bcp", Name: "BCP"}, nil)
			},
			wantUnav: true,
			wantFields: models.NoticeFields{
				models.FieldTime:           "02:30 PM",
				models.FieldSubType:        "Parcial",
				models.FieldAmount:         "-",
				models.FieldShares:         "-",
				models.FieldAccount:        "191-000111",
				models.FieldBankName:       "BCP",
				models.FieldSettlementDate: settlement,
				models.FieldSubject:        services.SubjectRedemption,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), tt.trx.CustomerID).Return(tt.customer, nil)
			testHelper.mockRenderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return("<html></html>", nil)
			tt.doMock(tt.trx)

			got, err := testHelper.noticeService.BuildNotice(context.Background(), tt.trx)
			require.NoError(t, err)

			assert.True(t, got.Variant.IsSell())
			assert.Equal(t, tt.wantClass, got.Classification)
			assert.Equal(t, tt.wantUnav, got.ClassificationUnavailable)
			for field, want := range tt.wantFields {
				assert.Equalf(t, want, got.Fields[field], "field %s", field)
			}
			_, hasTransactionID := got.Fields[models.FieldTransactionID]
			assert.False(t, hasTransactionID)
		})
	}
}

func TestNoticeService_BuildNotice_Failures(t *testing.T) {
	testHelper := serviceTestHelper(t)

	tests := []struct {
		name    string
		trx     models.Transaction
		doMock  func(trx models.Transaction)
		wantErr []error
	}{
		{
			name:    "invalid transaction",
			trx:     buyTransaction(" trx-x", "cus-1"),
			wantErr: []error{common.ErrValidation},
		},
		{
			name: "customer not found",
			trx:  buyTransaction("trx-f1", "cus-404"),
			doMock: func(trx models.Transaction) {
				testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-404").
					Return(models.Customer{}, models.NewEntityError(models.EntityCustomer, "cus-404", nil))
			},
			wantErr: []error{common.ErrEntityNotFound},
		},
		{
			name: "unrecognized customer type",
			trx:  buyTransaction("trx-f2", "cus-1"),
			doMock: func(trx models.Transaction) {
				customer := individualCustomer()
				customer.Type = "TRUST"
				testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(customer, nil)
			},
			wantErr: []error{common.ErrUnrecognizedCustomerType},
		},
		{
			name: "customer without identity document",
			trx:  buyTransaction("trx-f3", "cus-1"),
			doMock: func(trx models.Transaction) {
				customer := individualCustomer()
				customer.IdentityDocuments = nil
				testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(customer, nil)
			},
			wantErr: []error{common.ErrEntityNotFound, common.ErrMissingIdentityDocument},
		},
		{
			name: "document number leaves the images directory",
			trx:  buyTransaction("trx-f7", "cus-1"),
			doMock: func(trx models.Transaction) {
				customer := individualCustomer()
				customer.IdentityDocuments = []models.IdentityDocument{{Number: "../45678912", Type: "DNI"}}
				testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(customer, nil)
			},
			wantErr: []error{common.ErrValidation},
		},
		{
			name: "fund missing from the name table",
			trx: func() models.Transaction {
				trx := buyTransaction("trx-f4", "cus-1")
				trx.Fund.ID = "UNKNOWN-FUND"
				return trx
			}(),
			doMock: func(trx models.Transaction) {
				testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(individualCustomer(), nil)
			},
			wantErr: []error{common.ErrEntityNotFound},
		},
		{
			name: "bank not found",
			trx:  buyTransaction("trx-f5", "cus-1"),
			doMock: func(trx models.Transaction) {
				testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(individualCustomer(), nil)
				testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bcp").
					Return(models.Bank{}, models.NewEntityError(models.EntityBank, "bank-bcp", nil))
			},
			wantErr: []error{common.ErrEntityNotFound},
		},
		{
			name: "render failure",
			trx:  buyTransaction("trx-f6", "cus-1"),
			doMock: func(trx models.Transaction) {
				testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(individualCustomer(), nil)
				testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bcp").Return(models.Bank{ID: "bank-bcp", Name: "BCP"}, nil)
				testHelper.mockRenderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return("", assert.AnError)
			},
			wantErr: []error{common.ErrRender, assert.AnError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.doMock != nil {
				tt.doMock(tt.trx)
			}

			got, err := testHelper.noticeService.BuildNotice(context.Background(), tt.trx)
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
			assert.Empty(t, got.HTML)
		})
	}
}

func TestNoticeService_BuildNotice_ClassificationFailureFails(t *testing.T) {
	testHelper := serviceTestHelper(t, withClassificationFailure(config.ClassificationFailureFail))

	trx := sellTransaction("trx-cf", "cus-1", models.TransactionSubTypePartial)
	testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(individualCustomer(), nil)
	testHelper.mockReferenceRepository.EXPECT().GetByTransactionID(gomock.Any(), trx.ID).
		Return(models.TransactionReference{}, models.NewEntityError(models.EntityReference, trx.ID, nil))

	_, err := testHelper.noticeService.BuildNotice(context.Background(), trx)
	assert.ErrorIs(t, err, common.ErrClassificationUnavailable)
}

func TestNoticeService_BuildNotice_FundNameFromStore(t *testing.T) {
	testHelper := serviceTestHelper(t, withFundNameSource(config.FundNameSourceStore))

	trx := buyTransaction("trx-store", "cus-1")
	trx.Fund.ID = "fund-77"

	testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(individualCustomer(), nil)
	testHelper.mockFundRepository.EXPECT().GetByID(gomock.Any(), "fund-77").Return(models.Fund{ID: "fund-77", Name: "Blum Deuda Corporativa"}, nil)
	testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bcp").Return(models.Bank{ID: "bank-bcp", Name: "BCP"}, nil)
	testHelper.mockRenderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return("<html></html>", nil)

	got, err := testHelper.noticeService.BuildNotice(context.Background(), trx)
	require.NoError(t, err)
	assert.Equal(t, "Blum Deuda Corporativa", got.Fields[models.FieldFundName])
}

func TestNoticeService_BuildNotice_Idempotent(t *testing.T) {
	testHelper := serviceTestHelper(t)

	trx := sellTransaction("trx-idem", "cus-1", models.TransactionSubTypePartial)

	testHelper.mockBackoffice.EXPECT().GetCustomer(gomock.Any(), "cus-1").Return(individualCustomer(), nil).Times(2)
	testHelper.mockReferenceRepository.EXPECT().GetByTransactionID(gomock.Any(), trx.ID).
		Return(models.TransactionReference{TransactionID: trx.ID, ExternalID: "EXT-I"}, nil).Times(2)
	testHelper.mockTxDetail.EXPECT().GetDetail(gomock.Any(), "EXT-I").
		Return(txdetail.Detail{TransactionTypeDetail: models.RedemptionCodeFull}, true, nil).Times(2)
	testHelper.mockBackoffice.EXPECT().GetAccount(gomock.Any(), "acc-1", gomock.Any()).
		Return(models.Account{ID: "acc-1", Number: "191-000111", Bank: models.BankRef{ID: "bank-bcp"}}, nil).Times(2)
	testHelper.mockBackoffice.EXPECT().GetBank(gomock.Any(), "bank-bcp").Return(models.Bank{ID: "bank-bcp", Name: "BCP"}, nil).Times(2)
	testHelper.mockRenderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return("<html></html>", nil).Times(2)

	first, err := testHelper.noticeService.BuildNotice(context.Background(), trx)
	require.NoError(t, err)
	second, err := testHelper.noticeService.BuildNotice(context.Background(), trx)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Fields, second.Fields); diff != "" {
		t.Errorf("field map differs between builds (-first +second):\n%s", diff)
	}
	assert.Equal(t, models.RedemptionClassification{Full: true}, first.Classification)
}
