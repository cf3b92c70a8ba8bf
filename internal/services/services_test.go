package services_test

import (
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockBackoffice "github.com/miblum/go-fund-notice/internal/common/backoffice/mock"
	"github.com/miblum/go-fund-notice/internal/common/localstorage"
	"github.com/miblum/go-fund-notice/internal/common/metrics"
	mockRenderer "github.com/miblum/go-fund-notice/internal/common/notice/mock"
	mockRasterizer "github.com/miblum/go-fund-notice/internal/common/rasterizer/mock"
	mockReportWriter "github.com/miblum/go-fund-notice/internal/common/reportwriter/mock"
	mockTxDetail "github.com/miblum/go-fund-notice/internal/common/txdetail/mock"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/repositories"
	"github.com/miblum/go-fund-notice/internal/repositories/mock"
	"github.com/miblum/go-fund-notice/internal/services"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

type testServiceHelper struct {
	mockCtrl   *gomock.Controller
	config     config.Config
	ledger     localstorage.LocalStorage[models.FailureLedgerEntry]
	registry   *prometheus.Registry
	fileRepo   repositories.FileRepository
	outputDir  string
	imagesDir  string
	underlying *services.Services

	mockSQLRepository       *mock.MockSQLRepository
	mockTrxRepository       *mock.MockTransactionRepository
	mockFundRepository      *mock.MockFundRepository
	mockReferenceRepository *mock.MockTransactionReferenceRepository
	mockGcs                 *mock.MockCloudStorageRepository
	mockBackoffice          *mockBackoffice.MockClient
	mockTxDetail            *mockTxDetail.MockClient
	mockRenderer            *mockRenderer.MockRenderer
	mockRasterizer          *mockRasterizer.MockRasterizer
	mockReportWriter        *mockReportWriter.MockWriter

	selectorService   services.SelectorService
	classifierService services.ClassifierService
	noticeService     services.NoticeService
	reportService     services.ReportService
	storageService    services.StorageService
}

type configOption func(*config.Config)

func withClassificationFailure(mode string) configOption {
	return func(c *config.Config) { c.Notice.ClassificationFailure = mode }
}

func withFundNameSource(source string) configOption {
	return func(c *config.Config) { c.Notice.FundNameSource = source }
}

func withPageSize(size int) configOption {
	return func(c *config.Config) { c.Report.PageSize = size }
}

func serviceTestHelper(t *testing.T, opts ...configOption) testServiceHelper {
	t.Helper()
	t.Parallel()

	mockCtrl := gomock.NewController(t)

	mockSQLRepository := mock.NewMockSQLRepository(mockCtrl)
	mockTrxRepository := mock.NewMockTransactionRepository(mockCtrl)
	mockFundRepository := mock.NewMockFundRepository(mockCtrl)
	mockReferenceRepository := mock.NewMockTransactionReferenceRepository(mockCtrl)
	mockGcs := mock.NewMockCloudStorageRepository(mockCtrl)

	mockSQLRepository.EXPECT().GetTransactionRepository().Return(mockTrxRepository).AnyTimes()
	mockSQLRepository.EXPECT().GetFundRepository().Return(mockFundRepository).AnyTimes()
	mockSQLRepository.EXPECT().GetTransactionReferenceRepository().Return(mockReferenceRepository).AnyTimes()

	mockBackofficeClient := mockBackoffice.NewMockClient(mockCtrl)
	mockTxDetailClient := mockTxDetail.NewMockClient(mockCtrl)
	mockNoticeRenderer := mockRenderer.NewMockRenderer(mockCtrl)
	mockNoticeRasterizer := mockRasterizer.NewMockRasterizer(mockCtrl)
	mockWriter := mockReportWriter.NewMockWriter(mockCtrl)

	ledger, err := localstorage.NewBadgerStorage[models.FailureLedgerEntry]("failed_notices", localstorage.WithInMemory())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ledger.Close() })

	outputDir := t.TempDir()

	conf := config.Config{
		App: config.App{Env: "test", Name: "go-fund-notice[test]"},
		Notice: config.NoticeConfig{
			FundNameSource:        config.FundNameSourceTable,
			ClassificationFailure: config.ClassificationFailureUnclassified,
			Timezone:              "America/Lima",
		},
		Report: config.ReportConfig{
			OutputDir:     outputDir,
			ImagesDir:     "images",
			CSVFileName:   "output.csv",
			PDFFileName:   "output.pdf",
			Sender:        "Blum <noreply@miblum.com>",
			Concurrency:   4,
			RatePerSecond: 0,
			ItemTimeout:   5 * time.Second,
			PageSize:      2,
		},
		ExponentialBackoff: config.ExponentialBackOffConfig{
			MaxRetries:        1,
			MaxBackoffTime:    time.Millisecond,
			BackoffMultiplier: 1,
		},
	}
	for _, opt := range opts {
		opt(&conf)
	}

	registry := prometheus.NewRegistry()
	fileRepo := repositories.NewFileRepository()

	srv := services.New(
		conf,
		mockSQLRepository,
		mockGcs,
		fileRepo,
		mockBackofficeClient,
		mockTxDetailClient,
		mockNoticeRenderer,
		mockNoticeRasterizer,
		mockWriter,
		ledger,
		nil,
		metrics.NewWithRegistry(registry),
	)

	return testServiceHelper{
		mockCtrl:   mockCtrl,
		config:     conf,
		ledger:     ledger,
		registry:   registry,
		fileRepo:   fileRepo,
		outputDir:  outputDir,
		imagesDir:  conf.Report.ImagesDir,
		underlying: srv,

		mockSQLRepository:       mockSQLRepository,
		mockTrxRepository:       mockTrxRepository,
		mockFundRepository:      mockFundRepository,
		mockReferenceRepository: mockReferenceRepository,
		mockGcs:                 mockGcs,
		mockBackoffice:          mockBackofficeClient,
		mockTxDetail:            mockTxDetailClient,
		mockRenderer:            mockNoticeRenderer,
		mockRasterizer:          mockNoticeRasterizer,
		mockReportWriter:        mockWriter,

		selectorService:   srv.Selector,
		classifierService: srv.Classifier,
		noticeService:     srv.Notice,
		reportService:     srv.Report,
		storageService:    srv.Storage,
	}
}

// creationMillis is 2024-07-15 14:30 in Lima.
var creationMillis = time.Date(2024, time.July, 15, 19, 30, 0, 0, time.UTC).UnixMilli()

func individualCustomer() models.Customer {
	return models.Customer{
		ID:             "cus-1",
		Name:           "Ana",
		MiddleName:     "Lucia",
		LastName:       "Quispe",
		MotherLastName: "Rojas",
		Type:           models.CustomerTypeIndividual,
		Email:          "ana@example.com",
		IdentityDocuments: []models.IdentityDocument{
			{Number: "45678912", Type: "DNI"},
		},
	}
}

func businessCustomer() models.Customer {
	return models.Customer{
		ID:    "cus-2",
		Name:  "Andes SAC",
		Type:  models.CustomerTypeBusiness,
		Email: "finanzas@andes.pe",
		IdentityDocuments: []models.IdentityDocument{
			{Number: "20123456789", Type: "RUC"},
		},
	}
}

func buyTransaction(id, customerID string) models.Transaction {
	return models.Transaction{
		ID:           id,
		CustomerID:   customerID,
		Fund:         models.FundRef{ID: "BLUM-CASH-USD"},
		Type:         models.TransactionTypeBuy,
		Currency:     "USD",
		Amount:       decimal.NewFromInt(100),
		CreationDate: creationMillis,
		Status:       "CONFIRMED",
		Origin: models.Origin{Bank: models.OriginBank{
			ID:            "bank-bcp",
			TransactionID: "OP-778",
		}},
	}
}

func sellTransaction(id, customerID string, subType models.TransactionSubType) models.Transaction {
	return models.Transaction{
		ID:             id,
		CustomerID:     customerID,
		Fund:           models.FundRef{ID: "BLUM-CASH-PEN"},
		Type:           models.TransactionTypeSell,
		SubType:        subType,
		Currency:       "PEN",
		Amount:         decimal.NewFromInt(50),
		Shares:         decimal.NewNullDecimal(decimal.RequireFromString("12.5")),
		CreationDate:   creationMillis,
		SettlementDate: time.Date(2024, time.July, 17, 17, 0, 0, 0, time.UTC).UnixMilli(),
		Status:         "SETTLED",
		Destiny:        models.Destiny{Account: models.AccountRef{ID: "acc-1"}},
	}
}
