package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/cache"
	"github.com/miblum/go-fund-notice/internal/common/labels"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

const (
	SubjectSubscription         = "Nueva suscripción Blum: pedido recibido"
	SubjectRedemption           = "Confirmación de rescate"
	SubjectBusinessRedemption   = "Blum Empresas: Confirmación de rescate"
	accountPlaceholderForClient = " - "
)

type NoticeService interface {
	// BuildNotice resolves every entity the notice prints, fills the field
	// map and renders the HTML. The field map is a pure function of the
	// transaction and the resolved entities.
	BuildNotice(ctx context.Context, trx models.Transaction) (n models.Notice, err error)
}

type noticeBuilder service

var _ NoticeService = (*noticeBuilder)(nil)

func (nb *noticeBuilder) BuildNotice(ctx context.Context, trx models.Transaction) (n models.Notice, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err),
			monitoring.WithFinishXlogFields(xlog.String("transactionId", trx.ID)))
	}()

	if err = common.ValidateStructErr(trx); err != nil {
		return n, err
	}

	customer, err := nb.srv.backoffice.GetCustomer(ctx, trx.CustomerID)
	if err != nil {
		return n, err
	}

	variant, err := models.VariantOf(customer.Type, trx.Type)
	if err != nil {
		return n, err
	}

	document, err := customer.PrimaryDocument()
	if err != nil {
		return n, models.NewEntityError(models.EntityCustomer, customer.ID, err)
	}

	fileName, err := models.NoticeFileName(document.Number, trx.CreationDate)
	if err != nil {
		return n, err
	}

	fundName, err := nb.fundName(ctx, trx.Fund.ID)
	if err != nil {
		return n, err
	}

	n = models.Notice{
		Transaction: trx,
		Customer:    customer,
		Variant:     variant,
		FileName:    fileName,
		Fields: models.NoticeFields{
			models.FieldName:           customer.Name,
			models.FieldFullName:       customer.FullName(),
			models.FieldEmail:          customer.Email,
			models.FieldCustomerType:   string(customer.Type),
			models.FieldDocumentType:   document.Type,
			models.FieldDocumentNumber: document.Number,
			models.FieldFundName:       fundName,
			models.FieldDate:           common.FormatDate(trx.CreationDate, nb.srv.location),
			models.FieldStatus:         nb.srv.labels.StatusName(trx.Status),
		},
	}

	switch variant {
	case models.NoticeIndividualBuy:
		err = nb.fillBuy(ctx, &n, false)
	case models.NoticeBusinessBuy:
		err = nb.fillBuy(ctx, &n, true)
	case models.NoticeIndividualSell:
		err = nb.fillIndividualSell(ctx, &n)
	case models.NoticeBusinessSell:
		err = nb.fillBusinessSell(ctx, &n)
	}
	if err != nil {
		return models.Notice{}, err
	}

	html, err := nb.srv.renderer.Render(ctx, n)
	if err != nil {
		return models.Notice{}, fmt.Errorf("%w: %w", common.ErrRender, err)
	}
	n.HTML = html

	return n, nil
}

// fillBuy covers both buy variants, business orders never print the bank
// operation id.
func (nb *noticeBuilder) fillBuy(ctx context.Context, n *models.Notice, business bool) error {
	trx := n.Transaction

	bank, err := nb.srv.backoffice.GetBank(ctx, trx.Origin.Bank.ID)
	if err != nil {
		return err
	}

	transactionID := trx.Origin.Bank.TransactionID
	if business {
		transactionID = ""
	}

	n.Fields[models.FieldHour] = common.FormatHour(trx.CreationDate, nb.srv.location)
	n.Fields[models.FieldAmount] = nb.srv.labels.FormatAmount(trx.Currency, trx.Amount)
	n.Fields[models.FieldTransactionID] = transactionID
	n.Fields[models.FieldBankName] = bank.Name
	n.Fields[models.FieldSubject] = SubjectSubscription

	return nil
}

func (nb *noticeBuilder) fillIndividualSell(ctx context.Context, n *models.Notice) error {
	if err := nb.classify(ctx, n); err != nil {
		return err
	}

	trx := n.Transaction
	if trx.HasClient() {
		client, err := nb.srv.backoffice.GetClient(ctx, trx.ClientID)
		if err != nil {
			return err
		}
		n.Fields[models.FieldAccount] = accountPlaceholderForClient
		n.Fields[models.FieldBankName] = client.Name
	} else if err := nb.fillDestinationAccount(ctx, n); err != nil {
		return err
	}

	nb.fillSellCommon(n)
	n.Fields[models.FieldSubject] = SubjectRedemption

	return nil
}

func (nb *noticeBuilder) fillBusinessSell(ctx context.Context, n *models.Notice) error {
	if err := nb.classify(ctx, n); err != nil {
		return err
	}

	trx := n.Transaction
	if trx.EmployeeID != "" {
		employee, err := nb.srv.backoffice.GetEmployee(ctx, trx.EmployeeID, trx.CustomerID)
		if err != nil {
			return err
		}
		n.Fields[models.FieldName] = employee.DisplayName()
	}

	if err := nb.fillDestinationAccount(ctx, n); err != nil {
		return err
	}

	nb.fillSellCommon(n)
	n.Fields[models.FieldBusiness] = n.Customer.Name
	n.Fields[models.FieldSubject] = SubjectBusinessRedemption

	return nil
}

func (nb *noticeBuilder) fillDestinationAccount(ctx context.Context, n *models.Notice) error {
	account, err := nb.srv.backoffice.GetAccount(ctx, n.Transaction.Destiny.Account.ID, n.Customer)
	if err != nil {
		return err
	}

	bank, err := nb.srv.backoffice.GetBank(ctx, account.Bank.ID)
	if err != nil {
		return err
	}

	n.Fields[models.FieldAccount] = account.Number
	n.Fields[models.FieldBankName] = bank.Name

	return nil
}

// fillSellCommon prints the amount or the shares only for the matching
// redemption, every other sell shows the placeholder in both.
func (nb *noticeBuilder) fillSellCommon(n *models.Notice) {
	trx := n.Transaction

	amount, shares := models.Placeholder, models.Placeholder
	if n.Classification.ByAmount {
		amount = nb.srv.labels.FormatAmount(trx.Currency, trx.Amount)
	}
	if n.Classification.ByShares {
		shares = trx.SharesString()
	}

	settlementDate := ""
	if trx.SettlementDate > 0 {
		settlementDate = common.FormatDate(trx.SettlementDate, nb.srv.location)
	}

	n.Fields[models.FieldTime] = common.FormatHour(trx.CreationDate, nb.srv.location)
	n.Fields[models.FieldSubType] = labels.SubTypeName(string(trx.SubType))
	n.Fields[models.FieldAmount] = amount
	n.Fields[models.FieldShares] = shares
	n.Fields[models.FieldSettlementDate] = settlementDate
}

// classify only looks partial redemptions up, total ones stay unclassified.
func (nb *noticeBuilder) classify(ctx context.Context, n *models.Notice) error {
	if !n.Transaction.IsPartialSell() {
		return nil
	}

	result, err := nb.srv.Classifier.Classify(ctx, n.Transaction.ID)
	if err != nil {
		if !errors.Is(err, common.ErrClassificationUnavailable) ||
			nb.srv.conf.Notice.ClassificationFailure == config.ClassificationFailureFail {
			return err
		}

		xlog.Warn(ctx, "[NOTICE] redemption left unclassified",
			xlog.String("transactionId", n.Transaction.ID),
			xlog.Err(err))
		n.ClassificationUnavailable = true
		return nil
	}

	n.Classification = result
	return nil
}

func (nb *noticeBuilder) fundName(ctx context.Context, fundID string) (string, error) {
	if nb.srv.conf.Notice.FundNameSource != config.FundNameSourceStore {
		name, ok := nb.srv.labels.FundName(fundID)
		if !ok {
			return "", models.NewEntityError(models.EntityFund, fundID, nil)
		}
		return name, nil
	}

	load := func(ctx context.Context) (models.Fund, error) {
		return nb.srv.sqlRepo.GetFundRepository().GetByID(ctx, fundID)
	}

	if nb.srv.fundCache == nil {
		fund, err := load(ctx)
		return fund.Name, err
	}

	fund, err := nb.srv.fundCache.GetOrSet(ctx, cache.GetOrSetOpts[models.Fund]{
		Key:         fundID,
		TTL:         nb.srv.conf.Backoffice.CacheTTL,
		Callback:    load,
		LoadTimeout: nb.srv.conf.Report.ItemTimeout,
	})
	if err != nil {
		return "", err
	}

	return fund.Name, nil
}
