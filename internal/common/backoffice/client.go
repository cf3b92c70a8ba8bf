package backoffice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/miblum/go-fund-notice/internal/common"
	"github.com/miblum/go-fund-notice/internal/common/cache"
	"github.com/miblum/go-fund-notice/internal/common/httpclient"
	"github.com/miblum/go-fund-notice/internal/common/metrics"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

const (
	logMessage  = "[BACKOFFICE-CLIENT]"
	serviceName = "backoffice"

	banksCacheKey = "all"
)

// Client resolves reference entities from the backoffice functions. Every
// lookup fails with a *models.EntityError when the entity is absent, or
// wraps common.ErrBackendUnavailable when the gateway cannot be reached.
type Client interface {
	GetBank(ctx context.Context, bankID string) (models.Bank, error)
	GetAccount(ctx context.Context, accountID string, customer models.Customer) (models.Account, error)
	GetClient(ctx context.Context, clientID string) (models.Client, error)
	GetCustomer(ctx context.Context, customerID string) (models.Customer, error)
	GetEmployee(ctx context.Context, employeeID, customerID string) (models.Employee, error)
}

type Caches struct {
	Banks   cache.Client[[]models.Bank]
	Clients cache.Client[models.Client]
}

type client struct {
	baseURL  string
	suffix   string
	secret   string
	cacheTTL time.Duration
	caches   Caches
	request  *httpclient.RequestWrapper
}

func New(cfg config.BackofficeConfig, m metrics.Metrics, caches Caches) Client {
	restyClient := httpclient.NewRestyClient(httpclient.ClientOptions{
		RetryCount:    cfg.RetryCount,
		RetryWaitTime: time.Duration(cfg.RetryWaitTime) * time.Millisecond,
		Timeout:       cfg.Timeout,
	})

	return &client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		suffix:   cfg.ResourceSuffix,
		secret:   cfg.SecretKey,
		cacheTTL: cfg.CacheTTL,
		caches:   caches,
		request:  httpclient.NewRequestWrapper(restyClient, m, serviceName, logMessage),
	}
}

func (c *client) functionURL(function string) string {
	return fmt.Sprintf("%s/functions/%s%s/invocations", c.baseURL, function, c.suffix)
}

func (c *client) invoke(ctx context.Context, function string, inv Invocation) (InvocationResult, error) {
	var result InvocationResult

	httpRes, err := c.request.DoRequest(ctx, http.MethodPost, c.functionURL(function), func(r *resty.Request) *resty.Request {
		r = r.SetBody(inv).SetResult(&result)
		if c.secret != "" {
			r = r.SetHeader("X-Secret-Key", c.secret)
		}
		return r
	})
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", common.ErrBackendUnavailable, function, err)
	}

	if httpRes.StatusCode() >= http.StatusInternalServerError {
		return result, fmt.Errorf("%w: %s answered %d", common.ErrBackendUnavailable, function, httpRes.StatusCode())
	}
	if httpRes.StatusCode() != http.StatusOK {
		// gateway level rejection, the function never ran
		result.StatusCode = httpRes.StatusCode()
	}

	return result, nil
}

func (c *client) GetBank(ctx context.Context, bankID string) (bank models.Bank, err error) {
	if bankID == models.OtherBanksID {
		return models.Bank{ID: models.OtherBanksID, Name: models.OtherBanksName}, nil
	}

	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	banks, err := c.listBanks(ctx)
	if err != nil {
		return bank, err
	}

	for _, b := range banks {
		if b.ID == bankID {
			return b, nil
		}
	}

	return bank, models.NewEntityError(models.EntityBank, bankID, nil)
}

// listBanks reads the whole catalogue, the functions expose no point lookup.
func (c *client) listBanks(ctx context.Context) ([]models.Bank, error) {
	fetch := func(ctx context.Context) ([]models.Bank, error) {
		res, err := c.invoke(ctx, FunctionBanks, Invocation{
			HTTPMethod: http.MethodGet,
			Resource:   resourceBanks,
		})
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			return nil, fmt.Errorf("%w: bank catalogue answered %d", common.ErrBackendUnavailable, res.StatusCode)
		}

		var banks []models.Bank
		if err = res.Decode(&banks); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrBackendUnavailable, err)
		}
		return banks, nil
	}

	if c.caches.Banks == nil {
		return fetch(ctx)
	}

	banks, err := c.caches.Banks.GetOrSet(ctx, cache.GetOrSetOpts[[]models.Bank]{
		Key:      banksCacheKey,
		TTL:      c.cacheTTL,
		Callback: fetch,
	})
	if err != nil && ctx.Err() == nil && !errors.Is(err, common.ErrBackendUnavailable) {
		xlog.Warn(ctx, logMessage, xlog.String("message", "bank cache unavailable"), xlog.Err(err))
		return fetch(ctx)
	}
	return banks, err
}

func (c *client) GetAccount(ctx context.Context, accountID string, customer models.Customer) (account models.Account, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	if accountID == "" {
		return account, models.NewEntityError(models.EntityAccount, accountID, errors.New("empty account id"))
	}

	res, err := c.invoke(ctx, FunctionAccounts, Invocation{
		HTTPMethod: http.MethodGet,
		Resource:   resourceAccount,
		PathParameters: map[string]string{
			"accountId":  accountID,
			"customerId": customer.ID,
		},
		QueryStringParameters: map[string]string{
			"customerType": string(customer.Type),
		},
	})
	if err != nil {
		return account, err
	}

	err = decodeEntity(res, models.EntityAccount, accountID, &account)
	return account, err
}

func (c *client) GetClient(ctx context.Context, clientID string) (result models.Client, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	fetch := func(ctx context.Context) (models.Client, error) {
		var cl models.Client
		res, err := c.invoke(ctx, FunctionSecurity, Invocation{
			HTTPMethod:     http.MethodGet,
			Resource:       resourceClient,
			PathParameters: map[string]string{"clientId": clientID},
		})
		if err != nil {
			return cl, err
		}
		err = decodeEntity(res, models.EntityClient, clientID, &cl)
		return cl, err
	}

	if c.caches.Clients == nil {
		return fetch(ctx)
	}

	result, err = c.caches.Clients.GetOrSet(ctx, cache.GetOrSetOpts[models.Client]{
		Key:      clientID,
		TTL:      c.cacheTTL,
		Callback: fetch,
	})
	if err != nil && ctx.Err() == nil && !errors.Is(err, common.ErrEntityNotFound) && !errors.Is(err, common.ErrBackendUnavailable) {
		xlog.Warn(ctx, logMessage, xlog.String("message", "client cache unavailable"), xlog.Err(err))
		return fetch(ctx)
	}
	return result, err
}

func (c *client) GetCustomer(ctx context.Context, customerID string) (customer models.Customer, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	res, err := c.invoke(ctx, FunctionCustomers, Invocation{
		HTTPMethod:            http.MethodGet,
		Resource:              resourceCustomer,
		PathParameters:        map[string]string{"customerId": customerID},
		QueryStringParameters: map[string]string{"fullData": "false"},
	})
	if err != nil {
		return customer, err
	}

	if err = decodeEntity(res, models.EntityCustomer, customerID, &customer); err != nil {
		return customer, err
	}
	if customer.ID == "" {
		return customer, models.NewEntityError(models.EntityCustomer, customerID, errors.New("empty customer record"))
	}
	return customer, nil
}

func (c *client) GetEmployee(ctx context.Context, employeeID, customerID string) (employee models.Employee, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	res, err := c.invoke(ctx, FunctionCustomers, Invocation{
		HTTPMethod: http.MethodGet,
		Resource:   resourceEmployees,
		PathParameters: map[string]string{
			"customerId": customerID,
			"employeeId": employeeID,
		},
	})
	if err != nil {
		return employee, err
	}

	err = decodeEntity(res, models.EntityEmployee, employeeID, &employee)
	return employee, err
}

func decodeEntity(res InvocationResult, entity models.EntityKind, id string, v any) error {
	if !res.OK() {
		return models.NewEntityError(entity, id, fmt.Errorf("function answered %d", res.StatusCode))
	}
	if err := res.Decode(v); err != nil {
		return models.NewEntityError(entity, id, err)
	}
	return nil
}
