package txdetail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/miblum/go-fund-notice/internal/common/httpclient"
	"github.com/miblum/go-fund-notice/internal/common/metrics"
	"github.com/miblum/go-fund-notice/internal/config"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

const (
	logMessage  = "[TXDETAIL-CLIENT]"
	serviceName = "transaction-detail"
)

// Detail is the part of the external transaction record this worker reads.
type Detail struct {
	TransactionID         string `json:"TransactionId"`
	TransactionTypeDetail string `json:"TransactionTypeDetail"`
	Status                string `json:"Status,omitempty"`
}

type response struct {
	Result []Detail `json:"Result"`
}

// Client reads transactions from the external transaction-detail API.
type Client interface {
	// GetDetail returns the first result for externalID, ok is false when
	// the API answered with an empty list.
	GetDetail(ctx context.Context, externalID string) (detail Detail, ok bool, err error)
}

type client struct {
	baseURL  string
	username string
	password string
	token    string
	request  *httpclient.RequestWrapper
}

func New(cfg config.TransactionDetailConfig, m metrics.Metrics) Client {
	restyClient := httpclient.NewRestyClient(httpclient.ClientOptions{
		RetryCount:    cfg.RetryCount,
		RetryWaitTime: time.Duration(cfg.RetryWaitTime) * time.Millisecond,
		Timeout:       cfg.Timeout,
	})

	return &client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		token:    cfg.Token,
		request:  httpclient.NewRequestWrapper(restyClient, m, serviceName, logMessage),
	}
}

func (c *client) GetDetail(ctx context.Context, externalID string) (detail Detail, ok bool, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err))
	}()

	endpoint := fmt.Sprintf("%s/transactions/%s", c.baseURL, url.PathEscape(externalID))

	httpRes, err := c.request.DoRequest(ctx, http.MethodGet, endpoint, func(r *resty.Request) *resty.Request {
		if c.token != "" {
			return r.SetAuthToken(c.token)
		}
		return r.SetBasicAuth(c.username, c.password)
	})
	if err != nil {
		return detail, false, err
	}

	if httpRes.StatusCode() != http.StatusOK {
		return detail, false, fmt.Errorf("invalid response http code: got %d, body: %s",
			httpRes.StatusCode(), string(httpRes.Body()))
	}

	var res response
	if err = json.Unmarshal(httpRes.Body(), &res); err != nil {
		return detail, false, fmt.Errorf("error unmarshal response: %w", err)
	}

	if len(res.Result) == 0 {
		return detail, false, nil
	}

	return res.Result[0], true, nil
}
