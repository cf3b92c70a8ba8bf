package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/miblum/go-fund-notice/internal/common/metrics"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/common/xlog/ctxdata"
	"github.com/miblum/go-fund-notice/internal/models"
	"github.com/miblum/go-fund-notice/internal/monitoring"
)

type ClientOptions struct {
	RetryCount    int
	RetryWaitTime time.Duration
	Timeout       time.Duration
}

// NewRestyClient builds the resty client shared by the outbound clients:
// retries on models.RetryableHTTPCodes and newrelic external segments.
func NewRestyClient(opts ClientOptions) *resty.Client {
	client := resty.New().
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil {
				return err != nil
			}
			return models.IsRetryableHTTPCode(r.StatusCode())
		}).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetTransport(monitoring.NewMiddlewareRoundTripper(http.DefaultTransport))

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return client
}

type RequestWrapper struct {
	client      *resty.Client
	metrics     metrics.Metrics
	serviceName string
	logPrefix   string
}

func NewRequestWrapper(client *resty.Client, metrics metrics.Metrics, serviceName, logPrefix string) *RequestWrapper {
	return &RequestWrapper{
		client:      client,
		metrics:     metrics,
		serviceName: serviceName,
		logPrefix:   logPrefix,
	}
}

// DoRequest sends one request with the correlation id header, records the
// call duration and logs the outcome. Non 2xx responses are returned
// without error, the caller decides what they mean.
func (w *RequestWrapper) DoRequest(ctx context.Context, method, url string, reqFunc func(*resty.Request) *resty.Request) (*resty.Response, error) {
	startTime := time.Now()

	logFields := []xlog.Field{
		xlog.String("url", url),
		xlog.String("method", method),
	}

	xlog.Debug(ctx, w.logPrefix, append(logFields, xlog.String("message", "send request"))...)

	req := w.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json; charset=utf-8").
		SetHeader("X-Correlation-Id", ctxdata.GetCorrelationId(ctx))
	if reqFunc != nil {
		req = reqFunc(req)
	}

	var (
		httpRes *resty.Response
		err     error
	)
	switch method {
	case http.MethodGet:
		httpRes, err = req.Get(url)
	case http.MethodPost:
		httpRes, err = req.Post(url)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	w.record(method, url, startTime, httpRes)

	if err != nil {
		xlog.Warn(ctx, w.logPrefix, append(logFields, xlog.Err(err))...)
		return nil, fmt.Errorf("failed send request: %w", err)
	}

	logFields = append(logFields,
		xlog.Int("httpStatusCode", httpRes.StatusCode()),
		xlog.Duration("elapsed", time.Since(startTime)),
	)

	if httpRes.StatusCode() < 200 || httpRes.StatusCode() >= 300 {
		xlog.Warn(ctx, w.logPrefix, append(logFields, xlog.String("httpResponse", string(httpRes.Body())))...)
	} else {
		xlog.Debug(ctx, w.logPrefix, logFields...)
	}

	return httpRes, nil
}

func (w *RequestWrapper) record(method, url string, startTime time.Time, httpRes *resty.Response) {
	if w.metrics == nil {
		return
	}

	var statusCode, attempts int
	if httpRes != nil {
		statusCode = httpRes.StatusCode()
		if httpRes.Request != nil {
			attempts = httpRes.Request.Attempt
		}
	}

	w.metrics.GetHTTPClientPrometheus().Record(time.Since(startTime), w.serviceName, method, url, statusCode, attempts)
}
