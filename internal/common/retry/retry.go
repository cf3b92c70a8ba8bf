package retry

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/config"
)

const DefaultMaxRetries uint64 = 3

type Retryer interface {
	Retry(ctx context.Context, operation, onExhausted func() error) error
	StopRetryWithErr(err error) error
}

type exponentialBackoff struct {
	ebCfg config.ExponentialBackOffConfig
}

/*
NewExponentialBackOff builds a Retryer backed by an exponential backoff.

Example:

	Retry(ctx, func() error { return upload() }, func() error { return recordFailure() })
*/
func NewExponentialBackOff(ebCfg config.ExponentialBackOffConfig) Retryer {
	if ebCfg.MaxBackoffTime < 0 {
		ebCfg.MaxBackoffTime = backoff.DefaultMaxElapsedTime
	}

	if ebCfg.BackoffMultiplier <= 0 {
		ebCfg.BackoffMultiplier = backoff.DefaultMultiplier
	}

	if ebCfg.MaxRetries == 0 {
		ebCfg.MaxRetries = DefaultMaxRetries
	}

	return &exponentialBackoff{ebCfg: ebCfg}
}

/*
Retry keeps calling operation until it succeeds, returns a permanent error
or the retry budget runs out. When it gives up onExhausted is called and its
error is returned; a nil onExhausted returns the last operation error.
*/
func (r *exponentialBackoff) Retry(ctx context.Context, operation, onExhausted func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = r.ebCfg.MaxBackoffTime
	eb.Multiplier = r.ebCfg.BackoffMultiplier

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(eb, r.ebCfg.MaxRetries), ctx))
	if err == nil {
		return nil
	}

	xlog.Debugf(ctx, "retry exhausted with err: %v", err)
	if onExhausted == nil {
		return err
	}
	return onExhausted()
}

// StopRetryWithErr marks err as permanent, call it inside operation.
func (r *exponentialBackoff) StopRetryWithErr(err error) error {
	return backoff.Permanent(err)
}
