package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/miblum/go-fund-notice/internal/common/retry"
	"github.com/miblum/go-fund-notice/internal/common/xlog"
	"github.com/miblum/go-fund-notice/internal/config"
)

func init() {
	xlog.InitForTest()
}

func fastConfig(maxRetries uint64) config.ExponentialBackOffConfig {
	return config.ExponentialBackOffConfig{
		MaxRetries:        maxRetries,
		MaxBackoffTime:    time.Second,
		BackoffMultiplier: 1.1,
	}
}

func Test_Retry_ExponentialBackoff(t *testing.T) {
	t.Run("failed - exhausted callback error returned", func(t *testing.T) {
		var exhaustedCalled, attempts int
		retryer := retry.NewExponentialBackOff(fastConfig(1))

		err := retryer.Retry(context.Background(),
			func() error {
				attempts++
				return assert.AnError
			},
			func() error {
				exhaustedCalled++
				return assert.AnError
			},
		)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 2, attempts)
		assert.Equal(t, 1, exhaustedCalled)
	})

	t.Run("failed - exhausted callback swallows error", func(t *testing.T) {
		var exhaustedCalled int
		retryer := retry.NewExponentialBackOff(fastConfig(1))

		err := retryer.Retry(context.Background(),
			func() error { return assert.AnError },
			func() error {
				exhaustedCalled++
				return nil
			},
		)
		assert.NoError(t, err)
		assert.Equal(t, 1, exhaustedCalled)
	})

	t.Run("failed - nil callback returns last error", func(t *testing.T) {
		retryer := retry.NewExponentialBackOff(fastConfig(1))

		err := retryer.Retry(context.Background(), func() error { return assert.AnError }, nil)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("success - callback not called", func(t *testing.T) {
		var exhaustedCalled int
		retryer := retry.NewExponentialBackOff(config.ExponentialBackOffConfig{})

		err := retryer.Retry(context.Background(),
			func() error { return nil },
			func() error {
				exhaustedCalled++
				return nil
			},
		)
		assert.NoError(t, err)
		assert.Equal(t, 0, exhaustedCalled)
	})

	t.Run("success - force stop retrying", func(t *testing.T) {
		var exhaustedCalled, attempts int
		retryer := retry.NewExponentialBackOff(fastConfig(5))

		err := retryer.Retry(context.Background(),
			func() error {
				attempts++
				return retryer.StopRetryWithErr(assert.AnError)
			},
			func() error {
				exhaustedCalled++
				return nil
			},
		)
		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, exhaustedCalled)
	})
}
