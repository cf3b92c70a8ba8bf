package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/miblum/go-fund-notice/internal/common/xlog"
)

const logPrefix = "[CACHE]"

// Client caches reference data (banks, funds, clients) between notices of
// the same batch and across runs when redis is available.
type Client[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, object T, ttl time.Duration) error
	GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error)
}

var (
	ErrNotExists           = errors.New("key not exists on cache storage")
	ErrCallbackNotProvided = errors.New("callback not provided")
	ErrInvalidType         = errors.New("invalid type result")
)

// defaultLoadTimeout bounds a shared load when GetOrSetOpts.LoadTimeout is unset.
const defaultLoadTimeout = 30 * time.Second

type GetOrSetOpts[T any] struct {
	Key string
	TTL time.Duration
	// Callback loads the value on a miss. Its context carries the caller's
	// values but not its deadline, it ends after LoadTimeout.
	Callback    func(ctx context.Context) (T, error)
	LoadTimeout time.Duration
}

// New returns a redis backed client when rdb is set, otherwise an in-memory one.
func New[T any](rdb *redis.Client, namespace string) Client[T] {
	if rdb == nil {
		return NewInMemoryClient[T](namespace)
	}
	return NewRedisClient[T](rdb, namespace)
}

func buildKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

// loader backs GetOrSet for both clients. Workers resolving the same bank or
// fund at once share a single callback, and each of them stops waiting when
// its own context ends.
type loader[T any] struct {
	group singleflight.Group
}

// getOrSet reads key from c and falls back to opts.Callback on a miss. When
// the cache itself fails the value is still loaded but not written back.
func (l *loader[T]) getOrSet(ctx context.Context, c Client[T], opts GetOrSetOpts[T]) (result T, err error) {
	if opts.Callback == nil {
		return result, ErrCallbackNotProvided
	}

	obj, err := c.Get(ctx, opts.Key)
	if err == nil {
		return obj, nil
	}

	writeBack := errors.Is(err, ErrNotExists)
	if !writeBack {
		xlog.Warn(ctx, logPrefix+" read failed, loading from source",
			xlog.String("key", opts.Key),
			xlog.Err(err))
	}

	loadTimeout := opts.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = defaultLoadTimeout
	}

	ch := l.group.DoChan(opts.Key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		loaded, err := opts.Callback(loadCtx)
		if err != nil {
			return loaded, err
		}

		if writeBack {
			if err := c.Set(loadCtx, opts.Key, loaded, opts.TTL); err != nil {
				xlog.Warn(loadCtx, logPrefix+" write failed",
					xlog.String("key", opts.Key),
					xlog.Err(err))
			}
		}
		return loaded, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return result, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return result, res.Err
	}

	result, ok := res.Val.(T)
	if !ok {
		return result, ErrInvalidType
	}

	return result, nil
}
