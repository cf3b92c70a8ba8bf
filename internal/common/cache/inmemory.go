package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type InMemoryClient[T any] struct {
	loader[T]
	namespace string
	cache     sync.Map
	done      chan struct{}
	closeOnce sync.Once
}

type cachedValue struct {
	Value []byte
	ExpAt time.Time
}

func (cv *cachedValue) expired() bool {
	return !cv.ExpAt.IsZero() && cv.ExpAt.Before(time.Now())
}

func NewInMemoryClient[T any](namespace string) *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		namespace: namespace,
		done:      make(chan struct{}),
	}

	go m.backgroundCleaner()
	return m
}

func (m *InMemoryClient[T]) Get(_ context.Context, key string) (result T, err error) {
	key = buildKey(m.namespace, key)

	valInterface, found := m.cache.Load(key)
	if !found {
		return result, ErrNotExists
	}

	val, ok := valInterface.(*cachedValue)
	if !ok {
		return result, ErrInvalidType
	}

	if val.expired() {
		m.cache.Delete(key)
		return result, ErrNotExists
	}

	// values are stored encoded so callers never share a mutable copy
	if err = json.Unmarshal(val.Value, &result); err != nil {
		return result, err
	}

	return result, nil
}

// Set stores object, a zero ttl never expires.
func (m *InMemoryClient[T]) Set(_ context.Context, key string, object T, ttl time.Duration) error {
	val, err := json.Marshal(object)
	if err != nil {
		return err
	}

	cv := &cachedValue{Value: val}
	if ttl > 0 {
		cv.ExpAt = time.Now().Add(ttl)
	}

	m.cache.Store(buildKey(m.namespace, key), cv)
	return nil
}

func (m *InMemoryClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error) {
	return m.getOrSet(ctx, m, opts)
}

func (m *InMemoryClient[T]) backgroundCleaner() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cache.Range(func(key, value any) bool {
				cv, ok := value.(*cachedValue)
				if !ok || cv.expired() {
					m.cache.Delete(key)
				}
				return true
			})
		case <-m.done:
			return
		}
	}
}

// Close stops the background cleaner.
func (m *InMemoryClient[T]) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}
