package localstorage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

type badgerStorage[T any] struct {
	db *badger.DB

	// dir is empty for in-memory storages
	dir string
}

type options struct {
	dir      string
	inMemory bool
}

type Option func(*options)

// WithDir places the database under dir instead of the OS temp dir.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithInMemory keeps everything in memory, nothing survives Close.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// NewBadgerStorage opens bucket as its own badger database under the
// configured dir, so several buckets never share a value log.
func NewBadgerStorage[T any](bucket string, opts ...Option) (LocalStorage[T], error) {
	o := &options{dir: os.TempDir()}
	for _, opt := range opts {
		opt(o)
	}

	s := &badgerStorage[T]{}
	bOpts := badger.DefaultOptions("").WithInMemory(true)
	if !o.inMemory {
		s.dir = filepath.Join(o.dir, bucket)
		bOpts = badger.DefaultOptions(s.dir).WithNumVersionsToKeep(1)
	}
	bOpts = bOpts.WithLogger(nil)

	db, err := badger.Open(bOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open localstorage %s: %w", bucket, err)
	}
	s.db = db

	return s, nil
}

// read decodes key inside txn. found is false when the key is absent.
func (b *badgerStorage[T]) read(txn *badger.Txn, key string) (val T, found bool, err error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return val, false, nil
	}
	if err != nil {
		return val, false, err
	}

	err = item.Value(func(raw []byte) error {
		return Unmarshal(raw, &val)
	})
	if err != nil {
		return val, false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return val, true, nil
}

func (b *badgerStorage[T]) write(txn *badger.Txn, key string, value T) error {
	raw, err := Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), raw)
}

func (b *badgerStorage[T]) Get(key string) (val T, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		val, _, err = b.read(txn, key)
		return err
	})
	if err != nil {
		return val, fmt.Errorf("failed to get value from localstorage: %w", err)
	}

	return val, nil
}

func (b *badgerStorage[T]) Set(key string, value T) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return b.write(txn, key, value)
	})
	if err != nil {
		return fmt.Errorf("failed to set value to localstorage: %w", err)
	}

	return nil
}

// Update runs fn and stores its result in the same transaction. keep false
// removes the key. A concurrent write to key fails with badger.ErrConflict.
func (b *badgerStorage[T]) Update(key string, fn UpdateFunc[T]) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		current, found, err := b.read(txn, key)
		if err != nil {
			return err
		}

		next, keep, err := fn(current, found)
		if err != nil {
			return err
		}

		switch {
		case keep:
			return b.write(txn, key, next)
		case found:
			return txn.Delete([]byte(key))
		default:
			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("failed to update %s in localstorage: %w", key, err)
	}

	return nil
}

func (b *badgerStorage[T]) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete value from localstorage: %w", err)
	}

	return nil
}

func (b *badgerStorage[T]) ForEach(f func(key string, value T) error) error {
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().KeyCopy(nil))

			val, _, err := b.read(txn, key)
			if err != nil {
				return err
			}

			if err = f(key, val); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to iterate over localstorage: %w", err)
	}

	return nil
}

func (b *badgerStorage[T]) Close() error {
	return b.db.Close()
}

func (b *badgerStorage[T]) Clean() error {
	if b.dir == "" {
		return b.db.DropAll()
	}
	return os.RemoveAll(b.dir)
}
