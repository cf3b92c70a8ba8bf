package localstorage

import (
	"encoding/json"
)

// LocalStorage keeps state for this worker only. The notice worker uses it
// as the failure ledger between a batch and a later retry run.
type LocalStorage[T any] interface {
	// Get returns the zero value when key is not found.
	Get(key string) (T, error)

	Set(key string, value T) error

	Delete(key string) error

	// Update reads key and writes fn's result atomically.
	Update(key string, fn UpdateFunc[T]) error

	// ForEach iterates every entry in key order.
	ForEach(func(key string, value T) error) error

	Close() error

	// Clean removes the files backing the storage.
	Clean() error
}

// UpdateFunc receives the stored value (found false when absent) and returns
// the value to store. keep false deletes the key.
type UpdateFunc[T any] func(current T, found bool) (next T, keep bool, err error)

type (
	MarshalFunc   func(v any) ([]byte, error)
	UnmarshalFunc func(data []byte, v any) error
)

var (
	Marshal   MarshalFunc   = json.Marshal
	Unmarshal UnmarshalFunc = json.Unmarshal
)
