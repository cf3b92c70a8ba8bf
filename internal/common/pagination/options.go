package pagination

import (
	"fmt"
)

const (
	DefaultLimit = 100

	// OverFetchOffset is the extra row read to know whether a next page exists.
	OverFetchOffset = 1
)

// Options contains pagination parameters
type Options struct {
	Limit  int
	Cursor string
}

// BuildCursorAndLimit builds cursor and limit with validation. The returned
// limit already includes the over-fetch row.
func (o *Options) BuildCursorAndLimit() (*Cursor, int, error) {
	limit := o.Limit

	if limit == 0 {
		limit = DefaultLimit
	}

	if limit < 0 {
		return nil, 0, fmt.Errorf("the limit must be greater than zero")
	}

	limit += OverFetchOffset

	if o.Cursor == "" {
		return nil, limit, nil
	}

	cursor, err := DecodeCursor(o.Cursor)
	if err != nil {
		return nil, 0, err
	}

	return cursor, limit, nil
}
