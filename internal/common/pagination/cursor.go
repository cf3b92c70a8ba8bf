package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const cursorSeparator = "|"

// Cursor is the keyset position of the last row of a page, ordered by
// creation date then id, both descending.
type Cursor struct {
	CreationDate int64
	ID           string
}

func NewCursor(creationDate int64, id string) *Cursor {
	return &Cursor{
		CreationDate: creationDate,
		ID:           id,
	}
}

func (c *Cursor) Encode() string {
	raw := strconv.FormatInt(c.CreationDate, 10) + cursorSeparator + c.ID
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func (c *Cursor) String() string {
	return c.Encode()
}

// DecodeCursor decodes base64 encoded cursor string
func DecodeCursor(cursor string) (*Cursor, error) {
	if cursor == "" {
		return nil, fmt.Errorf("cursor is empty")
	}

	decodedBytes, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cursor string: %w", err)
	}

	creationDate, id, ok := strings.Cut(string(decodedBytes), cursorSeparator)
	if !ok || id == "" {
		return nil, fmt.Errorf("failed to parse cursor string: invalid format")
	}

	ms, err := strconv.ParseInt(creationDate, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cursor string: %w", err)
	}

	return NewCursor(ms, id), nil
}
