// Package pagination implements keyset cursors over trips ordered by
// begin_time DESC, traj_id DESC.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidCursor is returned for cursors that do not decode.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor points at the last trip of a page.
type Cursor struct {
	ID        int64 `json:"id"`
	BeginTime int64 `json:"begin_time"`
}

// Encode returns the cursor as unpadded URL-safe base64.
func (c *Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor decodes a cursor from Encode. Padded input is accepted. An
// empty string yields a nil cursor.
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidCursor, err)
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, errors.Join(ErrInvalidCursor, err)
	}
	if cursor.ID <= 0 || cursor.BeginTime < 0 {
		return nil, ErrInvalidCursor
	}

	return &cursor, nil
}

// NormalizeLimit clamps limit to [1, MaxLimit], using DefaultLimit for
// non-positive values.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Page cuts items fetched with limit+1 down to limit and reports whether
// another page exists.
func Page[T any](items []T, limit int) ([]T, bool) {
	if len(items) > limit {
		return items[:limit], true
	}
	return items, false
}
