package helpers

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
)

// Cursor marks a position in a keyset-ordered listing. Key is the primary
// sort value (creation time in unix nanos for recency feeds, the ranking
// score for trending) and ID breaks ties. The encoded form is opaque to
// clients; pages resume strictly after it, so concatenated pages never
// duplicate or drop items.
type Cursor struct {
	Key int64
	ID  int64
}

// NewTimeCursor builds a cursor keyed on a creation timestamp.
func NewTimeCursor(t time.Time, id int64) Cursor {
	return Cursor{Key: t.UnixNano(), ID: id}
}

// Time interprets the cursor key as a creation timestamp.
func (c Cursor) Time() time.Time {
	return time.Unix(0, c.Key)
}

// Encode serializes the cursor into an opaque page token.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d:%d", c.Key, c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a page token produced by Encode. An empty token yields
// a nil cursor, meaning "start from the top of the listing".
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, apperrors.NewBadRequestError("malformed page cursor")
	}

	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return nil, apperrors.NewBadRequestError("malformed page cursor")
	}

	key, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, apperrors.NewBadRequestError("malformed page cursor")
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, apperrors.NewBadRequestError("malformed page cursor")
	}

	return &Cursor{Key: key, ID: id}, nil
}
