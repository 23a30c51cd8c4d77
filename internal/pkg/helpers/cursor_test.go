package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
)

func TestCursorRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		cursor Cursor
	}{
		{"Simple", Cursor{Key: 42, ID: 7}},
		{"NegativeKey", Cursor{Key: -1, ID: 1}},
		{"LargeValues", Cursor{Key: time.Now().UnixNano(), ID: 1<<62 - 1}},
		{"Zero", Cursor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeCursor(tt.cursor.Encode())
			require.NoError(t, err)
			require.NotNil(t, decoded)
			assert.Equal(t, tt.cursor, *decoded)
		})
	}
}

func TestDecodeCursor(t *testing.T) {
	t.Run("EmptyTokenMeansStartFromTop", func(t *testing.T) {
		cursor, err := DecodeCursor("")
		require.NoError(t, err)
		assert.Nil(t, cursor)
	})

	t.Run("MalformedTokens", func(t *testing.T) {
		for _, token := range []string{"not base64!!", "aGVsbG8", "MTI", "YTpi"} {
			_, err := DecodeCursor(token)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest, "token %q", token)
		}
	})
}

func TestTimeCursor(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 30, 0, 123456789, time.UTC)
	cursor := NewTimeCursor(created, 5)

	assert.Equal(t, created.UnixNano(), cursor.Key)
	assert.True(t, cursor.Time().Equal(created))
}
