package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "12345", CreatedAt: "2024-03-15T10:30:00.123456789Z"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "12345", cursor.ID)
	assert.Equal(t, "2024-03-15T10:30:00.123456789Z", cursor.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not-base64!!!")
	assert.Error(t, err)
}

func TestParsePageSize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty falls back", raw: "", want: 50},
		{name: "valid", raw: "25", want: 25},
		{name: "clamped to max", raw: "1000", want: 200},
		{name: "zero falls back", raw: "0", want: 50},
		{name: "negative falls back", raw: "-5", want: 50},
		{name: "garbage falls back", raw: "abc", want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePageSize(tt.raw, 50, 200))
		})
	}
}

func TestBuildCursorPageInfo(t *testing.T) {
	type row struct{ ID string }
	extract := func(r *row) string { return r.ID }

	t.Run("empty", func(t *testing.T) {
		info := BuildCursorPageInfo([]*row{}, 2, extract)
		assert.False(t, info.HasMore)
		assert.Empty(t, info.NextPageToken)
	})

	t.Run("has more", func(t *testing.T) {
		info := BuildCursorPageInfo([]*row{{ID: "a"}, {ID: "b"}, {ID: "c"}}, 2, extract)
		assert.True(t, info.HasMore)
		assert.Equal(t, "b", info.NextPageToken)
	})

	t.Run("last page", func(t *testing.T) {
		info := BuildCursorPageInfo([]*row{{ID: "a"}}, 2, extract)
		assert.False(t, info.HasMore)
		assert.Equal(t, "a", info.NextPageToken)
	})
}
