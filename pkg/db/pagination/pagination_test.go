package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 12, 9, 30, 0, 123456789, time.UTC)

	token, err := EncodeTimeCursor(createdAt, "1934567890123456789")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotTime, gotID, err := DecodeTimeCursor(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, int64(1934567890123456789), gotID)
}

func TestDecodeTimeCursorRejectsGarbage(t *testing.T) {
	_, _, err := DecodeTimeCursor("not-base64!!")
	assert.Error(t, err)

	token, err := EncodeCursor(Cursor{ID: "abc", CreatedAt: "yesterday"})
	require.NoError(t, err)
	_, _, err = DecodeTimeCursor(token)
	assert.Error(t, err)
}

func TestBuildCursorPageInfo(t *testing.T) {
	type row struct{ ID string }
	extract := func(r *row) string { return r.ID }

	t.Run("empty", func(t *testing.T) {
		info := BuildCursorPageInfo(nil, 10, extract)
		assert.False(t, info.HasMore)
		assert.Empty(t, info.NextPageToken)
	})

	t.Run("exact page", func(t *testing.T) {
		info := BuildCursorPageInfo([]*row{{ID: "a"}, {ID: "b"}}, 2, extract)
		assert.False(t, info.HasMore)
		assert.Equal(t, "b", info.NextPageToken)
	})

	t.Run("extra row", func(t *testing.T) {
		info := BuildCursorPageInfo([]*row{{ID: "a"}, {ID: "b"}, {ID: "c"}}, 2, extract)
		assert.True(t, info.HasMore)
		assert.Equal(t, "b", info.NextPageToken)
	})
}
