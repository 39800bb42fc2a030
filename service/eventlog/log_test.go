package eventlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_ReadSince(t *testing.T) {
	log := New[string]()
	log.Append("a", "b")

	items, cursor, err := log.ReadSince(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)

	// Nothing new yet: same cursor, no items, no error.
	items, next, err := log.ReadSince(cursor)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, cursor, next)

	log.Append("c")
	items, _, err = log.ReadSince(cursor)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, items)
}

func TestLog_ReadClonesEntries(t *testing.T) {
	log := New[string]()
	log.Append("a")
	items, _, err := log.ReadSince(0)
	require.NoError(t, err)
	items[0] = "mutated"

	again, _, err := log.ReadSince(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again)
}

func TestLog_RetentionTruncation(t *testing.T) {
	log := New[int](WithRetention(2))
	log.Append(1, 2, 3, 4, 5)
	assert.Equal(t, 2, log.Len())

	_, resync, err := log.ReadSince(0)
	require.Error(t, err)
	var truncated *TruncatedError
	require.True(t, errors.As(err, &truncated))
	assert.Equal(t, int64(3), truncated.Missed)

	// The returned cursor points at the oldest retained entry.
	items, _, err := log.ReadSince(resync)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, items)
}

func TestLog_End(t *testing.T) {
	log := New[int](WithRetention(3))
	assert.Equal(t, Cursor(0), log.End())
	log.Append(1, 2, 3, 4)
	assert.Equal(t, Cursor(4), log.End())

	items, _, err := log.ReadSince(log.End())
	require.NoError(t, err)
	assert.Empty(t, items)
}
