package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 1, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(entryDate, createdAt, "3f1c9a")
	assert.NotEmpty(t, token)

	cur, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, entryDate, cur.EntryDate)
	assert.Equal(t, createdAt, cur.CreatedAt)
	assert.Equal(t, "3f1c9a", cur.EntryID)

	now := time.Now().UTC()
	cur, err = DecodeToken(EncodeToken(now, now, "x"))
	require.NoError(t, err)
	assert.True(t, now.Equal(cur.CreatedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2024-01-15T00:00:00Z")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("notadate|2024-01-15T00:00:00Z|id")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2024-01-15T00:00:00Z|nope|id")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 7, NormalizeLimit(7))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
}
