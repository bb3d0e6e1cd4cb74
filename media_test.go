package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	t.Parallel()

	// BLAKE3 of empty input, pinning the hash algorithm.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dee36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Sum(nil).String())
	assert.NotEqual(t, Sum([]byte("a")), Sum([]byte("b")))
}

func TestNewHasher(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	_, err := h.Write([]byte("stream"))
	require.NoError(t, err)
	assert.Equal(t, Sum([]byte("stream")), Hash(h.Sum(nil)))
}

func TestHashTextRoundTrip(t *testing.T) {
	t.Parallel()

	h := Sum([]byte("content"))
	text, err := h.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, h.String(), string(text))

	var got Hash
	require.NoError(t, got.UnmarshalText(text))
	assert.Equal(t, h, got)
}

func TestHashUnmarshalTextInvalid(t *testing.T) {
	t.Parallel()

	var h Hash
	assert.Error(t, h.UnmarshalText([]byte("abc")), "too short")
	assert.Error(t, h.UnmarshalText([]byte(strings.Repeat("zz", HashSize))), "not hex")
}

func TestTypeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TypeApp.Valid())
	assert.True(t, TypeComic.Valid())
	assert.False(t, Type("").Valid())
	assert.False(t, Type("video").Valid())
}
