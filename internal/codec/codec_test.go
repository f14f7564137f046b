package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ids := []uint32{1, 2, 3, 100, 101, 5000, 1 << 20}

	words, err := Encode(ids)
	require.NoError(t, err)
	require.NotEmpty(t, words)

	got, err := Decode(words)
	require.NoError(t, err)
	require.Equal(t, ids, got)
}

func TestEncodeDecodeEmpty(t *testing.T) {
	words, err := Encode(nil)
	require.NoError(t, err)

	got, err := Decode(words)
	require.NoError(t, err)
	require.Empty(t, got)
}
