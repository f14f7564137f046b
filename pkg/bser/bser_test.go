package bser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint32RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint32(&buf, 0xDEADBEEF))
	require.Equal(t, 4, buf.Len())

	got, err := ReadUint32(&buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), got)
}

func TestUint64RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint64(&buf, 0x0102030405060708))
	require.Equal(t, 8, buf.Len())

	got, err := ReadUint64(&buf)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), got)
}

func TestBytesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello segcore")
	require.NoError(t, WriteBytes(&buf, payload))
	require.Equal(t, 4+len(payload), buf.Len())

	got, err := ReadBytes(&buf)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestUint32SliceRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	vs := []uint32{1, 2, 3, 4, 5}
	require.NoError(t, WriteUint32Slice(&buf, vs))
	require.Equal(t, 4+4*len(vs), buf.Len())

	got, err := ReadUint32Slice(&buf)
	require.NoError(t, err)
	require.Equal(t, vs, got)
}

func TestEmptyUint32Slice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint32Slice(&buf, nil))
	require.Equal(t, 4, buf.Len())

	got, err := ReadUint32Slice(&buf)
	require.NoError(t, err)
	require.Equal(t, []uint32{}, got)
}

func TestVoidEncodesToZeroBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVoid(&buf, Void{}))
	require.Equal(t, 0, buf.Len())

	got, err := ReadVoid(&buf)
	require.NoError(t, err)
	require.Equal(t, Void{}, got)
}
