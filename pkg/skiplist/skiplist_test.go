package skiplist

import (
	"bytes"
	"testing"

	"github.com/iamNilotpal/segcore/pkg/bser"
	"github.com/stretchr/testify/require"
)

func TestBuilderSingleInsertPeriod10(t *testing.T) {
	b := NewBuilder(10, bser.Uint32Codec)
	b.Insert(2, 3)

	var out bytes.Buffer
	require.NoError(t, b.Write(&out))
	require.Equal(t, 16, out.Len())
	require.Equal(t, byte(0), out.Bytes()[0])
}

func TestBuilderPeriod3NineU32Inserts(t *testing.T) {
	b := NewBuilder(3, bser.Uint32Codec)
	for i := uint32(0); i < 9; i++ {
		b.Insert(i, i)
	}

	var out bytes.Buffer
	require.NoError(t, b.Write(&out))
	require.Equal(t, 120, out.Len())
	require.Equal(t, byte(0), out.Bytes()[0])
}

func TestBuilderPeriod3NineVoidInserts(t *testing.T) {
	b := NewBuilder(3, bser.VoidCodec)
	for i := uint32(0); i < 9; i++ {
		b.Insert(i, bser.Void{})
	}

	var out bytes.Buffer
	require.NoError(t, b.Write(&out))
	require.Equal(t, 84, out.Len())
	require.Equal(t, byte(0), out.Bytes()[0])
}

func TestReaderSingleEntry(t *testing.T) {
	b := NewBuilder(10, bser.Uint32Codec)
	b.Insert(2, 3)

	var out bytes.Buffer
	require.NoError(t, b.Write(&out))

	r, err := NewReader(out.Bytes(), bser.Uint32Codec)
	require.NoError(t, err)

	docID, val, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(2), docID)
	require.Equal(t, uint32(3), val)

	_, _, ok = r.Next()
	require.False(t, ok)
}

func TestReaderEmpty(t *testing.T) {
	b := NewBuilder[uint32](10, bser.Uint32Codec)

	var out bytes.Buffer
	require.NoError(t, b.Write(&out))

	r, err := NewReader(out.Bytes(), bser.Uint32Codec)
	require.NoError(t, err)

	_, _, ok := r.Next()
	require.False(t, ok)
}

func buildVoidList(t *testing.T, period int, docIDs []uint32) []byte {
	t.Helper()
	b := NewBuilder(period, bser.VoidCodec)
	for _, id := range docIDs {
		b.Insert(id, bser.Void{})
	}
	var out bytes.Buffer
	require.NoError(t, b.Write(&out))
	return out.Bytes()
}

func TestReaderIteratesAllEntriesInOrder(t *testing.T) {
	data := buildVoidList(t, 2, []uint32{2, 3, 5, 7, 9})
	r, err := NewReader(data, bser.VoidCodec)
	require.NoError(t, err)

	var got []uint32
	for {
		id, _, ok := r.Next()
		if !ok {
			break
		}
		got = append(got, id)
	}
	require.Equal(t, []uint32{2, 3, 5, 7, 9}, got)
}

func TestReaderSeekMidway(t *testing.T) {
	data := buildVoidList(t, 2, []uint32{2, 3, 5, 7, 9})
	r, err := NewReader(data, bser.VoidCodec)
	require.NoError(t, err)

	id, _, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(2), id)

	r.Seek(5)
	id, _, ok = r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(5), id)

	id, _, ok = r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(7), id)

	id, _, ok = r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(9), id)

	_, _, ok = r.Next()
	require.False(t, ok)
}

func TestReaderSeekExactMatchPeriod3(t *testing.T) {
	data := buildVoidList(t, 3, []uint32{2, 3, 5, 6})
	r, err := NewReader(data, bser.VoidCodec)
	require.NoError(t, err)

	id, _, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(2), id)

	r.Seek(6)
	id, _, ok = r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(6), id)

	_, _, ok = r.Next()
	require.False(t, ok)
}

func TestReaderSeekPastEnd(t *testing.T) {
	data := buildVoidList(t, 2, []uint32{2, 3, 5, 7, 9})
	r, err := NewReader(data, bser.VoidCodec)
	require.NoError(t, err)

	id, _, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(2), id)

	r.Seek(10)
	_, _, ok = r.Next()
	require.False(t, ok)
}

func TestReaderSeekAcrossMultipleLayers(t *testing.T) {
	docIDs := make([]uint32, 0, 1001)
	for i := uint32(0); i < 1000; i++ {
		docIDs = append(docIDs, i)
	}
	docIDs = append(docIDs, 1004)

	data := buildVoidList(t, 3, docIDs)
	r, err := NewReader(data, bser.VoidCodec)
	require.NoError(t, err)

	id, _, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(0), id)

	r.Seek(431)
	id, _, ok = r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(431), id)

	r.Seek(1003)
	id, _, ok = r.Next()
	require.True(t, ok)
	require.Equal(t, uint32(1004), id)

	_, _, ok = r.Next()
	require.False(t, ok)
}
