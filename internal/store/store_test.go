package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// memReader adapts a plain []byte to RandomAccessReader for tests.
type memReader struct {
	data []byte
}

func (m *memReader) ReadBytes(from, to int64) ([]byte, error) {
	return m.data[from:to], nil
}

func (m *memReader) Size() int64 {
	return int64(len(m.data))
}

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 3)

	docs := []Document{
		{{Field: "title", Value: "doc zero"}},
		{{Field: "title", Value: "doc one"}},
		{{Field: "title", Value: "doc two"}},
		{{Field: "title", Value: "doc three"}},
		{{Field: "title", Value: "doc four"}},
	}
	for _, d := range docs {
		require.NoError(t, w.StoreDoc(d))
	}
	require.NoError(t, w.Close())

	r, err := NewReader(&memReader{data: buf.Bytes()})
	require.NoError(t, err)
	require.Equal(t, uint32(len(docs)), r.DocCount())

	for i, want := range docs {
		got, err := r.GetDoc(uint32(i))
		require.NoError(t, err)
		require.Equal(t, want[0].Field, got[0].Field)
		require.Equal(t, want[0].Value, got[0].Value)
	}
}

func TestGetDocOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 2)
	require.NoError(t, w.StoreDoc(Document{{Field: "a", Value: "b"}}))
	require.NoError(t, w.Close())

	r, err := NewReader(&memReader{data: buf.Bytes()})
	require.NoError(t, err)

	_, err = r.GetDoc(5)
	require.Error(t, err)
}
