package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/segcore/internal/search"
	"github.com/iamNilotpal/segcore/internal/store"
	"github.com/iamNilotpal/segcore/pkg/options"
	"github.com/iamNilotpal/segcore/pkg/seglog"
)

func newTestEngine(t *testing.T, maxSegmentDocs int) *Engine {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	opts.BlockCacheBlocks = options.MinBlockCacheBlocks
	opts.StoreChunkSize = 2
	opts.MaxSegmentDocs = maxSegmentDocs

	e, err := New(context.Background(), &Config{Options: &opts, Logger: seglog.Nop()})
	require.NoError(t, err)
	return e
}

func TestEngineAddDocAndTermThenFlushIsSearchable(t *testing.T) {
	e := newTestEngine(t, 100)
	defer e.Close()

	docID, err := e.AddDoc(store.Document{{Field: "title", Value: "hello world"}})
	require.NoError(t, err)
	require.EqualValues(t, 0, docID)

	require.NoError(t, e.AddTerm([]byte("hello"), 1, []uint32{0}))
	require.NoError(t, e.Flush())

	var counter search.CountCollector
	require.NoError(t, e.Search([][]byte{[]byte("hello")}, &counter))
	require.Equal(t, 1, counter.Count())
}

func TestEngineRotatesAtMaxSegmentDocs(t *testing.T) {
	e := newTestEngine(t, 1)
	defer e.Close()

	docID1, err := e.AddDoc(store.Document{{Field: "f", Value: 1}})
	require.NoError(t, err)
	require.NoError(t, e.AddTerm([]byte("one"), 1, []uint32{docID1}))

	// This AddDoc call exceeds MaxSegmentDocs for the first segment, so it
	// rotates: the first segment is closed and registered, and this second
	// document starts a brand new segment at DocId 0 again.
	docID2, err := e.AddDoc(store.Document{{Field: "f", Value: 2}})
	require.NoError(t, err)
	require.EqualValues(t, 0, docID2)
	require.NoError(t, e.AddTerm([]byte("two"), 1, []uint32{docID2}))
	require.NoError(t, e.Flush())

	var counter search.CountCollector
	require.NoError(t, e.Search([][]byte{[]byte("one"), []byte("two")}, &counter))
	require.Equal(t, 2, counter.Count())
}

func TestEngineClosedRejectsOperations(t *testing.T) {
	e := newTestEngine(t, 100)
	require.NoError(t, e.Close())

	_, err := e.AddDoc(store.Document{{Field: "f", Value: 1}})
	require.ErrorIs(t, err, ErrEngineClosed)

	err = e.Close()
	require.ErrorIs(t, err, ErrEngineClosed)
}
