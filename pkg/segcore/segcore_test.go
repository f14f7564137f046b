package segcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/segcore/internal/search"
	"github.com/iamNilotpal/segcore/internal/store"
	"github.com/iamNilotpal/segcore/pkg/options"
)

func TestInstanceAddSearchGetDoc(t *testing.T) {
	inst, err := NewInstance(
		context.Background(), "segcore-test",
		options.WithDataDir(t.TempDir()),
		options.WithBlockCacheBlocks(options.MinBlockCacheBlocks),
		options.WithStoreChunkSize(4),
	)
	require.NoError(t, err)
	defer inst.Close()

	docID, err := inst.AddDocument(store.Document{{Field: "title", Value: "red fox"}})
	require.NoError(t, err)
	require.NoError(t, inst.AddTerm([]byte("fox"), 1, []uint32{docID}))
	require.NoError(t, inst.Flush())

	var counter search.CountCollector
	require.NoError(t, inst.Search([][]byte{[]byte("fox")}, &counter))
	require.Equal(t, 1, counter.Count())

	var slice search.SliceCollector
	require.NoError(t, inst.Search([][]byte{[]byte("fox")}, &slice))
	require.Len(t, slice.Matches, 1)

	doc, err := inst.GetDoc(slice.Matches[0])
	require.NoError(t, err)
	require.Equal(t, store.Document{{Field: "title", Value: "red fox"}}, doc)
}

func TestNewInstanceReopensExistingDataDir(t *testing.T) {
	dir := t.TempDir()

	inst1, err := NewInstance(context.Background(), "segcore-test", options.WithDataDir(dir))
	require.NoError(t, err)

	docID, err := inst1.AddDocument(store.Document{{Field: "title", Value: "a"}})
	require.NoError(t, err)
	require.NoError(t, inst1.AddTerm([]byte("a"), 1, []uint32{docID}))
	require.NoError(t, inst1.Close())

	inst2, err := NewInstance(context.Background(), "segcore-test", options.WithDataDir(dir))
	require.NoError(t, err)
	defer inst2.Close()

	var counter search.CountCollector
	require.NoError(t, inst2.Search([][]byte{[]byte("a")}, &counter))
	require.Equal(t, 1, counter.Count())
}

// TestDocAddressSurvivesRestart guards against DocAddress naming a segment
// by an in-process slice position: a Searcher rebuilt from scratch (as
// happens on every restart) may assign the same segment a different
// ordinal than it had before, so a DocAddress obtained before the restart
// must still resolve to the right document after it.
func TestDocAddressSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	inst1, err := NewInstance(context.Background(), "segcore-test", options.WithDataDir(dir))
	require.NoError(t, err)

	docID, err := inst1.AddDocument(store.Document{{Field: "title", Value: "blue whale"}})
	require.NoError(t, err)
	require.NoError(t, inst1.AddTerm([]byte("whale"), 1, []uint32{docID}))
	require.NoError(t, inst1.Flush())

	var slice search.SliceCollector
	require.NoError(t, inst1.Search([][]byte{[]byte("whale")}, &slice))
	require.Len(t, slice.Matches, 1)
	addr := slice.Matches[0]
	require.NoError(t, inst1.Close())

	inst2, err := NewInstance(context.Background(), "segcore-test", options.WithDataDir(dir))
	require.NoError(t, err)
	defer inst2.Close()

	doc, err := inst2.GetDoc(addr)
	require.NoError(t, err)
	require.Equal(t, store.Document{{Field: "title", Value: "blue whale"}}, doc)
}
