package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/segcore/internal/directory"
	"github.com/iamNilotpal/segcore/internal/segment"
	"github.com/iamNilotpal/segcore/internal/store"
	"github.com/iamNilotpal/segcore/pkg/options"
	"github.com/iamNilotpal/segcore/pkg/seglog"
)

func newTestDir(t *testing.T) directory.Directory {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.BlockCacheBlocks = options.MinBlockCacheBlocks
	d, err := directory.NewFsDirectory(t.TempDir(), opts, seglog.Nop())
	require.NoError(t, err)
	return d
}

func buildSegment(t *testing.T, dir directory.Directory, docs []store.Document, postings map[string][]uint32) segment.Id {
	t.Helper()
	id := segment.New().ID

	w, err := segment.NewWriter(dir, id, 8, seglog.Nop())
	require.NoError(t, err)

	for i, d := range docs {
		require.NoError(t, w.StoreDoc(uint32(i), d))
	}

	for _, term := range []string{"cat", "dog"} {
		ids, ok := postings[term]
		if !ok {
			continue
		}
		require.NoError(t, w.NewTerm([]byte(term), uint32(len(ids))))
		require.NoError(t, w.WriteDocs(ids))
	}

	require.NoError(t, w.Close())
	return id
}

func TestSearcherUnionAcrossSegmentsAndTerms(t *testing.T) {
	dir := newTestDir(t)

	seg1 := buildSegment(t, dir,
		[]store.Document{
			{{Field: "title", Value: "a cat nap"}},
			{{Field: "title", Value: "a dog run"}},
		},
		map[string][]uint32{"cat": {0}, "dog": {0, 1}},
	)
	seg2 := buildSegment(t, dir,
		[]store.Document{
			{{Field: "title", Value: "cat and dog"}},
		},
		map[string][]uint32{"cat": {0}, "dog": {0}},
	)

	s := New(seglog.Nop())
	require.NoError(t, s.AddSegment(dir, seg1))
	require.NoError(t, s.AddSegment(dir, seg2))

	var collector SliceCollector
	require.NoError(t, s.Search([][]byte{[]byte("cat"), []byte("dog")}, &collector))

	// seg1: cat -> [0], dog -> [0,1]; seg2: cat -> [0], dog -> [0]
	require.Equal(t, []DocAddress{
		{SegmentID: seg1, DocId: 0},
		{SegmentID: seg1, DocId: 0},
		{SegmentID: seg1, DocId: 1},
		{SegmentID: seg2, DocId: 0},
		{SegmentID: seg2, DocId: 0},
	}, collector.Matches)

	doc, err := s.GetDoc(DocAddress{SegmentID: seg2, DocId: 0})
	require.NoError(t, err)
	require.Equal(t, store.Document{{Field: "title", Value: "cat and dog"}}, doc)

	require.NoError(t, s.Close())
}

func TestSearcherSkipsMissingTermWithoutError(t *testing.T) {
	dir := newTestDir(t)
	seg := buildSegment(t, dir,
		[]store.Document{{{Field: "title", Value: "a cat nap"}}},
		map[string][]uint32{"cat": {0}},
	)

	s := New(seglog.Nop())
	require.NoError(t, s.AddSegment(dir, seg))

	var counter CountCollector
	require.NoError(t, s.Search([][]byte{[]byte("cat"), []byte("nonexistent")}, &counter))
	require.Equal(t, 1, counter.Count())
}

func TestForDirectoryOpensAllClosedSegments(t *testing.T) {
	tmp := t.TempDir()

	dir2, err := directory.NewFsDirectory(tmp, options.NewDefaultOptions(), seglog.Nop())
	require.NoError(t, err)

	buildSegment(t, dir2,
		[]store.Document{{{Field: "title", Value: "x"}}},
		map[string][]uint32{"cat": {0}},
	)
	buildSegment(t, dir2,
		[]store.Document{{{Field: "title", Value: "y"}}},
		map[string][]uint32{"dog": {0}},
	)

	s, err := ForDirectory(dir2, tmp, seglog.Nop())
	require.NoError(t, err)
	defer s.Close()

	var counter CountCollector
	require.NoError(t, s.Search([][]byte{[]byte("cat"), []byte("dog")}, &counter))
	require.Equal(t, 2, counter.Count())
}
