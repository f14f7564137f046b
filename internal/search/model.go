// Package search composes segment readers into one queryable index: a
// Searcher holds an ordered list of opened segments and answers term
// queries by looking each term up in every segment and handing the
// resulting DocIds to a caller-supplied Collector.
package search

import (
	"github.com/iamNilotpal/segcore/internal/segment"
)

// DocAddress names one document across every segment a Searcher has
// opened: which segment it lives in, and its DocId within that segment's
// STORE component. SegmentID is the segment's stable UUID, not an
// in-process slice index, so a DocAddress a caller holds onto survives a
// Searcher being rebuilt from scratch (a process restart reopens every
// segment and may assign it a different iteration position).
type DocAddress struct {
	SegmentID segment.Id
	DocId     uint32
}

// Collector receives matching documents as a search runs. SetSegment is
// called once before Collect is called for any DocId from that segment,
// letting a Collector that needs document contents (rather than just
// DocIds) call back into the current segment.Reader, or name it in a
// DocAddress via reader.ID().
type Collector interface {
	SetSegment(reader *segment.Reader)
	Collect(docID uint32)
}
