package search

import (
	"github.com/iamNilotpal/segcore/internal/segment"
)

// CountCollector tallies the total number of matches across every segment
// searched, without retaining any DocId.
type CountCollector struct {
	count int
}

// SetSegment implements Collector.
func (c *CountCollector) SetSegment(_ *segment.Reader) {}

// Collect implements Collector.
func (c *CountCollector) Collect(_ uint32) {
	c.count++
}

// Count returns the number of matches collected so far.
func (c *CountCollector) Count() int {
	return c.count
}

// SliceCollector accumulates every matching DocAddress in the order the
// Searcher produced them, including duplicates across terms within the
// same segment.
type SliceCollector struct {
	current segment.Id
	Matches []DocAddress
}

// SetSegment implements Collector.
func (c *SliceCollector) SetSegment(reader *segment.Reader) {
	c.current = reader.ID()
}

// Collect implements Collector.
func (c *SliceCollector) Collect(docID uint32) {
	c.Matches = append(c.Matches, DocAddress{SegmentID: c.current, DocId: docID})
}
