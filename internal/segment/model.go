// Package segment implements the two halves of a segment's lifecycle: a
// Writer (a SegmentSerializer) that produces a segment's three on-disk
// components in one write pass, and a Reader (a SegmentReader) that opens
// those components back up for term lookup and document retrieval.
package segment

import (
	"github.com/google/uuid"

	"github.com/iamNilotpal/segcore/pkg/seginfo"
)

// Id identifies one segment. It is a plain alias over uuid.UUID so callers
// can use the uuid package's helpers (uuid.New, uuid.Parse) directly
// without segment introducing its own ID type.
type Id = uuid.UUID

// Segment names the three on-disk files one segment is made of, resolved
// relative to whatever Directory root they're opened against.
type Segment struct {
	ID Id
}

// New returns a Segment for a freshly generated id.
func New() Segment {
	return Segment{ID: seginfo.NewSegmentID()}
}

// ComponentPath returns the filename (relative to a Directory root) for
// one of this segment's components.
func (s Segment) ComponentPath(component seginfo.Component) string {
	return seginfo.FileName(s.ID, component)
}
