// Package seginfo provides naming and discovery utilities for a segment's
// three on-disk components.
//
// Filename format: "<segmentId>.<component>"
//
// Where segmentId is a github.com/google/uuid string and component is one
// of "terms", "postings", "store". Unlike a rotated write-ahead log, a
// segment here is an immutable unit named by identity rather than sequence
// number, so discovery works by scanning for ".terms" files rather than by
// lexicographic ordering of sequence IDs.
//
// Example filenames:
//
//	7c9e6679-7425-40de-944b-e07fc1f90ae7.terms
//	7c9e6679-7425-40de-944b-e07fc1f90ae7.postings
//	7c9e6679-7425-40de-944b-e07fc1f90ae7.store
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Component names a segment's on-disk file.
type Component string

const (
	ComponentTerms    Component = "terms"
	ComponentPostings Component = "postings"
	ComponentStore    Component = "store"
)

// FileName returns the on-disk filename for id's component.
func FileName(id uuid.UUID, component Component) string {
	return fmt.Sprintf("%s.%s", id.String(), component)
}

// ComponentPath joins dir and the component filename for id.
func ComponentPath(dir string, id uuid.UUID, component Component) string {
	return filepath.Join(dir, FileName(id, component))
}

// ParseSegmentID extracts the SegmentId from a component filename such as
// "7c9e6679-7425-40de-944b-e07fc1f90ae7.terms". It does not validate that
// the extension names a known component; callers that care should compare
// against the Component constants themselves.
func ParseSegmentID(filename string) (uuid.UUID, error) {
	base := filepath.Base(filename)
	stem, _, found := strings.Cut(base, ".")
	if !found {
		return uuid.UUID{}, fmt.Errorf("seginfo: filename %q has no component extension", base)
	}

	id, err := uuid.Parse(stem)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("seginfo: filename %q does not start with a valid segment id: %w", base, err)
	}
	return id, nil
}

// ListSegments scans dir for closed segments: every file whose extension
// is ComponentTerms marks a segment that finished its write lifecycle,
// since SegmentSerializer.Close finalizes TERMS only after POSTINGS and
// STORE have both been written successfully. The returned ids are sorted
// lexicographically by their string form for deterministic iteration order,
// not by creation time, since segments carry no sequence number.
func ListSegments(dir string) ([]uuid.UUID, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("seginfo: reading segment directory %q: %w", dir, err)
	}

	var ids []uuid.UUID
	suffix := "." + string(ComponentTerms)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		id, err := ParseSegmentID(entry.Name())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// NewSegmentID generates a fresh, random segment identity.
func NewSegmentID() uuid.UUID {
	return uuid.New()
}
