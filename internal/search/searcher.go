package search

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/iamNilotpal/segcore/internal/directory"
	"github.com/iamNilotpal/segcore/internal/segment"
	"github.com/iamNilotpal/segcore/internal/store"
	segerrors "github.com/iamNilotpal/segcore/pkg/errors"
	"github.com/iamNilotpal/segcore/pkg/seginfo"
)

// Searcher holds every segment opened from one Directory, in a fixed
// ordinal order assigned at AddSegment time, and answers term queries by
// unioning each segment's posting lists across all requested terms.
//
// Searcher is safe for concurrent Search/GetDoc calls once construction
// (ForDirectory or a sequence of AddSegment calls) has finished; readers
// are immutable once opened, and the ordinal index is only ever appended
// to under a lock.
type Searcher struct {
	mu       sync.RWMutex
	readers  []*segment.Reader
	ordinals map[segment.Id]int
	log      *zap.SugaredLogger
}

// New returns an empty Searcher.
func New(log *zap.SugaredLogger) *Searcher {
	return &Searcher{
		ordinals: make(map[segment.Id]int),
		log:      log,
	}
}

// ForDirectory opens every closed segment found in dir and returns a
// Searcher ready to query across all of them, in the deterministic
// ordering seginfo.ListSegments returns.
func ForDirectory(dir directory.Directory, dataDir string, log *zap.SugaredLogger) (*Searcher, error) {
	ids, err := seginfo.ListSegments(dataDir)
	if err != nil {
		return nil, fmt.Errorf("search: listing segments: %w", err)
	}

	s := New(log)
	for _, id := range ids {
		if err := s.AddSegment(dir, id); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

// AddSegment opens the segment named by id and assigns it the next
// ordinal index.
func (s *Searcher) AddSegment(dir directory.Directory, id segment.Id) error {
	reader, err := segment.OpenReader(dir, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ordinal := len(s.readers)
	s.readers = append(s.readers, reader)
	s.ordinals[id] = ordinal

	s.log.Debugw("segment added to searcher", "segment_id", id.String(), "ordinal", ordinal)
	return nil
}

// Search looks up every term in terms, in every opened segment, and feeds
// each matching DocId to collector. Matches are unioned across terms: a
// document matching two different terms in the same segment is collected
// twice, once per term, preserving the duplicate rather than deduplicating
// it. A term missing from a given segment's dictionary is simply skipped
// for that segment; it is not an error for a term to be absent.
func (s *Searcher) Search(terms [][]byte, collector Collector) error {
	s.mu.RLock()
	readers := make([]*segment.Reader, len(s.readers))
	copy(readers, s.readers)
	s.mu.RUnlock()

	for _, reader := range readers {
		collector.SetSegment(reader)

		for _, term := range terms {
			docIDs, err := reader.Lookup(term)
			if err != nil {
				if segerrors.IsTermError(err) {
					te, _ := segerrors.AsTermError(err)
					if te.Code() == segerrors.ErrorCodeTermNotFound {
						continue
					}
				}
				return err
			}
			for _, docID := range docIDs {
				collector.Collect(docID)
			}
		}
	}

	return nil
}

// GetDoc resolves addr against the segment it names and returns the
// stored document. addr.SegmentID is resolved through the ordinals map
// rather than used as a slice index directly: a Searcher rebuilt from
// scratch (e.g. after a process restart) can assign the same segment a
// different ordinal, so a DocAddress a caller held onto across that
// boundary must still land on the right segment, not whatever now
// occupies its old ordinal.
func (s *Searcher) GetDoc(addr DocAddress) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ordinal, ok := s.ordinals[addr.SegmentID]
	if !ok {
		return nil, fmt.Errorf("search: segment %s not open in this searcher", addr.SegmentID)
	}
	return s.readers[ordinal].GetDoc(addr.DocId)
}

// Close releases every opened segment reader.
func (s *Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, r := range s.readers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
