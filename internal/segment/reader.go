package segment

import (
	"encoding/binary"
	"fmt"

	"github.com/couchbase/vellum"

	"github.com/iamNilotpal/segcore/internal/codec"
	"github.com/iamNilotpal/segcore/internal/directory"
	"github.com/iamNilotpal/segcore/internal/store"
	segerrors "github.com/iamNilotpal/segcore/pkg/errors"
	"github.com/iamNilotpal/segcore/pkg/seginfo"
)

// Reader opens one segment's three components for term lookup and document
// retrieval. A Reader is read-only and safe for concurrent use by multiple
// goroutines: Lookup and GetDoc only read already-written, immutable data.
type Reader struct {
	id  Id
	fst *vellum.FST

	postings directory.FileHandle
	store    *store.Reader
	storeFh  directory.FileHandle
}

// OpenReader loads the TERMS dictionary into memory and opens the
// POSTINGS and STORE components for random access.
func OpenReader(dir directory.Directory, id Id) (*Reader, error) {
	seg := Segment{ID: id}

	termsData, err := dir.AtomicRead(seg.ComponentPath(seginfo.ComponentTerms))
	if err != nil {
		return nil, segerrors.NewSegmentReadError(err, id.String(), string(seginfo.ComponentTerms), 0)
	}

	fst, err := vellum.Load(termsData)
	if err != nil {
		return nil, segerrors.NewSegmentReadError(err, id.String(), string(seginfo.ComponentTerms), 0).
			WithMessage("failed to load term dictionary")
	}

	postingsFh, err := dir.OpenReadable(seg.ComponentPath(seginfo.ComponentPostings))
	if err != nil {
		return nil, err
	}

	storeFh, err := dir.OpenReadable(seg.ComponentPath(seginfo.ComponentStore))
	if err != nil {
		_ = postingsFh.Close()
		return nil, err
	}

	storeReader, err := store.NewReader(storeFh)
	if err != nil {
		_ = postingsFh.Close()
		_ = storeFh.Close()
		return nil, segerrors.NewSegmentReadError(err, id.String(), string(seginfo.ComponentStore), 0)
	}

	return &Reader{
		id:       id,
		fst:      fst,
		postings: postingsFh,
		store:    storeReader,
		storeFh:  storeFh,
	}, nil
}

// Lookup returns the ascending DocId posting list for term, or a
// *errors.TermError wrapping errors.ErrorCodeTermNotFound if term is not
// present in this segment's dictionary.
func (r *Reader) Lookup(term []byte) ([]uint32, error) {
	offset, exists, err := r.fst.Get(term)
	if err != nil {
		return nil, segerrors.NewTermError(err, segerrors.ErrorCodeSegmentCorrupted, "failed to query term dictionary").
			WithSegmentID(r.id.String()).WithTerm(term).WithOperation("Lookup")
	}
	if !exists {
		return nil, segerrors.NewTermNotFoundError(r.id.String(), term)
	}

	off := int64(offset)
	dfBytes, err := r.postings.ReadBytes(off, off+4)
	if err != nil {
		return nil, segerrors.NewSegmentReadError(err, r.id.String(), string(seginfo.ComponentPostings), off)
	}
	docFreq := binary.BigEndian.Uint32(dfBytes)
	_ = docFreq // read but not used; the decoded posting list's own length is authoritative.

	clenBytes, err := r.postings.ReadBytes(off+4, off+8)
	if err != nil {
		return nil, segerrors.NewSegmentReadError(err, r.id.String(), string(seginfo.ComponentPostings), off+4)
	}
	clen := binary.BigEndian.Uint32(clenBytes)

	wordsStart := off + 8
	wordsEnd := wordsStart + int64(clen)*4
	wordBytes, err := r.postings.ReadBytes(wordsStart, wordsEnd)
	if err != nil {
		return nil, segerrors.NewSegmentReadError(err, r.id.String(), string(seginfo.ComponentPostings), wordsStart)
	}

	words := make([]uint32, clen)
	for i := uint32(0); i < clen; i++ {
		words[i] = binary.BigEndian.Uint32(wordBytes[i*4 : i*4+4])
	}

	docIDs, err := codec.Decode(words)
	if err != nil {
		return nil, segerrors.NewTermError(err, segerrors.ErrorCodeSegmentCorrupted, "failed to decode posting list").
			WithSegmentID(r.id.String()).WithTerm(term).WithOperation("Invert")
	}
	return docIDs, nil
}

// GetDoc returns the stored document at the given in-segment ordinal.
func (r *Reader) GetDoc(docID uint32) (store.Document, error) {
	doc, err := r.store.GetDoc(docID)
	if err != nil {
		return nil, segerrors.NewSegmentReadError(err, r.id.String(), string(seginfo.ComponentStore), int64(docID))
	}
	return doc, nil
}

// DocCount returns the number of stored documents in this segment.
func (r *Reader) DocCount() uint32 {
	return r.store.DocCount()
}

// ID returns this segment's identity.
func (r *Reader) ID() Id {
	return r.id
}

// Close releases the POSTINGS and STORE file handles. The in-memory term
// dictionary needs no explicit release.
func (r *Reader) Close() error {
	perr := r.postings.Close()
	serr := r.storeFh.Close()
	if perr != nil {
		return fmt.Errorf("segment: closing postings component: %w", perr)
	}
	if serr != nil {
		return fmt.Errorf("segment: closing store component: %w", serr)
	}
	return nil
}
