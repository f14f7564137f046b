package segment

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/couchbase/vellum"
	"go.uber.org/zap"

	"github.com/iamNilotpal/segcore/internal/codec"
	"github.com/iamNilotpal/segcore/internal/directory"
	"github.com/iamNilotpal/segcore/internal/store"
	segerrors "github.com/iamNilotpal/segcore/pkg/errors"
	"github.com/iamNilotpal/segcore/pkg/seginfo"
)

// Writer serializes one segment's three components in a single pass:
// documents go to STORE as they arrive, and for each term the caller
// supplies its document frequency up front and then the postings that
// belong to it, written to POSTINGS while the term and its POSTINGS byte
// offset are recorded in the TERMS finite-state transducer.
//
// Callers must drive the three methods in the contract the format
// requires: terms strictly ascending by NewTerm, document ids strictly
// ascending by StoreDoc, and exactly one WriteDocs call per NewTerm call.
// Violating the ordering contracts returns a *errors.ContractViolation
// instead of corrupting the component on disk.
type Writer struct {
	id  Id
	dir directory.Directory
	log *zap.SugaredLogger

	termsFile    io.WriteCloser
	postingsFile io.WriteCloser
	storeWriter  *store.Writer
	storeFile    io.WriteCloser

	fstBuilder *vellum.Builder

	writtenPostings int64

	hasLastTerm bool
	lastTerm    []byte

	hasLastDocID bool
	lastDocID    uint32

	closed bool
}

// NewWriter opens the three component streams for a fresh segment and
// prepares its TERMS finite-state transducer builder and STORE writer.
func NewWriter(dir directory.Directory, id Id, storeChunkSize int, log *zap.SugaredLogger) (*Writer, error) {
	seg := Segment{ID: id}

	termsFile, err := dir.OpenWritable(seg.ComponentPath(seginfo.ComponentTerms))
	if err != nil {
		return nil, err
	}

	postingsFile, err := dir.OpenWritable(seg.ComponentPath(seginfo.ComponentPostings))
	if err != nil {
		_ = termsFile.Close()
		return nil, err
	}

	storeFile, err := dir.OpenWritable(seg.ComponentPath(seginfo.ComponentStore))
	if err != nil {
		_ = termsFile.Close()
		_ = postingsFile.Close()
		return nil, err
	}

	fstBuilder, err := vellum.New(termsFile, nil)
	if err != nil {
		_ = termsFile.Close()
		_ = postingsFile.Close()
		_ = storeFile.Close()
		return nil, segerrors.NewSegmentWriteError(err, id.String(), string(seginfo.ComponentTerms), 0).
			WithMessage("failed to create term dictionary builder")
	}

	return &Writer{
		id:           id,
		dir:          dir,
		log:          log,
		termsFile:    termsFile,
		postingsFile: postingsFile,
		storeWriter:  store.NewWriter(storeFile, storeChunkSize),
		storeFile:    storeFile,
		fstBuilder:   fstBuilder,
	}, nil
}

// StoreDoc persists doc as the document identified by docID. docIDs must
// arrive in strictly ascending order; segcore uses the document's ordinal
// position (0, 1, 2, ...) as its in-segment DocId, so callers must store
// documents in exactly that order with no gaps.
func (w *Writer) StoreDoc(docID uint32, doc store.Document) error {
	if w.closed {
		return &segerrors.ContractViolation{Constraint: "writer_closed", Got: "StoreDoc"}
	}
	if w.hasLastDocID && docID <= w.lastDocID {
		return segerrors.NewAscendingDocIDViolation(w.lastDocID, docID)
	}

	if err := w.storeWriter.StoreDoc(doc); err != nil {
		return segerrors.NewSegmentWriteError(err, w.id.String(), string(seginfo.ComponentStore), 0)
	}

	w.lastDocID = docID
	w.hasLastDocID = true
	return nil
}

// NewTerm registers term as the next entry in the term dictionary, with
// docFreq as its known document frequency. term must sort strictly after
// every term previously passed to NewTerm. The term's POSTINGS byte offset
// (the value looked up at search time) is recorded as whatever has been
// written to POSTINGS so far; NewTerm itself then writes docFreq as the
// four-byte big-endian header a SegmentReader reads before the posting
// words.
//
// Exactly one WriteDocs call must follow each NewTerm call before the next
// NewTerm or Close.
func (w *Writer) NewTerm(term []byte, docFreq uint32) error {
	if w.closed {
		return &segerrors.ContractViolation{Constraint: "writer_closed", Got: "NewTerm"}
	}
	if w.hasLastTerm && bytes.Compare(term, w.lastTerm) <= 0 {
		return segerrors.NewAscendingTermViolation(w.lastTerm, term)
	}

	if err := w.fstBuilder.Insert(term, uint64(w.writtenPostings)); err != nil {
		return segerrors.NewTermError(err, segerrors.ErrorCodeSegmentCorrupted, "failed to insert term into dictionary").
			WithSegmentID(w.id.String()).WithTerm(term).WithOperation("NewTerm")
	}

	if err := w.writeUint32Postings(docFreq); err != nil {
		return err
	}

	w.lastTerm = append(w.lastTerm[:0], term...)
	w.hasLastTerm = true
	return nil
}

// WriteDocs writes the posting list for the term most recently passed to
// NewTerm. docIDs must already be sorted ascending; they are compressed
// through the posting codec before being written to POSTINGS as a
// length-prefixed sequence of words.
func (w *Writer) WriteDocs(docIDs []uint32) error {
	if w.closed {
		return &segerrors.ContractViolation{Constraint: "writer_closed", Got: "WriteDocs"}
	}

	words, err := codec.Encode(docIDs)
	if err != nil {
		return segerrors.NewSegmentWriteError(err, w.id.String(), string(seginfo.ComponentPostings), w.writtenPostings).
			WithMessage("failed to encode posting list")
	}

	if err := w.writeUint32Postings(uint32(len(words))); err != nil {
		return err
	}
	for _, word := range words {
		if err := w.writeUint32Postings(word); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeUint32Postings(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	if _, err := w.postingsFile.Write(buf[:]); err != nil {
		return segerrors.NewSegmentWriteError(err, w.id.String(), string(seginfo.ComponentPostings), w.writtenPostings)
	}
	w.writtenPostings += 4
	return nil
}

// Close finalizes the term dictionary and flushes every component. POSTINGS
// and STORE are closed before TERMS, so a segment's presence is only ever
// discovered (via seginfo.ListSegments) once every component is durably
// complete.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.storeWriter.Close(); err != nil {
		return fmt.Errorf("segment: closing store component: %w", err)
	}
	if err := w.storeFile.Close(); err != nil {
		return segerrors.NewSegmentWriteError(err, w.id.String(), string(seginfo.ComponentStore), 0)
	}
	if err := w.postingsFile.Close(); err != nil {
		return segerrors.NewSegmentWriteError(err, w.id.String(), string(seginfo.ComponentPostings), w.writtenPostings)
	}

	if err := w.fstBuilder.Close(); err != nil {
		return segerrors.NewSegmentWriteError(err, w.id.String(), string(seginfo.ComponentTerms), 0).
			WithMessage("failed to finalize term dictionary")
	}
	if err := w.termsFile.Close(); err != nil {
		return segerrors.NewSegmentWriteError(err, w.id.String(), string(seginfo.ComponentTerms), 0)
	}

	w.log.Debugw("segment write finished", "segment_id", w.id.String())
	return nil
}
