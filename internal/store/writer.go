package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// Writer accumulates documents in StoreDoc call order, flushing a
// compressed chunk every chunkSize documents, and emits a trailing offset
// table on Close so a Reader can seek directly to the chunk containing a
// given document ordinal.
//
// A document's ordinal is its position in call order, starting at 0. This
// is the same ordinal a SegmentReader uses as the local part of a
// DocAddress.
type Writer struct {
	w         io.Writer
	chunkSize int
	pending   []Document
	offsets   []uint64
	docCount  uint32
	written   int64
}

// NewWriter creates a Writer over w that groups documents chunkSize at a
// time before compressing and flushing them.
func NewWriter(w io.Writer, chunkSize int) *Writer {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	return &Writer{w: w, chunkSize: chunkSize}
}

// StoreDoc buffers doc for the current chunk, flushing the chunk once it
// reaches the configured chunk size.
func (wr *Writer) StoreDoc(doc Document) error {
	wr.pending = append(wr.pending, doc)
	wr.docCount++
	if len(wr.pending) >= wr.chunkSize {
		return wr.flush()
	}
	return nil
}

func (wr *Writer) flush() error {
	if len(wr.pending) == 0 {
		return nil
	}

	raw, err := json.Marshal(wr.pending)
	if err != nil {
		return fmt.Errorf("store: marshaling chunk: %w", err)
	}
	compressed := snappy.Encode(nil, raw)

	wr.offsets = append(wr.offsets, uint64(wr.written))

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(compressed)))
	if _, err := wr.w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("store: writing chunk length: %w", err)
	}
	if _, err := wr.w.Write(compressed); err != nil {
		return fmt.Errorf("store: writing chunk data: %w", err)
	}
	wr.written += int64(len(lenBuf)) + int64(len(compressed))

	wr.pending = wr.pending[:0]
	return nil
}

// Close flushes any buffered documents and writes the trailer: the chunk
// offset table, the document count, the chunk size, and an 8-byte footer
// giving the trailer's own starting offset so a Reader can find it by
// reading backward from end-of-file.
func (wr *Writer) Close() error {
	if err := wr.flush(); err != nil {
		return err
	}

	trailerStart := wr.written

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(wr.offsets)))
	if _, err := wr.w.Write(countBuf[:]); err != nil {
		return fmt.Errorf("store: writing chunk count: %w", err)
	}
	for _, off := range wr.offsets {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], off)
		if _, err := wr.w.Write(b[:]); err != nil {
			return fmt.Errorf("store: writing chunk offset: %w", err)
		}
	}

	var docCountBuf [4]byte
	binary.BigEndian.PutUint32(docCountBuf[:], wr.docCount)
	if _, err := wr.w.Write(docCountBuf[:]); err != nil {
		return fmt.Errorf("store: writing document count: %w", err)
	}

	var chunkSizeBuf [4]byte
	binary.BigEndian.PutUint32(chunkSizeBuf[:], uint32(wr.chunkSize))
	if _, err := wr.w.Write(chunkSizeBuf[:]); err != nil {
		return fmt.Errorf("store: writing chunk size: %w", err)
	}

	var footer [8]byte
	binary.BigEndian.PutUint64(footer[:], uint64(trailerStart))
	if _, err := wr.w.Write(footer[:]); err != nil {
		return fmt.Errorf("store: writing trailer footer: %w", err)
	}

	return nil
}
