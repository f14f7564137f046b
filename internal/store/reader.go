package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"
)

// RandomAccessReader is the minimal capability Reader needs from whatever
// backs a segment's STORE component. internal/directory.FileHandle
// satisfies this, but Reader doesn't import that package directly so it
// stays testable against a plain in-memory byte slice.
type RandomAccessReader interface {
	ReadBytes(from, to int64) ([]byte, error)
	Size() int64
}

// Reader provides random access to documents written by a Writer, without
// ever holding the whole STORE component in memory at once: only the
// trailer and the one chunk containing the requested document are read.
type Reader struct {
	ra        RandomAccessReader
	offsets   []uint64
	docCount  uint32
	chunkSize int
	trailerAt int64
}

// NewReader parses the trailer written by Writer.Close and prepares ra for
// random document access.
func NewReader(ra RandomAccessReader) (*Reader, error) {
	size := ra.Size()
	if size < 8 {
		return nil, fmt.Errorf("store: component too small to contain a trailer (%d bytes)", size)
	}

	footer, err := ra.ReadBytes(size-8, size)
	if err != nil {
		return nil, fmt.Errorf("store: reading trailer footer: %w", err)
	}
	trailerStart := int64(binary.BigEndian.Uint64(footer))

	trailer, err := ra.ReadBytes(trailerStart, size-8)
	if err != nil {
		return nil, fmt.Errorf("store: reading trailer: %w", err)
	}
	if len(trailer) < 4 {
		return nil, fmt.Errorf("store: truncated trailer")
	}

	count := binary.BigEndian.Uint32(trailer[:4])
	pos := 4
	offsets := make([]uint64, count)
	for i := uint32(0); i < count; i++ {
		if pos+8 > len(trailer) {
			return nil, fmt.Errorf("store: truncated trailer offset table")
		}
		offsets[i] = binary.BigEndian.Uint64(trailer[pos : pos+8])
		pos += 8
	}
	if pos+8 > len(trailer) {
		return nil, fmt.Errorf("store: truncated trailer counts")
	}
	docCount := binary.BigEndian.Uint32(trailer[pos : pos+4])
	pos += 4
	chunkSize := binary.BigEndian.Uint32(trailer[pos : pos+4])

	return &Reader{
		ra:        ra,
		offsets:   offsets,
		docCount:  docCount,
		chunkSize: int(chunkSize),
		trailerAt: trailerStart,
	}, nil
}

// DocCount returns the number of documents stored.
func (r *Reader) DocCount() uint32 {
	return r.docCount
}

// GetDoc returns the document at the given ordinal (its position in
// StoreDoc call order, starting at 0).
func (r *Reader) GetDoc(ordinal uint32) (Document, error) {
	if ordinal >= r.docCount {
		return nil, fmt.Errorf("store: ordinal %d out of range (%d documents)", ordinal, r.docCount)
	}

	chunkIndex := int(ordinal) / r.chunkSize
	withinChunk := int(ordinal) % r.chunkSize
	if chunkIndex >= len(r.offsets) {
		return nil, fmt.Errorf("store: ordinal %d maps to missing chunk %d", ordinal, chunkIndex)
	}

	chunkStart := int64(r.offsets[chunkIndex])
	chunkEnd := r.trailerAt
	if chunkIndex+1 < len(r.offsets) {
		chunkEnd = int64(r.offsets[chunkIndex+1])
	}

	raw, err := r.ra.ReadBytes(chunkStart, chunkEnd)
	if err != nil {
		return nil, fmt.Errorf("store: reading chunk %d: %w", chunkIndex, err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("store: truncated chunk %d", chunkIndex)
	}

	clen := binary.BigEndian.Uint32(raw[:4])
	if uint32(len(raw))-4 < clen {
		return nil, fmt.Errorf("store: chunk %d shorter than its recorded length", chunkIndex)
	}
	compressed := raw[4 : 4+clen]

	decompressed, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("store: decompressing chunk %d: %w", chunkIndex, err)
	}

	var docs []Document
	if err := json.Unmarshal(decompressed, &docs); err != nil {
		return nil, fmt.Errorf("store: decoding chunk %d: %w", chunkIndex, err)
	}
	if withinChunk >= len(docs) {
		return nil, fmt.Errorf("store: chunk %d has no document at index %d", chunkIndex, withinChunk)
	}

	return docs[withinChunk], nil
}
