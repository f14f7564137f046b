package skiplist

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iamNilotpal/segcore/pkg/bser"
)

// layer is a forward-only cursor over one serialized layer, with one
// entry of lookahead so EOF can be detected without peeking past the
// buffer. nextID is DocIdMax once the layer is exhausted.
type layer[T any] struct {
	cursor *bytes.Reader
	nextID uint32
	codec  bser.Codec[T]
}

func readNextID(r *bytes.Reader) uint32 {
	id, err := bser.ReadUint32(r)
	if err != nil {
		return DocIdMax
	}
	return id
}

func newLayer[T any](data []byte, codec bser.Codec[T]) *layer[T] {
	cursor := bytes.NewReader(data)
	return &layer[T]{cursor: cursor, nextID: readNextID(cursor), codec: codec}
}

func emptyLayer[T any](codec bser.Codec[T]) *layer[T] {
	return &layer[T]{cursor: bytes.NewReader(nil), nextID: DocIdMax, codec: codec}
}

// next returns the current (DocId, value) pair and advances the cursor,
// or ok=false once the layer is exhausted.
func (l *layer[T]) next() (docID uint32, val T, ok bool) {
	if l.nextID == DocIdMax {
		return 0, val, false
	}
	v, err := l.codec.Read(l.cursor)
	if err != nil {
		return 0, val, false
	}
	docID = l.nextID
	l.nextID = readNextID(l.cursor)
	return docID, v, true
}

// seekOffset repositions the cursor at a byte offset recorded by a
// promotion in the layer below, re-reading the lookahead DocId at that
// position.
func (l *layer[T]) seekOffset(offset int) {
	if _, err := l.cursor.Seek(int64(offset), io.SeekStart); err != nil {
		l.nextID = DocIdMax
		return
	}
	l.nextID = readNextID(l.cursor)
}

// seek advances until the lookahead DocId is no longer less than target,
// returning the last (DocId, value) pair strictly below target, if any.
func (l *layer[T]) seek(target uint32) (docID uint32, val T, ok bool) {
	for l.nextID < target {
		id, v, advanced := l.next()
		if !advanced {
			break
		}
		docID, val, ok = id, v, true
	}
	return docID, val, ok
}

// Reader reads a skip list serialized by Builder.Write and supports both
// sequential iteration (Next) and skip-accelerated positioning (Seek).
type Reader[T any] struct {
	dataLayer  *layer[T]
	skipLayers []*layer[uint32] // topmost (sparsest) layer first
}

// NewReader parses the skip list header out of data and prepares the data
// layer and skip layers for reading. data must be exactly the bytes
// produced by a matching Builder.Write call.
func NewReader[T any](data []byte, codec bser.Codec[T]) (*Reader[T], error) {
	cursor := bytes.NewReader(data)
	offsets, err := bser.ReadUint32Slice(cursor)
	if err != nil {
		return nil, fmt.Errorf("skiplist: reading layer-size header: %w", err)
	}

	numLayers := len(offsets)
	startPos := len(data) - cursor.Len()
	layersData := data[startPos:]

	var dataLayer *layer[T]
	if numLayers == 0 {
		dataLayer = emptyLayer(codec)
	} else {
		dataLayer = newLayer(layersData[:offsets[0]], codec)
	}

	var skipLayers []*layer[uint32]
	for i := 0; i+1 < numLayers; i++ {
		start, stop := offsets[i], offsets[i+1]
		skipLayers = append(skipLayers, newLayer(layersData[start:stop], bser.Uint32Codec))
	}
	for i, j := 0, len(skipLayers)-1; i < j; i, j = i+1, j-1 {
		skipLayers[i], skipLayers[j] = skipLayers[j], skipLayers[i]
	}

	return &Reader[T]{dataLayer: dataLayer, skipLayers: skipLayers}, nil
}

// Next returns the next (DocId, value) pair in ascending order, or
// ok=false once the list is exhausted.
func (r *Reader[T]) Next() (docID uint32, val T, ok bool) {
	return r.dataLayer.next()
}

// Seek positions the reader so that the next call to Next returns the
// first entry with DocId >= target, walking the skip layers top-down to
// avoid scanning the data layer from the start.
func (r *Reader[T]) Seek(target uint32) (docID uint32, val T, ok bool) {
	var (
		nextDocID uint32
		nextOff   uint32
		hasNext   bool
	)

	for _, sl := range r.skipLayers {
		if hasNext {
			sl.seekOffset(int(nextOff))
		}
		nextDocID, nextOff, hasNext = sl.seek(target)
	}
	_ = nextDocID

	if hasNext {
		r.dataLayer.seekOffset(int(nextOff))
	}
	return r.dataLayer.seek(target)
}
