// Package skiplist implements a deterministic, fixed-period multi-level
// skip list over (DocId, payload) entries. It is a standalone component:
// segment posting lists are written without one. Unlike the classic
// probabilistic skip list, promotion to a higher layer happens on a strict
// period: every Nth insertion into a layer is promoted into the layer above
// it, so the shape of the structure is fully determined by insertion order
// and the configured period, never by chance.
//
// A Builder accumulates (DocId, payload) pairs in ascending DocId order and
// serializes them into a byte layout a Reader can later Seek over without
// buffering the whole list in memory.
package skiplist

import (
	"bytes"
	"io"

	"github.com/iamNilotpal/segcore/pkg/bser"
)

// DocIdMax is the sentinel a Reader's layer cursor uses to mark
// end-of-layer; an entry inserted with this DocId reads back as the end of
// its layer.
const DocIdMax uint32 = 0xFFFFFFFF

// layerBuilder accumulates entries for a single layer. It reports, for
// every insertion, whether that insertion crossed the period boundary and
// should be promoted into the layer above, along with the DocId and the
// byte offset recorded immediately *before* the entry's bytes were
// appended: promotion records where a skip can land, not where it ends.
type layerBuilder[T any] struct {
	period    int
	remaining int
	buf       bytes.Buffer
	codec     bser.Codec[T]
}

func newLayerBuilder[T any](period int, codec bser.Codec[T]) *layerBuilder[T] {
	return &layerBuilder[T]{period: period, remaining: period, codec: codec}
}

func (lb *layerBuilder[T]) writtenSize() int {
	return lb.buf.Len()
}

func (lb *layerBuilder[T]) write(w io.Writer) error {
	_, err := w.Write(lb.buf.Bytes())
	return err
}

// insert appends (docID, val) to the layer and reports whether this
// insertion should be promoted to the next layer up. The offset reported
// for a promotion is recorded before docID/val are appended, so a skip
// pointer always lands exactly on the entry it names.
func (lb *layerBuilder[T]) insert(docID uint32, val T) (promoted bool, skipDocID uint32, skipOffset uint32) {
	lb.remaining--
	offset := uint32(lb.writtenSize())
	if lb.remaining == 0 {
		lb.remaining = lb.period
		promoted, skipDocID, skipOffset = true, docID, offset
	}

	_ = bser.WriteUint32(&lb.buf, docID)
	_ = lb.codec.Write(&lb.buf, val)

	return promoted, skipDocID, skipOffset
}

// Builder accumulates entries for one skip list: a data layer carrying the
// caller's payload type T, and a chain of skip layers of uint32 offsets
// built lazily as insertions cross period boundaries.
type Builder[T any] struct {
	period     int
	dataLayer  *layerBuilder[T]
	skipLayers []*layerBuilder[uint32]
}

// NewBuilder creates a Builder with the given promotion period and payload
// codec. period must be at least 2: with a period of 1 every entry of every
// layer is promoted and Insert does not terminate.
func NewBuilder[T any](period int, codec bser.Codec[T]) *Builder[T] {
	return &Builder[T]{
		period:    period,
		dataLayer: newLayerBuilder(period, codec),
	}
}

func (b *Builder[T]) getSkipLayer(layerID int) *layerBuilder[uint32] {
	if layerID == len(b.skipLayers) {
		b.skipLayers = append(b.skipLayers, newLayerBuilder(b.period, bser.Uint32Codec))
	}
	return b.skipLayers[layerID]
}

// Insert records docID -> val. Callers must insert in strictly ascending
// DocId order; the skip list itself does not enforce this.
func (b *Builder[T]) Insert(docID uint32, val T) {
	layerID := 0
	promoted, pendingID, pendingOffset := b.dataLayer.insert(docID, val)
	for promoted {
		layer := b.getSkipLayer(layerID)
		promoted, pendingID, pendingOffset = layer.insert(pendingID, pendingOffset)
		layerID++
	}
}

// Write serializes the skip list: a cumulative layer-size header (data
// layer size, then running totals through each skip layer), followed by
// the data layer bytes, followed by each skip layer's bytes in the order
// they were built (sparsest layer last).
func (b *Builder[T]) Write(w io.Writer) error {
	var size uint32
	sizes := make([]uint32, 0, 1+len(b.skipLayers))

	size += uint32(b.dataLayer.writtenSize())
	sizes = append(sizes, size)
	for _, layer := range b.skipLayers {
		size += uint32(layer.writtenSize())
		sizes = append(sizes, size)
	}

	if err := bser.WriteUint32Slice(w, sizes); err != nil {
		return err
	}
	if err := b.dataLayer.write(w); err != nil {
		return err
	}
	for _, layer := range b.skipLayers {
		if err := layer.write(w); err != nil {
			return err
		}
	}
	return nil
}
