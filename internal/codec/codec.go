// Package codec adapts github.com/RoaringBitmap/roaring into the
// black-box integer codec a segment's posting lists are written through.
// SegmentSerializer and SegmentReader never see a roaring.Bitmap directly:
// they only call Encode/Decode, so the codec could be swapped for a
// different compressed integer representation without touching the
// segment format's df/clen framing.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// Encode compresses an ascending slice of DocIds into a sequence of u32
// words suitable for the "clen words" framing of a posting list: the
// roaring bitmap's own serialized form, repacked 4 bytes to a word. The
// word count returned is always clen such that clen*4 >= the serialized
// byte length; the final word is zero-padded if the byte length isn't a
// multiple of 4. The exact byte length is recoverable from the roaring
// container format itself, so no extra length field is needed at decode
// time.
func Encode(docIDs []uint32) ([]uint32, error) {
	bm := roaring.New()
	bm.AddMany(docIDs)

	var buf bytes.Buffer
	if _, err := bm.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("codec: serializing posting bitmap: %w", err)
	}

	return bytesToWords(buf.Bytes()), nil
}

// Decode reverses Encode, returning the ascending DocId slice the words
// represent.
func Decode(words []uint32) ([]uint32, error) {
	bm := roaring.New()
	buf := wordsToBytes(words)
	if _, err := bm.ReadFrom(bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("codec: deserializing posting bitmap: %w", err)
	}
	return bm.ToArray(), nil
}

func bytesToWords(b []byte) []uint32 {
	n := (len(b) + 3) / 4
	words := make([]uint32, n)
	padded := b
	if rem := len(b) % 4; rem != 0 {
		padded = append(padded, make([]byte, 4-rem)...)
	}
	for i := 0; i < n; i++ {
		words[i] = binary.BigEndian.Uint32(padded[i*4 : i*4+4])
	}
	return words
}

func wordsToBytes(words []uint32) []byte {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], w)
	}
	return buf
}
