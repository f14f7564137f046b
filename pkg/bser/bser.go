// Package bser implements the fixed-width, big-endian binary encoding of
// segcore's skip-list format: the skip list's layer-size header and every
// layer entry go through the functions in this package, so that byte layout
// stays uniform and independently testable. The segment POSTINGS writer, the
// store and the codec adapter write their big-endian integers with
// encoding/binary directly.
//
// The encoding rules are deliberately small:
//
//   - uint32 and uint64 are written big-endian, fixed width.
//   - a slice is written as a uint32 BE length followed by its elements,
//     each encoded the same way.
//   - Void encodes to zero bytes; it stands in for Rust's unit type "()"
//     for skip lists whose payload carries no data beyond the DocId itself.
package bser

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Void is the zero-byte payload type, used by skip lists that index
// positions only and carry no associated value.
type Void struct{}

// WriteUint32 writes v to w as 4 big-endian bytes.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint32 reads 4 big-endian bytes from r.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// WriteUint64 writes v to w as 8 big-endian bytes.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint64 reads 8 big-endian bytes from r.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// WriteBytes writes a length-prefixed byte slice: uint32 BE length followed
// by the raw bytes.
func WriteBytes(w io.Writer, b []byte) error {
	if err := WriteUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadBytes reads a length-prefixed byte slice written by WriteBytes.
func ReadBytes(r io.Reader) ([]byte, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteVoid writes nothing. It exists so Void satisfies the same call shape
// as the other payload writers used by pkg/skiplist.
func WriteVoid(w io.Writer, _ Void) error {
	return nil
}

// ReadVoid reads nothing and returns the zero Void.
func ReadVoid(r io.Reader) (Void, error) {
	return Void{}, nil
}

// WriteUint32Slice writes a []uint32 as a length-prefixed, element-wise
// big-endian encoded slice.
func WriteUint32Slice(w io.Writer, vs []uint32) error {
	if err := WriteUint32(w, uint32(len(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := WriteUint32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadUint32Slice reads a []uint32 written by WriteUint32Slice.
func ReadUint32Slice(r io.Reader) ([]uint32, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	vs := make([]uint32, n)
	for i := range vs {
		v, err := ReadUint32(r)
		if err != nil {
			return nil, fmt.Errorf("bser: reading element %d of %d: %w", i, n, err)
		}
		vs[i] = v
	}
	return vs, nil
}
