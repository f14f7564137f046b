package bser

import "io"

// Codec bundles the read/write pair pkg/skiplist needs for a generic layer
// payload. Go has no trait objects the way Rust's BinarySerializable is used
// in the skip list's original implementation, so a payload type is
// parameterized by passing its Codec explicitly rather than relying on a
// method set.
type Codec[T any] struct {
	Write func(w io.Writer, v T) error
	Read  func(r io.Reader) (T, error)
}

// Uint32Codec encodes uint32 values. Skip list offset/skip-pointer layers
// always use this codec regardless of the data layer's payload type.
var Uint32Codec = Codec[uint32]{
	Write: WriteUint32,
	Read:  ReadUint32,
}

// Uint64Codec encodes uint64 values.
var Uint64Codec = Codec[uint64]{
	Write: WriteUint64,
	Read:  ReadUint64,
}

// VoidCodec encodes the zero-byte Void payload, for skip lists that index
// positions only.
var VoidCodec = Codec[Void]{
	Write: WriteVoid,
	Read:  ReadVoid,
}

// BytesCodec encodes length-prefixed byte slices.
var BytesCodec = Codec[[]byte]{
	Write: WriteBytes,
	Read:  ReadBytes,
}
