// Package options provides the functional-options configuration surface for
// segcore: where segment files live, how stored documents are chunked, and
// how large the directory's block cache is allowed to grow.
package options

import "strings"

// Options holds the tunable parameters for a segcore directory and the
// segments built against it.
type Options struct {
	// DataDir is the base path segments are written to and read from.
	//
	// Default: "/var/lib/segcore"
	DataDir string `json:"dataDir"`

	// StoreChunkSize is the number of stored documents grouped into one
	// compressed chunk in a segment's STORE component. Smaller chunks give
	// cheaper random access to a single document; larger chunks compress
	// better.
	//
	// Default: 128
	StoreChunkSize int `json:"storeChunkSize"`

	// BlockCacheBlocks bounds how many 4096-byte blocks the Directory's
	// read cache holds across all open file handles.
	//
	// Default: 4096 (16MiB)
	BlockCacheBlocks int `json:"blockCacheBlocks"`

	// MaxSegmentDocs bounds how many documents an Engine buffers into one
	// segment before closing it and starting a fresh one, a document-count
	// threshold rather than a byte-size one, since a segment here is an
	// all-at-once serialization pass rather than an append-only log growing
	// one record at a time.
	//
	// Default: 65536
	MaxSegmentDocs int `json:"maxSegmentDocs"`
}

// OptionFunc modifies an Options value in place. A zero-value or
// out-of-range argument leaves the corresponding field untouched, so
// OptionFuncs can be applied in any order without clobbering defaults with
// invalid input.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to segcore's defaults.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the base directory segments are stored under.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithStoreChunkSize sets how many documents are grouped per compressed
// STORE chunk.
func WithStoreChunkSize(size int) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.StoreChunkSize = size
		}
	}
}

// WithBlockCacheBlocks sets how many 4096-byte blocks the Directory's read
// cache may hold.
func WithBlockCacheBlocks(blocks int) OptionFunc {
	return func(o *Options) {
		if blocks >= MinBlockCacheBlocks {
			o.BlockCacheBlocks = blocks
		}
	}
}

// WithMaxSegmentDocs sets how many documents an Engine accumulates into one
// segment before rotating to a new one.
func WithMaxSegmentDocs(docs int) OptionFunc {
	return func(o *Options) {
		if docs > 0 {
			o.MaxSegmentDocs = docs
		}
	}
}
