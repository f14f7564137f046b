// Package directory implements the Directory abstraction segments are read
// from and written to: a small filesystem-like interface (open for
// writing, open for reading, atomic whole-file read/write, delete, exists,
// watch) backed by a block-cached local filesystem implementation.
//
// Every segment component access (TERMS, POSTINGS, STORE) goes through a
// Directory rather than touching *os.File directly, centralizing all
// segment file access behind one component instead of scattering os.Open
// calls through the codebase.
package directory

import (
	"io"
)

// FileHandle is random-access read access to one open file, backing both
// internal/store.RandomAccessReader and SegmentReader's component readers.
type FileHandle interface {
	io.Closer

	// ReadBytes returns the bytes in [from, to). Reads are served from the
	// Directory's block cache where possible.
	ReadBytes(from, to int64) ([]byte, error)

	// Size returns the file's total length in bytes.
	Size() int64
}

// Directory is the storage abstraction every segment component is read
// from and written to.
type Directory interface {
	// OpenWritable opens path for sequential writing, creating it (and any
	// missing parent directories) if necessary. The caller owns the
	// returned writer and must Close it to release the OS handle.
	OpenWritable(path string) (io.WriteCloser, error)

	// OpenReadable opens path for random-access reading through the
	// Directory's block cache.
	OpenReadable(path string) (FileHandle, error)

	// AtomicRead reads path's entire contents in one call. It never
	// observes a partial write: a concurrent AtomicWrite either hasn't
	// committed yet, in which case the prior content is returned, or has
	// already committed, in which case the new content is returned.
	AtomicRead(path string) ([]byte, error)

	// AtomicWrite replaces path's contents with data as a single atomic
	// operation: it writes to a temp file in the same directory and
	// renames over path, so a reader never observes a partially written
	// file and a failure leaves the previous content, if any, untouched.
	AtomicWrite(path string, data []byte) error

	// Delete removes path. Deleting a path that does not exist is not an
	// error.
	Delete(path string) error

	// Exists reports whether path currently exists, reflecting only fully
	// committed writes (no partial visibility into an in-flight
	// AtomicWrite).
	Exists(path string) (bool, error)

	// Watch registers onChange to be called whenever path's content
	// changes. The returned cancel function stops watching; it is safe to
	// call more than once.
	Watch(path string, onChange func()) (cancel func(), err error)
}
