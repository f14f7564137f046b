package directory

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	segerrors "github.com/iamNilotpal/segcore/pkg/errors"
	"github.com/iamNilotpal/segcore/pkg/options"
)

// blockKey identifies one cached block: a file path plus the block's index
// within that file.
type blockKey struct {
	path  string
	block int64
}

// FsDirectory is a Directory backed by the local filesystem, with a
// bounded LRU cache of fixed-size blocks shared across every open
// FileHandle, so memory use doesn't grow with the number of open segments.
type FsDirectory struct {
	root      string
	blockSize int64
	cache     *lru.Cache[blockKey, []byte]
	cacheMu   sync.Mutex // serializes cache-miss fills; hits don't take this lock
	log       *zap.SugaredLogger
}

// NewFsDirectory creates an FsDirectory rooted at root. All paths passed to
// its methods are resolved relative to root.
func NewFsDirectory(root string, opts options.Options, log *zap.SugaredLogger) (*FsDirectory, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, segerrors.ClassifyDirectoryCreationError(err, root)
	}

	cache, err := lru.New[blockKey, []byte](opts.BlockCacheBlocks)
	if err != nil {
		return nil, fmt.Errorf("directory: creating block cache: %w", err)
	}

	return &FsDirectory{
		root:      root,
		blockSize: options.BlockSize,
		cache:     cache,
		log:       log,
	}, nil
}

func (d *FsDirectory) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.root, path)
}

// OpenWritable implements Directory.
func (d *FsDirectory) OpenWritable(path string) (io.WriteCloser, error) {
	full := d.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, segerrors.ClassifyDirectoryCreationError(err, filepath.Dir(full))
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, segerrors.NewOpenWriteError(err, full)
	}
	return f, nil
}

// OpenReadable implements Directory.
func (d *FsDirectory) OpenReadable(path string) (FileHandle, error) {
	full := d.resolve(path)
	f, err := os.Open(full)
	if err != nil {
		return nil, segerrors.NewOpenReadError(err, full)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, segerrors.NewOpenReadError(err, full)
	}

	return &fsFileHandle{
		dir:  d,
		path: full,
		file: f,
		size: info.Size(),
	}, nil
}

// AtomicRead implements Directory.
func (d *FsDirectory) AtomicRead(path string) ([]byte, error) {
	full := d.resolve(path)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, segerrors.NewOpenReadError(err, full)
	}
	return data, nil
}

// AtomicWrite implements Directory.
func (d *FsDirectory) AtomicWrite(path string, data []byte) error {
	full := d.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return segerrors.ClassifyDirectoryCreationError(err, filepath.Dir(full))
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".tmp-*")
	if err != nil {
		return segerrors.NewAtomicWriteError(err, full)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return segerrors.NewAtomicWriteError(err, full)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return segerrors.NewAtomicWriteError(err, full)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return segerrors.NewAtomicWriteError(err, full)
	}

	if err := os.Rename(tmpName, full); err != nil {
		_ = os.Remove(tmpName)
		return segerrors.NewAtomicWriteError(err, full)
	}

	d.invalidate(full)
	return nil
}

// Delete implements Directory.
func (d *FsDirectory) Delete(path string) error {
	full := d.resolve(path)
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return segerrors.NewDeleteError(err, full)
	}
	d.invalidate(full)
	return nil
}

// Exists implements Directory.
func (d *FsDirectory) Exists(path string) (bool, error) {
	full := d.resolve(path)
	_, err := os.Stat(full)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, segerrors.NewOpenReadError(err, full)
}

// Watch implements Directory with a simple mtime-polling loop: no fsnotify
// dependency is wired into segcore's stack, so Watch trades responsiveness
// for a self-contained implementation. Callers needing sub-second
// notification latency should poll Exists/AtomicRead directly instead.
func (d *FsDirectory) Watch(path string, onChange func()) (func(), error) {
	full := d.resolve(path)

	stat, _ := os.Stat(full)
	var lastMod time.Time
	if stat != nil {
		lastMod = stat.ModTime()
	}

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				info, err := os.Stat(full)
				if err != nil {
					continue
				}
				if info.ModTime().After(lastMod) {
					lastMod = info.ModTime()
					d.invalidate(full)
					onChange()
				}
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }, nil
}

// invalidate drops every cached block for path, used after a write makes
// previously cached blocks stale.
func (d *FsDirectory) invalidate(path string) {
	for _, key := range d.cache.Keys() {
		if key.path == path {
			d.cache.Remove(key)
		}
	}
}

// readBlock returns the cached block at blockIndex for path, reading it
// from f and filling the cache on a miss.
func (d *FsDirectory) readBlock(path string, f *os.File, blockIndex int64, size int64) ([]byte, error) {
	key := blockKey{path: path, block: blockIndex}
	if b, ok := d.cache.Get(key); ok {
		return b, nil
	}

	d.cacheMu.Lock()
	defer d.cacheMu.Unlock()

	if b, ok := d.cache.Get(key); ok {
		return b, nil
	}

	start := blockIndex * d.blockSize
	end := start + d.blockSize
	if end > size {
		end = size
	}
	if start >= end {
		return nil, fmt.Errorf("directory: block %d out of range for %s", blockIndex, path)
	}

	buf := make([]byte, end-start)
	if _, err := f.ReadAt(buf, start); err != nil && err != io.EOF {
		return nil, segerrors.NewDirectoryError(err, segerrors.ErrorCodeIO, "failed to read file block").
			WithPath(path).WithOp("read_block").WithDetail("blockIndex", blockIndex)
	}

	d.cache.Add(key, buf)
	return buf, nil
}
