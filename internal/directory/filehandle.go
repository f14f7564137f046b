package directory

import (
	"fmt"
	"os"
)

// fsFileHandle is the FileHandle implementation returned by
// FsDirectory.OpenReadable. Reads are split into block-cache-sized chunks
// and served from the owning FsDirectory's shared LRU cache.
type fsFileHandle struct {
	dir  *FsDirectory
	path string
	file *os.File
	size int64
}

// Size implements FileHandle.
func (h *fsFileHandle) Size() int64 {
	return h.size
}

// Close implements FileHandle.
func (h *fsFileHandle) Close() error {
	return h.file.Close()
}

// ReadBytes implements FileHandle by splitting [from, to) into block
// ranges and concatenating each block's relevant slice, filling cache
// misses lazily in block order.
func (h *fsFileHandle) ReadBytes(from, to int64) ([]byte, error) {
	if from < 0 || to > h.size || from > to {
		return nil, fmt.Errorf("directory: read range [%d, %d) out of bounds for %s (size %d)", from, to, h.path, h.size)
	}
	if from == to {
		return nil, nil
	}

	blockSize := h.dir.blockSize
	out := make([]byte, 0, to-from)

	firstBlock := from / blockSize
	lastBlock := (to - 1) / blockSize

	for block := firstBlock; block <= lastBlock; block++ {
		data, err := h.dir.readBlock(h.path, h.file, block, h.size)
		if err != nil {
			return nil, err
		}

		blockStart := block * blockSize
		sliceFrom := int64(0)
		if from > blockStart {
			sliceFrom = from - blockStart
		}
		sliceTo := int64(len(data))
		if blockEnd := blockStart + int64(len(data)); to < blockEnd {
			sliceTo = to - blockStart
		}

		out = append(out, data[sliceFrom:sliceTo]...)
	}

	return out, nil
}
