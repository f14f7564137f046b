package options

const (
	// DefaultDataDir is the base directory segcore stores segment files in
	// when no other directory is given during initialization.
	DefaultDataDir = "/var/lib/segcore"

	// DefaultStoreChunkSize is the number of stored documents grouped into
	// one snappy-compressed chunk in a segment's STORE component.
	DefaultStoreChunkSize = 128

	// MinBlockCacheBlocks is the smallest number of 4096-byte blocks the
	// Directory block cache will hold.
	MinBlockCacheBlocks = 16

	// DefaultBlockCacheBlocks is the number of 4096-byte blocks the
	// Directory block cache holds absent an override (4096 blocks is 16MiB
	// of cached file content).
	DefaultBlockCacheBlocks = 4096

	// BlockSize is the fixed unit the Directory block cache reads and
	// caches in.
	BlockSize = 4096

	// DefaultMaxSegmentDocs is the number of documents an Engine buffers
	// into one segment before rotating to a new one, absent an override.
	DefaultMaxSegmentDocs = 65536
)

// defaultOptions holds the configuration segcore uses when New is called
// with no OptionFuncs.
var defaultOptions = Options{
	DataDir:          DefaultDataDir,
	StoreChunkSize:   DefaultStoreChunkSize,
	BlockCacheBlocks: DefaultBlockCacheBlocks,
	MaxSegmentDocs:   DefaultMaxSegmentDocs,
}

// NewDefaultOptions returns a copy of segcore's default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
