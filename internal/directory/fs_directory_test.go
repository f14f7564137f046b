package directory

import (
	"math/rand"
	"testing"

	"github.com/iamNilotpal/segcore/pkg/options"
	"github.com/iamNilotpal/segcore/pkg/seglog"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *FsDirectory {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.BlockCacheBlocks = options.MinBlockCacheBlocks
	d, err := NewFsDirectory(t.TempDir(), opts, seglog.Nop())
	require.NoError(t, err)
	return d
}

func TestAtomicWriteThenRead(t *testing.T) {
	d := newTestDirectory(t)

	require.NoError(t, d.AtomicWrite("foo.terms", []byte("hello")))

	got, err := d.AtomicRead("foo.terms")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)

	exists, err := d.Exists("foo.terms")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestExistsFalseForMissingPath(t *testing.T) {
	d := newTestDirectory(t)
	exists, err := d.Exists("missing.terms")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestDeleteIsIdempotent(t *testing.T) {
	d := newTestDirectory(t)
	require.NoError(t, d.AtomicWrite("foo.terms", []byte("x")))
	require.NoError(t, d.Delete("foo.terms"))
	require.NoError(t, d.Delete("foo.terms"))

	exists, err := d.Exists("foo.terms")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestOpenReadableReadBytesSpansMultipleBlocks(t *testing.T) {
	d := newTestDirectory(t)

	data := make([]byte, options.BlockSize*3+17)
	rand.New(rand.NewSource(1)).Read(data)
	require.NoError(t, d.AtomicWrite("big.postings", data))

	fh, err := d.OpenReadable("big.postings")
	require.NoError(t, err)
	defer fh.Close()

	require.Equal(t, int64(len(data)), fh.Size())

	from := int64(100)
	to := int64(options.BlockSize*2 + 5)
	got, err := fh.ReadBytes(from, to)
	require.NoError(t, err)
	require.Equal(t, data[from:to], got)
}

func TestReadBytesCacheHitMatchesMiss(t *testing.T) {
	d := newTestDirectory(t)

	data := make([]byte, options.BlockSize*2)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, d.AtomicWrite("cached.postings", data))

	fh, err := d.OpenReadable("cached.postings")
	require.NoError(t, err)
	defer fh.Close()

	first, err := fh.ReadBytes(0, int64(len(data)))
	require.NoError(t, err)

	second, err := fh.ReadBytes(0, int64(len(data)))
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, data, first)
}

func TestOpenWritableCreatesFile(t *testing.T) {
	d := newTestDirectory(t)
	w, err := d.OpenWritable("fresh.store")
	require.NoError(t, err)
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := d.AtomicRead("fresh.store")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)
}
