package bpkfs

import (
	"bytes"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somfy-oss/bpk"
)

func buildContainer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bpk")

	c, err := bpk.Create(path)
	require.NoError(t, err)
	require.NoError(t, c.Write(bpk.TypeBootloader, 0, bytes.NewReader(bytes.Repeat([]byte{0xAA}, 64))))
	require.NoError(t, c.Write(bpk.TypeKernel, 0, bytes.NewReader(bytes.Repeat([]byte{0xBB}, 128))))
	require.NoError(t, c.Write(bpk.TypeKernel, 1, bytes.NewReader(bytes.Repeat([]byte{0xCC}, 32))))
	require.NoError(t, c.Close())

	return path
}

func TestNewScansAllPartitions(t *testing.T) {
	path := buildContainer(t)

	fsys, err := New(path)
	require.NoError(t, err)
	defer fsys.Close()

	assert.Len(t, fsys.entries, 3)
}

func TestOpenAndReadPartitionFile(t *testing.T) {
	path := buildContainer(t)

	fsys, err := New(path)
	require.NoError(t, err)
	defer fsys.Close()

	f, err := fsys.Open(bpk.TypeName(bpk.TypeBootloader))
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, 64), data)
}

func TestDuplicateTypeDisambiguatedByHwID(t *testing.T) {
	path := buildContainer(t)

	fsys, err := New(path)
	require.NoError(t, err)
	defer fsys.Close()

	base := bpk.TypeName(bpk.TypeKernel)

	f0, err := fsys.Open(base)
	require.NoError(t, err)
	data0, err := io.ReadAll(f0)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xBB}, 128), data0)

	f1, err := fsys.Open(base + ".1")
	require.NoError(t, err)
	data1, err := io.ReadAll(f1)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xCC}, 32), data1)
}

func TestCRCSidecar(t *testing.T) {
	path := buildContainer(t)

	fsys, err := New(path)
	require.NoError(t, err)
	defer fsys.Close()

	name := bpk.TypeName(bpk.TypeBootloader)
	f, err := fsys.Open(name + crcSidecarSuffix)
	require.NoError(t, err)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Regexp(t, "^[0-9a-f]{8}\n$", string(data))
}

func TestOpenMissingReturnsNotExist(t *testing.T) {
	path := buildContainer(t)

	fsys, err := New(path)
	require.NoError(t, err)
	defer fsys.Close()

	_, err = fsys.Open("nope")
	assert.True(t, fs.IsNotExist(err))
}

func TestReadDirListsFilesAndSidecars(t *testing.T) {
	path := buildContainer(t)

	fsys, err := New(path)
	require.NoError(t, err)
	defer fsys.Close()

	entries, err := fs.ReadDir(fsys, ".")
	require.NoError(t, err)
	assert.Len(t, entries, 6) // 3 partitions + 3 sidecars
}

func TestPartitionFileReadAt(t *testing.T) {
	path := buildContainer(t)

	fsys, err := New(path)
	require.NoError(t, err)
	defer fsys.Close()

	f, err := fsys.Open(bpk.TypeName(bpk.TypeBootloader))
	require.NoError(t, err)

	ra, ok := f.(io.ReaderAt)
	require.True(t, ok)

	buf := make([]byte, 8)
	n, err := ra.ReadAt(buf, 16)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, 8), buf)
}

func TestFSStatOk(t *testing.T) {
	path := buildContainer(t)

	fsys, err := New(path)
	require.NoError(t, err)
	defer fsys.Close()

	info, err := fs.Stat(fsys, bpk.TypeName(bpk.TypeBootloader))
	require.NoError(t, err)
	assert.Equal(t, int64(64), info.Size())
	assert.False(t, info.IsDir())
}
