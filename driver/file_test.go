package driver_test

import (
	"testing"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_NestedRegularFile_ReportsGenericInfo(t *testing.T) {
	// S2.
	_, _, root := startedVolume(t)

	f, status := root.Open("\\dir1\\sub\\hello.bin", efifs.ModeRead)
	require.Equal(t, efifs.StatusSuccess, status)

	info, status := f.GetInfo(driver.InfoGeneric)
	require.Equal(t, efifs.StatusSuccess, status)

	fi := info.(efifs.FileInfo)
	assert.Equal(t, uint64(len("aaaaaaaaaa bbbbbbbbbbbb binary payload")), fi.FileSize)
	assert.Equal(t, fi.FileSize, fi.PhysicalSize)
	assert.Equal(t, efifs.AttrReadOnly, fi.Attribute)
	assert.Equal(t, "hello.bin", fi.FileName)
}

func TestSeekAndRead(t *testing.T) {
	// S3.
	_, _, root := startedVolume(t)
	f, status := root.Open("/dir1/sub/hello.bin", efifs.ModeRead)
	require.Equal(t, efifs.StatusSuccess, status)

	require.Equal(t, efifs.StatusSuccess, f.SetPosition(2))
	buf := make([]byte, 2)
	n, status := f.Read(buf)
	require.Equal(t, efifs.StatusSuccess, status)
	assert.Equal(t, 2, n)
	assert.Equal(t, "aa", string(buf))

	require.Equal(t, efifs.StatusSuccess, f.SetPosition(0xFFFF_FFFF_FFFF_FFFF))
	assert.Equal(t, uint64(38), f.GetPosition())

	assert.Equal(t, efifs.StatusUnsupported, f.SetPosition(1000))
}

func TestOpen_ReopenCurrentAndParentOfRoot(t *testing.T) {
	// S4.
	_, _, root := startedVolume(t)

	same, status := root.Open(".", efifs.ModeRead)
	require.Equal(t, efifs.StatusSuccess, status)
	assert.Same(t, root, same)

	_, status = root.Open("..", efifs.ModeRead)
	assert.Equal(t, efifs.StatusNotFound, status)

	empty, status := root.Open("", efifs.ModeRead)
	require.Equal(t, efifs.StatusSuccess, status)
	assert.Same(t, root, empty)
}

func TestOpen_RejectsWriteModes(t *testing.T) {
	// S5.
	_, _, root := startedVolume(t)

	_, status := root.Open("hello.txt", efifs.ModeWrite)
	assert.Equal(t, efifs.StatusWriteProtected, status)

	f, status := root.Open("hello.txt", efifs.ModeRead)
	require.Equal(t, efifs.StatusSuccess, status)

	_, status = f.Write([]byte("x"))
	assert.Equal(t, efifs.StatusWriteProtected, status)

	assert.Equal(t, efifs.StatusWarnDeleteFailure, f.Delete())
}

func TestOpen_NotFound(t *testing.T) {
	_, _, root := startedVolume(t)
	_, status := root.Open("nope.txt", efifs.ModeRead)
	assert.Equal(t, efifs.StatusNotFound, status)
}

func TestOpen_DirectoryThenGetFileSystemInfo(t *testing.T) {
	_, _, root := startedVolume(t)

	dir, status := root.Open("dir1", efifs.ModeRead)
	require.Equal(t, efifs.StatusSuccess, status)

	info, status := dir.GetInfo(driver.InfoFileSystem)
	require.Equal(t, efifs.StatusSuccess, status)
	fsi := info.(efifs.FileSystemInfo)
	assert.True(t, fsi.ReadOnly)
	assert.Equal(t, uint32(512), fsi.BlockSize)
	assert.Equal(t, "FIXTURE-LABEL", fsi.VolumeLabel)

	label, status := dir.GetInfo(driver.InfoVolumeLabel)
	require.Equal(t, efifs.StatusSuccess, status)
	assert.Equal(t, "FIXTURE-LABEL", label)
}

func TestSetInfoAndFlush(t *testing.T) {
	_, _, root := startedVolume(t)
	f, status := root.Open("hello.txt", efifs.ModeRead)
	require.Equal(t, efifs.StatusSuccess, status)

	assert.Equal(t, efifs.StatusWriteProtected, f.SetInfo())
	assert.Equal(t, efifs.StatusSuccess, f.Flush())
}

func TestOpen_CorruptCompressedFilePropagatesCRCError(t *testing.T) {
	_, _, root := startedVolume(t)
	_, status := root.Open("corrupt.bin", efifs.ModeRead)
	assert.Equal(t, efifs.StatusCRCError, status)
}

func TestClose_RootNeverFreed(t *testing.T) {
	// Invariant #4.
	_, _, root := startedVolume(t)
	root.Close()
	root.Close()

	// Root is still usable after any number of Close calls.
	_, status := root.Open("hello.txt", efifs.ModeRead)
	assert.Equal(t, efifs.StatusSuccess, status)
}
