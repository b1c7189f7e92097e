package fakefirmware_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/efifs/corefs/transport"
	"github.com/efifs/corefs/transport/fakefirmware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisk_ReadDisk_RoundTrips(t *testing.T) {
	disk := fakefirmware.NewDisk(1, 512, 4)
	rws := disk.ReadWriteSeeker()
	_, err := rws.Write([]byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 5)
	err = disk.ReadDisk(1, 0, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
}

func TestDisk_ReadDisk_WrongMediaID(t *testing.T) {
	disk := fakefirmware.NewDisk(1, 512, 4)
	err := disk.ReadDisk(2, 0, make([]byte, 4))
	assert.Error(t, err)
}

func TestDisk_ReadDisk_OutOfBounds(t *testing.T) {
	disk := fakefirmware.NewDisk(1, 512, 1)
	err := disk.ReadDisk(1, 500, make([]byte, 100))
	assert.Error(t, err)
}

func TestDisk_LastBlock(t *testing.T) {
	disk := fakefirmware.NewDisk(1, 512, 4)
	assert.EqualValues(t, 3, disk.LastBlock())
}

func TestProtocolDirectory_InstallLocateUninstall(t *testing.T) {
	dir := fakefirmware.NewProtocolDirectory()
	guid := uuid.New()

	_, err := dir.Locate(guid)
	assert.ErrorIs(t, err, transport.ErrProtocolNotFound)

	require.NoError(t, dir.Install(guid, "some-interface"))

	iface, err := dir.Locate(guid)
	require.NoError(t, err)
	assert.Equal(t, "some-interface", iface)

	err = dir.Install(guid, "again")
	assert.ErrorIs(t, err, transport.ErrAlreadyInstalled)

	dir.Uninstall(guid)
	_, err = dir.Locate(guid)
	assert.ErrorIs(t, err, transport.ErrProtocolNotFound)
}

func TestFailingTeardown_AggregatesErrors(t *testing.T) {
	dir := fakefirmware.NewProtocolDirectory()
	guidA, guidB := uuid.New(), uuid.New()
	require.NoError(t, dir.Install(guidA, "a"))
	require.NoError(t, dir.Install(guidB, "b"))

	failing := fakefirmware.NewFailingTeardown(dir)
	errA := errors.New("teardown a failed")
	errB := errors.New("teardown b failed")
	failing.FailNextUninstall(guidA, errA)
	failing.FailNextUninstall(guidB, errB)

	failing.Uninstall(guidA)
	failing.Uninstall(guidB)

	err := failing.Errors()
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestLoadedImage_Unload(t *testing.T) {
	img := &fakefirmware.LoadedImage{}
	assert.NoError(t, img.Unload())

	called := false
	img.SetUnload(func() error {
		called = true
		return nil
	})
	assert.NoError(t, img.Unload())
	assert.True(t, called)
}

func TestVariableService_GetVariable(t *testing.T) {
	vars := fakefirmware.VariableService{"FS_LOGGING": "2"}

	value, ok := vars.GetVariable("FS_LOGGING")
	assert.True(t, ok)
	assert.Equal(t, "2", value)

	_, ok = vars.GetVariable("UNSET")
	assert.False(t, ok)
}
