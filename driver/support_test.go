package driver_test

import (
	"fmt"
	"testing"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/driver"
	"github.com/efifs/corefs/fixtures"
	"github.com/efifs/corefs/parserkit"
	"github.com/efifs/corefs/transport/fakefirmware"
	"github.com/stretchr/testify/require"
)

const testVolumeUUID = "11111111-2222-3333-4444-555555555555"

func newController(mediaID uint32) *driver.Controller {
	disk := fakefirmware.NewDisk(mediaID, 512, 16)
	return &driver.Controller{
		Disk:       disk,
		Block:      disk,
		Protocols:  fakefirmware.NewProtocolDirectory(),
		DevicePath: fmt.Sprintf("fake-disk-%d", mediaID),
	}
}

func fixtureFactory() parserkit.Factory {
	return func() parserkit.Kit {
		return fixtures.New("FIXTURE-LABEL", testVolumeUUID)
	}
}

// startedVolume boots a Binding against a single fresh controller and
// returns its root File, ready for Open/Read/etc. calls.
func startedVolume(t *testing.T) (*driver.Binding, *driver.Controller, *driver.File) {
	t.Helper()
	b := driver.NewBinding("FIXTURE", 1, 0, "corefs", fixtureFactory())
	ctrl := newController(1)

	require.Equal(t, efifs.StatusSuccess, b.Start(ctrl))

	volume, ok := driver.LocateVolume(ctrl)
	require.True(t, ok)
	return b, ctrl, volume.OpenVolume()
}
