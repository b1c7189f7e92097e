package driver

import (
	"github.com/efifs/corefs"
	"github.com/efifs/corefs/parserkit"
	"github.com/efifs/corefs/transport"
)

// Volume represents one bound controller that has been probed successfully
// (spec §4.2, C6). Its root File's lifetime equals the Volume's own.
type Volume struct {
	disk       transport.DiskIO
	block      transport.BlockIO
	kit        parserkit.Kit
	device     parserkit.Device
	devicePath string
	root       *File
	openFiles  int // live non-root Files, tracked for Stop's leak check
}

// newVolume allocates the parser device, probes it, and builds the root
// File. On probe failure the parser device is torn down before returning,
// matching Start's documented unwind-in-reverse behavior.
func newVolume(disk transport.DiskIO, block transport.BlockIO, kit parserkit.Kit, devicePath string) (*Volume, error) {
	mediaID := block.MediaID()
	device, err := kit.DeviceInit(disk, mediaID)
	if err != nil {
		return nil, err
	}
	if !kit.Probe(device) {
		kit.DeviceExit(device)
		return nil, efifs.NewDriverError(efifs.StatusUnsupported, "parser kit did not recognize the on-disk format")
	}

	v := &Volume{disk: disk, block: block, kit: kit, device: device, devicePath: devicePath}
	v.root = &File{volume: v, isDir: true, path: "/", refcount: 1}
	return v, nil
}

// OpenVolume returns the Volume's root File. It performs no mount work of
// its own: mounting already happened at bind-start, so every call
// returns synchronously with a handle usable immediately.
func (v *Volume) OpenVolume() *File {
	return v.root
}

// close tears down the parser device. The caller (Binding.stopLocked) is
// responsible for uninstalling the published protocol first. The disk
// transport has no open/close step in this package, so nothing is released
// on it here.
func (v *Volume) close() {
	v.kit.DeviceExit(v.device)
}
