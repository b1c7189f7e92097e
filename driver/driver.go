// Package driver implements the firmware-facing driver shell: the Volume
// and File state machines (C5, C6), the driver-binding lifecycle (C7), and
// the Install/Uninstall sequencing that wires the singleton guard, logging,
// and the loaded-image unload callback together at image entry.
//
// It is grounded on original_source/src/fs_driver.c: FileOpen, FileClose,
// FileDelete, FileRead/FileReadDir, FileSetPosition, FileGetPosition,
// FileGetInfo, FileSetInfo, FileFlush, FileOpenVolume, FSBindingSupported/
// Start/Stop, and FSDriverInstall/FSDriverUninstall, restructured into Go
// methods on *File, *Volume and *Binding.
package driver

import (
	"github.com/efifs/corefs/transport"
	"github.com/google/uuid"
)

// simpleFileSystemGUID is the GUID this driver installs its simple file
// system protocol under on each bound controller's own protocol directory.
// A single constant suffices because every Controller owns an independent
// transport.ProtocolDirectory standing in for its own firmware handle, the
// real analogue of EFI_SIMPLE_FILE_SYSTEM_PROTOCOL_GUID being the same
// value on every handle it's installed on.
var simpleFileSystemGUID = uuid.MustParse("0964e5b2-6459-11d2-8e39-00a0c969723b")

// InfoType selects which GetInfo record a File reports (spec §4.3, "generic
// file info" / "filesystem info" / "filesystem volume label info").
type InfoType int

const (
	InfoGeneric InfoType = iota
	InfoFileSystem
	InfoVolumeLabel
)

// Controller bundles the per-controller resources a Binding binds to: the
// byte-addressable disk and block transports backing the candidate
// partition, and the protocol directory standing in for that controller's
// own firmware handle (where the simple file system protocol is installed
// and later looked up again to unbind). DevicePath is recorded for logging
// only.
type Controller struct {
	Disk       transport.DiskIO
	Block      transport.BlockIO
	Protocols  transport.ProtocolDirectory
	DevicePath string
}

// LocateVolume looks up the simple file system protocol a Binding's Start
// installed on ctrl, the way firmware consumer code would call
// BS->HandleProtocol(controller, &gEfiSimpleFileSystemProtocolGuid, ...)
// to get at OpenVolume. It returns ok=false if nothing is bound there yet.
func LocateVolume(ctrl *Controller) (*Volume, bool) {
	iface, err := ctrl.Protocols.Locate(simpleFileSystemGUID)
	if err != nil {
		return nil, false
	}
	volume, ok := iface.(*Volume)
	return volume, ok
}
