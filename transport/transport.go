// Package transport declares the firmware-side interfaces the driver shell
// consumes: disk/block I/O, the protocol database, the loaded-image handle
// used to register an Unload callback, and variable services for reading
// FS_LOGGING. These stand in for the gnu-efi calls (BS->LocateProtocol,
// BS->InstallProtocolInterfaces, DiskIo->ReadDisk, RT->GetVariable...) the
// original C driver makes directly against the UEFI boot/runtime services
// tables (spec §6 "Firmware boundary: protocols consumed").
//
// Expressing the boundary as interfaces rather than calling a global table
// lets the driver shell run the same code against the real firmware services
// and against transport/fakefirmware's in-memory stand-ins.
package transport

import (
	"errors"

	"github.com/google/uuid"
)

// ErrProtocolNotFound is returned by ProtocolDirectory.Locate when no
// protocol is installed under the given GUID, mirroring EFI_NOT_FOUND from
// BS->LocateProtocol.
var ErrProtocolNotFound = errors.New("transport: protocol not found")

// ErrAlreadyInstalled is returned by ProtocolDirectory.Install when a
// protocol is already registered under the given GUID.
var ErrAlreadyInstalled = errors.New("transport: protocol already installed")

// DiskIO is the byte-addressable disk transport the driver reads file and
// directory data through.
type DiskIO interface {
	// ReadDisk reads len(buffer) bytes starting at the given byte offset
	// into the medium identified by mediaID.
	ReadDisk(mediaID uint32, offset int64, buffer []byte) error
}

// BlockIO exposes the read-only media metadata the driver needs to bound
// reads and report volume size.
type BlockIO interface {
	MediaID() uint32
	BlockSize() uint32
	LastBlock() uint64
}

// ProtocolDirectory is the subset of the UEFI boot services protocol
// database the driver uses: locating and installing GUID-keyed protocol
// interfaces, used both for the per-filesystem singleton mutex (C8) and for
// publishing the driver's own protocols on the controller handle.
type ProtocolDirectory interface {
	// Locate returns the interface installed under guid, or
	// ErrProtocolNotFound if none is installed.
	Locate(guid uuid.UUID) (any, error)

	// Install registers iface under guid. It returns ErrAlreadyInstalled if
	// guid is already registered.
	Install(guid uuid.UUID, iface any) error

	// Uninstall removes the protocol registered under guid. It is a no-op
	// if nothing is installed there.
	Uninstall(guid uuid.UUID)
}

// LoadedImage lets the driver register the callback the firmware invokes
// when the driver image is unloaded (spec §4.1 Uninstall).
type LoadedImage interface {
	SetUnload(fn func() error)
}

// VariableService exposes the subset of UEFI runtime variable services the
// driver needs: reading the FS_LOGGING variable at image entry.
type VariableService interface {
	// GetVariable returns the named variable's value and true, or ("",
	// false) if the variable does not exist.
	GetVariable(name string) (string, bool)
}
