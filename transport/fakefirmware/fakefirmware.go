// Package fakefirmware implements transport's interfaces in memory, for use
// in tests and the demo CLI in place of real UEFI boot/runtime services.
//
// It follows the same shape as the teacher's testing package
// (testing/images.go, testing/blockcache.go): a byte slice backing store
// wrapped in a bounds-checked accessor, built on
// github.com/xaionaro-go/bytesextra so the backing data can also be handed
// to an io.ReadWriteSeeker consumer directly.
package fakefirmware

import (
	"fmt"

	"github.com/efifs/corefs/transport"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/bytesextra"
)

// Disk is an in-memory medium implementing both transport.DiskIO and
// transport.BlockIO over a single byte slice.
type Disk struct {
	mediaID   uint32
	blockSize uint32
	data      []byte
}

// NewDisk creates a Disk of blockSize*totalBlocks bytes, all zeroed.
func NewDisk(mediaID uint32, blockSize uint32, totalBlocks uint64) *Disk {
	return &Disk{
		mediaID:   mediaID,
		blockSize: blockSize,
		data:      make([]byte, blockSize*uint32(totalBlocks)),
	}
}

// NewDiskFromBytes wraps existing backing data rather than allocating zeroed
// storage, mirroring LoadDiskImage's "stream over a fixed buffer" shape.
func NewDiskFromBytes(mediaID uint32, blockSize uint32, data []byte) *Disk {
	return &Disk{mediaID: mediaID, blockSize: blockSize, data: data}
}

// ReadWriteSeeker exposes the disk's backing storage as an
// io.ReadWriteSeeker, for tests or tools that want stream-style access
// rather than the DiskIO offset/buffer calling convention.
func (d *Disk) ReadWriteSeeker() *bytesextra.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(d.data)
}

func (d *Disk) ReadDisk(mediaID uint32, offset int64, buffer []byte) error {
	if mediaID != d.mediaID {
		return fmt.Errorf("fakefirmware: media id %d does not match disk's %d", mediaID, d.mediaID)
	}
	if offset < 0 || offset+int64(len(buffer)) > int64(len(d.data)) {
		return fmt.Errorf(
			"fakefirmware: read [%d, %d) outside disk bounds [0, %d)",
			offset, offset+int64(len(buffer)), len(d.data),
		)
	}
	copy(buffer, d.data[offset:offset+int64(len(buffer))])
	return nil
}

func (d *Disk) MediaID() uint32   { return d.mediaID }
func (d *Disk) BlockSize() uint32 { return d.blockSize }
func (d *Disk) LastBlock() uint64 {
	if d.blockSize == 0 {
		return 0
	}
	return uint64(len(d.data))/uint64(d.blockSize) - 1
}

// ProtocolDirectory is an in-memory transport.ProtocolDirectory backed by a
// GUID-keyed map, standing in for the firmware's protocol database.
type ProtocolDirectory struct {
	protocols map[uuid.UUID]any
}

// NewProtocolDirectory creates an empty protocol database.
func NewProtocolDirectory() *ProtocolDirectory {
	return &ProtocolDirectory{protocols: make(map[uuid.UUID]any)}
}

func (p *ProtocolDirectory) Locate(guid uuid.UUID) (any, error) {
	iface, ok := p.protocols[guid]
	if !ok {
		return nil, transport.ErrProtocolNotFound
	}
	return iface, nil
}

func (p *ProtocolDirectory) Install(guid uuid.UUID, iface any) error {
	if _, exists := p.protocols[guid]; exists {
		return transport.ErrAlreadyInstalled
	}
	p.protocols[guid] = iface
	return nil
}

func (p *ProtocolDirectory) Uninstall(guid uuid.UUID) {
	delete(p.protocols, guid)
}

// FailingTeardown wraps a ProtocolDirectory so that Uninstall of any GUID in
// failOn additionally records a simulated teardown failure, retrievable via
// Errors(). This exists to exercise the driver shell's best-effort teardown
// aggregation (Stop/Uninstall accumulate every failure with go-multierror
// rather than stopping at the first one).
type FailingTeardown struct {
	*ProtocolDirectory
	failOn map[uuid.UUID]error
	errs   *multierror.Error
}

// NewFailingTeardown wraps dir. No Uninstall fails until FailNextUninstall
// arms a GUID.
func NewFailingTeardown(dir *ProtocolDirectory) *FailingTeardown {
	return &FailingTeardown{ProtocolDirectory: dir, failOn: make(map[uuid.UUID]error)}
}

// FailNextUninstall arranges for the next Uninstall(guid) to record err.
func (f *FailingTeardown) FailNextUninstall(guid uuid.UUID, err error) {
	f.failOn[guid] = err
}

func (f *FailingTeardown) Uninstall(guid uuid.UUID) {
	if err, ok := f.failOn[guid]; ok {
		f.errs = multierror.Append(f.errs, err)
		delete(f.failOn, guid)
	}
	f.ProtocolDirectory.Uninstall(guid)
}

// Errors returns every simulated teardown failure recorded so far, or nil if
// none occurred.
func (f *FailingTeardown) Errors() error {
	if f.errs == nil {
		return nil
	}
	return f.errs.ErrorOrNil()
}

// LoadedImage is an in-memory transport.LoadedImage: it records the Unload
// callback so a test can invoke it directly.
type LoadedImage struct {
	unload func() error
}

func (l *LoadedImage) SetUnload(fn func() error) { l.unload = fn }

// Unload invokes the registered callback, or returns nil if none was set.
func (l *LoadedImage) Unload() error {
	if l.unload == nil {
		return nil
	}
	return l.unload()
}

// VariableService is an in-memory transport.VariableService backed by a
// plain map, standing in for RT->GetVariable.
type VariableService map[string]string

func (v VariableService) GetVariable(name string) (string, bool) {
	value, ok := v[name]
	return value, ok
}
