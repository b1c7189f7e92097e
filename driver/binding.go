// This file implements the driver-binding lifecycle (C7) and the
// Install/Uninstall sequencing invoked once per loaded image, grounded on
// original_source/src/fs_driver.c's FSBindingSupported/Start/Stop and
// FSDriverInstall/FSDriverUninstall.
package driver

import (
	"fmt"
	"io"
	"sync"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/componentname"
	"github.com/efifs/corefs/efilog"
	"github.com/efifs/corefs/parserkit"
	"github.com/efifs/corefs/singleton"
	"github.com/efifs/corefs/transport"
	"github.com/hashicorp/go-multierror"
)

// BindingVersion places every driver built from this shell in the IHV
// band, matching the original's EFI_DRIVER_BINDING_PROTOCOL.Version.
const BindingVersion = 0x10

// Binding publishes Supported/Start/Stop for one filesystem family,
// identified by fsName (looked up in package registry for its singleton
// GUID) and backed by one parserkit.Kit instance per bound Controller.
type Binding struct {
	fsName                     string
	versionMajor, versionMinor int
	pkg                        string
	kitFactory                 parserkit.Factory
	log                        *efilog.Logger

	guard *singleton.Guard

	mu      sync.Mutex
	volumes map[*Controller]*Volume
}

// NewBinding creates a Binding for one filesystem family. pkg names the
// package the driver name reports, e.g. "corefs".
func NewBinding(fsName string, versionMajor, versionMinor int, pkg string, kitFactory parserkit.Factory) *Binding {
	return &Binding{
		fsName:       fsName,
		versionMajor: versionMajor,
		versionMinor: versionMinor,
		pkg:          pkg,
		kitFactory:   kitFactory,
		log:          efilog.Discard,
		volumes:      make(map[*Controller]*Volume),
	}
}

// DriverName formats the name this Binding's component name protocols
// report for the given language tag.
func (b *Binding) DriverName(language string) (string, bool) {
	return componentname.GetDriverName(b.fsName, b.versionMajor, b.versionMinor, b.pkg, language)
}

// Install performs the once-per-image-load setup (spec §4.1 Install):
// configuring logging from the FS_LOGGING-style variable, acquiring the
// per-filesystem singleton mutex, and registering the Uninstall callback on
// the loaded image. It returns an error without registering anything if the
// singleton is already held by another loaded instance (S6/S9).
func (b *Binding) Install(w io.Writer, mutexDir transport.ProtocolDirectory, image transport.LoadedImage, vars transport.VariableService) error {
	value, ok := vars.GetVariable("FS_LOGGING")
	b.log = efilog.NewFromEnv(w, value, ok)

	b.guard = singleton.NewGuard(mutexDir)
	if err := b.guard.Acquire(b.fsName); err != nil {
		b.log.Error("install: %s", err)
		return err
	}

	image.SetUnload(b.Uninstall)
	return nil
}

// Uninstall is the callback registered on the loaded image. It disconnects
// only the controllers this Binding itself bound (never another loaded
// driver's handles, S9), tearing each down best-effort, then releases the
// singleton mutex so a future load of this filesystem can succeed.
func (b *Binding) Uninstall() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs *multierror.Error
	for ctrl, volume := range b.volumes {
		if err := b.stopLocked(ctrl, volume); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if b.guard != nil {
		b.guard.Release()
	}
	return errs.ErrorOrNil()
}

// Supported reports whether this Binding is willing to bind ctrl. It never
// touches the parser kit (S8): ranking candidate drivers is the firmware's
// job, and probing on-disk content here would be wasted work performed
// again at Start, or worse, performed on a controller this driver never
// ends up binding.
func (b *Binding) Supported(ctrl *Controller) efifs.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, already := b.volumes[ctrl]; already {
		return efifs.StatusAccessDenied
	}
	return efifs.StatusSuccess
}

// Start binds ctrl: constructs a fresh parser device, probes it, and on
// success installs the simple file system entry point on ctrl's own
// protocol directory. On any failure it unwinds in reverse, leaving ctrl
// untouched.
func (b *Binding) Start(ctrl *Controller) efifs.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, already := b.volumes[ctrl]; already {
		return efifs.StatusAccessDenied
	}

	kit := b.kitFactory()
	volume, err := newVolume(ctrl.Disk, ctrl.Block, kit, ctrl.DevicePath)
	if err != nil {
		b.log.Warning("start: %s: %s", ctrl.DevicePath, err)
		return statusFromNewVolumeErr(err)
	}

	if err := ctrl.Protocols.Install(simpleFileSystemGUID, volume); err != nil {
		volume.close()
		b.log.Warning("start: %s: could not install simple file system protocol: %s", ctrl.DevicePath, err)
		return efifs.StatusAccessDenied
	}

	b.volumes[ctrl] = volume
	b.log.Info("start: bound %s", ctrl.DevicePath)
	return efifs.StatusSuccess
}

// Stop unbinds ctrl, tearing down its Volume best-effort. Open child Files
// at this moment indicate a firmware bug. The driver tolerates this,
// recording it rather than aborting the unwind (spec §4.1 Stop).
func (b *Binding) Stop(ctrl *Controller) efifs.Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	volume, ok := b.volumes[ctrl]
	if !ok {
		return efifs.StatusNotFound
	}
	if err := b.stopLocked(ctrl, volume); err != nil {
		b.log.Warning("stop: %s: %s", ctrl.DevicePath, err)
	}
	return efifs.StatusSuccess
}

// stopLocked performs the actual teardown sequence for one controller,
// already-bound caller holding b.mu. It always completes the unwind,
// returning a non-nil error only to report best-effort failures the caller
// should log/aggregate.
func (b *Binding) stopLocked(ctrl *Controller, volume *Volume) error {
	var errs *multierror.Error
	if n := volume.openFiles; n > 0 {
		errs = multierror.Append(errs, fmt.Errorf(
			"stop: %s: %d file handle(s) still open", ctrl.DevicePath, n,
		))
	}

	ctrl.Protocols.Uninstall(simpleFileSystemGUID)
	volume.close()
	delete(b.volumes, ctrl)

	return errs.ErrorOrNil()
}

func statusFromNewVolumeErr(err error) efifs.Status {
	if de, ok := err.(*efifs.DriverError); ok {
		return de.Status()
	}
	return statusFromParserErr(asParserError(err))
}

func asParserError(err error) efifs.ParserError {
	if pe, ok := err.(efifs.ParserError); ok {
		return pe
	}
	return efifs.ErrDeviceError
}
