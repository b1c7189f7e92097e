// Package parserkit declares the boundary between the driver shell and the
// opaque, read-only filesystem parser for one on-disk format (spec §4.4,
// C4). The parser kit knows how to walk one filesystem's on-disk layout; the
// driver shell knows how to speak the firmware's file-handle protocol. This
// package is the seam between them, and the only thing either side needs to
// agree on.
//
// It generalizes the GRUB adapter the original C driver links against
// (grub.c, grubberize.c): GRUB's grub_fs_t vtable (dir/open/read/close/label/
// uuid, one instance per registered filesystem module) reduced to the
// handful of operations the driver shell actually drives, plus the
// grub_disk_read bridge (grubberize.c) that lets the parser read through the
// firmware's disk transport at a fixed 512-byte logical sector size
// regardless of the media's own block size.
package parserkit

import "github.com/efifs/corefs/transport"

// SectorSize is the fixed logical sector size parser kits read against,
// independent of the underlying media's block size. Mirrors
// GRUB_DISK_SECTOR_SIZE in grubberize.c's grub_disk_read.
const SectorSize = 512

// Device is an opaque handle a Kit hands back from DeviceInit, threaded
// through every later call against one Volume.
type Device any

// ParserFile is an opaque handle a Kit hands back from Open, threaded
// through Read and Close for one regular file.
type ParserFile any

// DirEntryInfo is what a Kit reports about one directory entry to a
// DirHookFunc: whether it is itself a directory, and its modification time
// as a 32-bit UNIX timestamp (spec §4.9).
type DirEntryInfo struct {
	IsDirectory bool
	ModTime     int32
}

// DirHookFunc is invoked once per directory entry by Dir. Returning true
// aborts the iteration (the entry the caller wanted has been found);
// returning false continues to the next entry.
type DirHookFunc func(name string, info DirEntryInfo) bool

// Kit is the set of operations the driver shell needs from a filesystem
// parser. One Kit implementation exists per supported filesystem family;
// one Device exists per mounted Volume.
type Kit interface {
	// DeviceInit allocates a parser device bound to disk, reading through
	// it at SectorSize granularity. Must be paired with DeviceExit.
	DeviceInit(disk transport.DiskIO, mediaID uint32) (Device, error)

	// DeviceExit releases a parser device. It is a no-op if dev is nil.
	DeviceExit(dev Device)

	// Probe attempts a root directory listing to determine whether dev
	// holds a filesystem this Kit recognizes.
	Probe(dev Device) bool

	// Open prepares byte-stream access to the regular file named by path
	// (an absolute, normalized POSIX-style path). It must not be called for
	// directories.
	Open(dev Device, path string) (ParserFile, error)

	// Close releases a ParserFile. Never called for directories, since
	// directories are never Open'd.
	Close(f ParserFile)

	// Read reads up to len(buf) bytes from f starting at offset, clamping
	// internally against the file's size. It does not retain offset
	// between calls; every call states its own absolute offset.
	Read(f ParserFile, buf []byte, offset int64) (int, error)

	// Size reports the decompressed, logical size of an open regular file,
	// the way grub_file_t carries its own `size` field once grub_file_open
	// succeeds.
	Size(f ParserFile) int64

	// Dir iterates the entries of the directory named by path, invoking
	// hook once per entry until hook returns true or entries are exhausted.
	Dir(dev Device, path string, hook DirHookFunc) error

	// Label returns the volume label, which may be empty if the filesystem
	// has none.
	Label(dev Device) (string, error)

	// UUID returns a best-effort volume identifier, or ok=false if this
	// filesystem family has none to offer.
	UUID(dev Device) (id string, ok bool)
}

// Factory constructs a fresh Kit instance, one per mounted Volume, the way
// the original driver instantiates one grub_fs_t binding per controller it
// binds to.
type Factory func() Kit

// SectorReader is the disk-read bridge a Kit implementation installs to
// service its own block I/O: it reads through disk at the fixed SectorSize
// sector convention, mirroring grub_disk_read's
// "sector * GRUB_DISK_SECTOR_SIZE + offset" address computation.
type SectorReader struct {
	Disk    transport.DiskIO
	MediaID uint32
}

// ReadSector reads len(buf) bytes starting at SectorSize*sector+offset.
func (r SectorReader) ReadSector(sector uint64, offset int64, buf []byte) error {
	return r.Disk.ReadDisk(r.MediaID, int64(sector)*SectorSize+offset, buf)
}
