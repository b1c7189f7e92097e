package driver

import (
	"strings"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/civiltime"
	"github.com/efifs/corefs/internal/pathnorm"
	"github.com/efifs/corefs/parserkit"
)

// File is one open handle to a regular file or directory on a Volume (C5).
// The same cursor field carries the directory enumeration index and the
// regular-file byte offset, since a File is never both at once.
type File struct {
	volume     *Volume
	isDir      bool
	modTime    int32
	path       string // absolute, normalized POSIX path
	cursor     int64
	parserFile parserkit.ParserFile // nil for directories
	refcount   int
}

func (f *File) basename() string {
	if f.path == "/" {
		return ""
	}
	idx := strings.LastIndexByte(f.path, '/')
	return f.path[idx+1:]
}

func parentOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

func isBadFileType(err error) bool {
	pe, ok := err.(efifs.ParserError)
	return ok && pe == efifs.ErrBadFileType
}

// statusFromParserErr maps a parser kit error to a firmware status via C1.
// Errors that aren't a recognized efifs.ParserError (a bug in some Kit
// implementation) fall back to StatusDeviceError rather than panicking.
func statusFromParserErr(err error) efifs.Status {
	if err == nil {
		return efifs.StatusSuccess
	}
	if pe, ok := err.(efifs.ParserError); ok {
		return efifs.ToStatus(pe)
	}
	return efifs.StatusDeviceError
}

// Open resolves name against self and returns the target File (spec §4.3
// Open). Backslash separators in name are replaced by "/" before the path
// is normalized.
func (f *File) Open(name string, mode efifs.OpenMode) (*File, efifs.Status) {
	if mode != efifs.ModeRead {
		return nil, efifs.StatusWriteProtected
	}

	name = strings.ReplaceAll(name, "\\", "/")

	if name == "" || name == "." {
		f.refcount++
		return f, efifs.StatusSuccess
	}
	if name == ".." && f.path == "/" {
		return nil, efifs.StatusNotFound
	}

	var full string
	if strings.HasPrefix(name, "/") {
		full = name
	} else {
		full = joinPath(f.path, name)
	}
	full = pathnorm.Normalize(full)

	if full == "/" {
		return f.volume.root, efifs.StatusSuccess
	}

	parent := parentOf(full)
	base := full[strings.LastIndexByte(full, '/')+1:]

	var found bool
	var info parserkit.DirEntryInfo
	err := f.volume.kit.Dir(f.volume.device, parent, func(entryName string, entryInfo parserkit.DirEntryInfo) bool {
		if entryName == base {
			found = true
			info = entryInfo
			return true
		}
		return false
	})
	if err != nil {
		return nil, statusFromParserErr(err)
	}
	if !found {
		return nil, efifs.StatusNotFound
	}

	target := &File{volume: f.volume, isDir: info.IsDirectory, modTime: info.ModTime, path: full, refcount: 1}
	if !info.IsDirectory {
		pf, err := f.volume.kit.Open(f.volume.device, full)
		if err != nil {
			return nil, statusFromParserErr(err)
		}
		target.parserFile = pf
	}
	f.volume.openFiles++
	return target, efifs.StatusSuccess
}

// Close releases one reference to self (spec §4.3 Close). The Volume's
// root File is never freed.
func (f *File) Close() {
	if f == f.volume.root {
		return
	}
	f.refcount--
	if f.refcount > 0 {
		return
	}
	if f.parserFile != nil {
		f.volume.kit.Close(f.parserFile)
	}
	f.volume.openFiles--
}

// Delete always reports warn-delete-failure; deletion is never supported by
// a read-only driver, but the firmware still mandates that the handle be
// closed as a side effect.
func (f *File) Delete() efifs.Status {
	f.Close()
	return efifs.StatusWarnDeleteFailure
}

// Read reads regular-file bytes at the current offset, advancing it by the
// number of bytes returned. Directory reads are handled by readDirEntry.
func (f *File) Read(buf []byte) (int, efifs.Status) {
	if f.isDir {
		return f.readDirEntry(buf)
	}

	n, err := f.volume.kit.Read(f.parserFile, buf, f.cursor)
	if err != nil {
		// Every failed read is reported as a device error, whatever the
		// parser's own error kind.
		return 0, efifs.StatusDeviceError
	}
	f.cursor += int64(n)
	return n, efifs.StatusSuccess
}

// Write always fails: this driver publishes a read-only file system.
func (f *File) Write([]byte) (int, efifs.Status) {
	return 0, efifs.StatusWriteProtected
}

const seekToEnd = 0xFFFF_FFFF_FFFF_FFFF

// SetPosition repositions self's cursor (spec §4.3 SetPosition).
func (f *File) SetPosition(position uint64) efifs.Status {
	if f.isDir {
		if position != 0 {
			return efifs.StatusInvalidParameter
		}
		f.cursor = 0
		return efifs.StatusSuccess
	}

	size := f.volume.kit.Size(f.parserFile)
	if position == seekToEnd {
		f.cursor = size
		return efifs.StatusSuccess
	}
	if int64(position) > size {
		return efifs.StatusUnsupported
	}
	f.cursor = int64(position)
	return efifs.StatusSuccess
}

// GetPosition returns the directory cursor for directories, the byte
// offset for regular files, both modeled by the same field.
func (f *File) GetPosition() uint64 {
	return uint64(f.cursor)
}

// GetInfo reports one of the three record shapes the firmware can ask a
// File for (spec §4.3 GetInfo).
func (f *File) GetInfo(infoType InfoType) (any, efifs.Status) {
	switch infoType {
	case InfoGeneric:
		attr := efifs.AttrReadOnly
		if f.isDir {
			attr |= efifs.AttrDirectory
		}
		var size uint64
		if !f.isDir {
			size = uint64(f.volume.kit.Size(f.parserFile))
		}
		civil := civiltime.ToCivil(f.modTime)
		return efifs.FileInfo{
			FileSize:       size,
			PhysicalSize:   size,
			CreateTime:     civil,
			LastAccessTime: civil,
			ModTime:        civil,
			Attribute:      attr,
			FileName:       f.basename(),
		}, efifs.StatusSuccess

	case InfoFileSystem:
		blockSize := f.volume.block.BlockSize()
		if blockSize == 0 {
			blockSize = 512
		}
		label, err := f.volume.kit.Label(f.volume.device)
		if err != nil {
			return nil, statusFromParserErr(err)
		}
		return efifs.FileSystemInfo{
			ReadOnly:    true,
			VolumeSize:  (f.volume.block.LastBlock() + 1) * uint64(blockSize),
			FreeSpace:   0,
			BlockSize:   blockSize,
			VolumeLabel: label,
		}, efifs.StatusSuccess

	case InfoVolumeLabel:
		label, err := f.volume.kit.Label(f.volume.device)
		if err != nil {
			return nil, statusFromParserErr(err)
		}
		return label, efifs.StatusSuccess

	default:
		return nil, efifs.StatusUnsupported
	}
}

// SetInfo always fails: attribute/name/size changes all require a write.
func (f *File) SetInfo() efifs.Status {
	return efifs.StatusWriteProtected
}

// Flush always succeeds: there is nothing buffered to write back.
func (f *File) Flush() efifs.Status {
	return efifs.StatusSuccess
}
