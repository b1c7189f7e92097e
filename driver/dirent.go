package driver

import (
	"github.com/efifs/corefs"
	"github.com/efifs/corefs/civiltime"
	"github.com/efifs/corefs/parserkit"
)

// dirScratch is the enumeration cursor's scratch state for one readDirEntry
// call (spec §4.3.1): a signed countdown seeded from the File's own cursor,
// plus the target entry's name and info once found. This stands in for the
// original driver's trick of repurposing two fields of the caller's record
// buffer as bookkeeping before overwriting them with their real meaning.
// Go has no portable equivalent of that union cast, so the repurposed
// fields get their own named type instead.
type dirScratch struct {
	countdown int64
	name      string
	info      parserkit.DirEntryInfo
	found     bool
}

// readDirEntry reconciles the parser kit's callback-per-entry Dir with the
// firmware's index-per-call directory Read: it re-walks the listing from
// the start every call, skipping entries until the countdown (seeded from
// the File's cursor) goes negative at the target entry.
func (f *File) readDirEntry(buf []byte) (int, efifs.Status) {
	scratch := &dirScratch{countdown: f.cursor}

	err := f.volume.kit.Dir(f.volume.device, f.path, func(name string, info parserkit.DirEntryInfo) bool {
		if name == "." || name == ".." {
			return false
		}
		scratch.countdown--
		if scratch.countdown >= 0 {
			return false
		}
		scratch.name = name
		scratch.info = info
		scratch.found = true
		return true
	})
	if err != nil {
		return 0, statusFromParserErr(err)
	}
	if !scratch.found {
		// Cursor is past the last entry: end-of-directory, repeatable.
		return 0, efifs.StatusSuccess
	}

	fileSize, status := f.childSize(scratch.name, scratch.info)
	if status != efifs.StatusSuccess {
		return 0, status
	}

	attr := efifs.AttrReadOnly
	if scratch.info.IsDirectory {
		attr |= efifs.AttrDirectory
	}
	civil := civiltime.ToCivil(scratch.info.ModTime)
	record := MarshalFileInfo(efifs.FileInfo{
		FileSize:       fileSize,
		PhysicalSize:   fileSize,
		CreateTime:     civil,
		LastAccessTime: civil,
		ModTime:        civil,
		Attribute:      attr,
		FileName:       scratch.name,
	})
	if len(record) > len(buf) {
		return 0, efifs.StatusBufferTooSmall
	}

	n := copy(buf, record)
	f.cursor++
	return n, efifs.StatusSuccess
}

// childSize opens a directory entry just long enough to read its size, the
// quadratic-but-acceptable step that gives every enumerated record a
// correct FileSize/PhysicalSize (spec §4.3.1). Directories are never
// opened, so they report zero. An entry the parser can't open because of
// its file type (S7, typically a symlink) is tolerated silently with size
// left at zero; any other open error propagates.
func (f *File) childSize(name string, info parserkit.DirEntryInfo) (uint64, efifs.Status) {
	if info.IsDirectory {
		return 0, efifs.StatusSuccess
	}

	childPath := joinPath(f.path, name)
	pf, err := f.volume.kit.Open(f.volume.device, childPath)
	switch {
	case err == nil:
		size := uint64(f.volume.kit.Size(pf))
		f.volume.kit.Close(pf)
		return size, efifs.StatusSuccess
	case isBadFileType(err):
		return 0, efifs.StatusSuccess
	default:
		return 0, statusFromParserErr(err)
	}
}
