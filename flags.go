package efifs

////////////////////////////////////////////////////////////////////////////////
// File open mode and attribute flags (spec §4.3, §6)

// OpenMode is the mode argument of File.Open. Only ModeRead is ever legal;
// any other bit set fails the call with StatusWriteProtected.
type OpenMode uint64

const (
	ModeRead   OpenMode = 1 << 0
	ModeWrite  OpenMode = 1 << 1
	ModeCreate OpenMode = 1 << 63
)

// Attribute mirrors the firmware's EFI_FILE_INFO attribute bitmask. This
// driver only ever sets AttrReadOnly and, for directories, AttrDirectory.
type Attribute uint64

const (
	AttrReadOnly  Attribute = 1 << 0
	AttrHidden    Attribute = 1 << 1
	AttrSystem    Attribute = 1 << 2
	AttrReserved  Attribute = 1 << 3
	AttrDirectory Attribute = 1 << 4
	AttrArchive   Attribute = 1 << 5
)

////////////////////////////////////////////////////////////////////////////////
// Logging levels (spec §4.1 Install, §7)

// LogLevel is the FS_LOGLEVEL_* scale the original driver reads from the
// FS_LOGGING environment/shell variable.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelExtra
)

////////////////////////////////////////////////////////////////////////////////
// On-wire records (spec §6)

// FileInfo is the fixed-size prefix of the firmware's EFI_FILE_INFO record,
// produced by GetInfo(generic) and by directory enumeration. The caller-
// facing "Size" field, and the filename itself, are computed by the driver
// package when the record is serialized; this struct is the in-memory form.
type FileInfo struct {
	FileSize       uint64
	PhysicalSize   uint64
	CreateTime     CivilTime
	LastAccessTime CivilTime
	ModTime        CivilTime
	Attribute      Attribute
	FileName       string
}

// FileSystemInfo is the in-memory form of EFI_FILE_SYSTEM_INFO.
type FileSystemInfo struct {
	ReadOnly    bool
	VolumeSize  uint64
	FreeSpace   uint64
	BlockSize   uint32
	VolumeLabel string
}

// CivilTime is the broken-down calendar form produced by the civil-time
// conversion in package civiltime (spec §4.9). It's declared here, not in
// civiltime, so FileInfo can reference it without the root package
// depending on the conversion routines themselves.
type CivilTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}
