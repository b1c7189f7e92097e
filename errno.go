// Package efifs provides the driver shell for read-only UEFI filesystem
// drivers: the machinery that binds a firmware controller to a filesystem
// parser kit and publishes the firmware's Simple File System protocol on
// top of it.
//
// This file defines the parser-side error taxonomy (C1, half of the
// bidirectional mapping described in spec §4.8). The other half, the
// firmware status codes these map to, is in status.go.
package efifs

// ParserError is the error taxonomy a parser kit (see package parserkit)
// reports back to the driver shell. Kinds are named after the condition a
// read-only filesystem parser can realistically hit; they are not a
// one-to-one mirror of any single parser's internal error enum, but a
// superset broad enough to translate any of them.
type ParserError string

const (
	ErrNone                 = ParserError("")
	ErrBadModule            = ParserError("bad or unrecognized filesystem module")
	ErrOutOfRange           = ParserError("value out of range")
	ErrOutOfMemory          = ParserError("out of memory")
	ErrSymlinkLoop          = ParserError("symlink cycle detected")
	ErrBadFileType          = ParserError("unsupported file type")
	ErrFileNotFound         = ParserError("file not found")
	ErrUnknownDevice        = ParserError("unknown device")
	ErrUnknownFileSystem    = ParserError("unknown file system")
	ErrReadError            = ParserError("read error")
	ErrWriteError           = ParserError("write error")
	ErrDeviceError          = ParserError("device error")
	ErrIOError              = ParserError("input/output error")
	ErrBadPartitionTable    = ParserError("bad partition table")
	ErrBadFileSystem        = ParserError("corrupted file system")
	ErrBadFilename          = ParserError("bad filename")
	ErrBadArgument          = ParserError("bad argument")
	ErrBadNumber            = ParserError("bad numeric value")
	ErrUnknownCommand       = ParserError("unknown command")
	ErrInvalidCommand       = ParserError("invalid command")
	ErrNotImplemented       = ParserError("not implemented")
	ErrTimeout              = ParserError("timeout")
	ErrAccessDenied         = ParserError("access denied")
	ErrWait                 = ParserError("operation would block")
	ErrExtractorFailed      = ParserError("decompression extractor failed")
	ErrBadCompressedData    = ParserError("bad compressed data")
	ErrEOF                  = ParserError("end of file")
	ErrBadSignature         = ParserError("bad signature")
)

func (e ParserError) Error() string {
	if e == ErrNone {
		return "success"
	}
	return string(e)
}
