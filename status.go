package efifs

import "fmt"

// Status is a firmware status code, the result type every protocol method
// published by this driver shell returns. The names mirror the UEFI status
// codes the original C driver returns (EFI_SUCCESS, EFI_NOT_FOUND, ...)
// without depending on any concrete UEFI binding package.
type Status int

const (
	StatusSuccess Status = iota
	StatusLoadError
	StatusBufferTooSmall
	StatusOutOfResources
	StatusNoMapping
	StatusNotFound
	StatusDeviceError
	StatusVolumeCorrupted
	StatusInvalidParameter
	StatusUnsupported
	StatusTimeout
	StatusAccessDenied
	StatusNotReady
	StatusCRCError
	StatusEndOfFile
	StatusSecurityViolation
	StatusWriteProtected
	StatusWarnDeleteFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusLoadError:
		return "load error"
	case StatusBufferTooSmall:
		return "buffer too small"
	case StatusOutOfResources:
		return "out of resources"
	case StatusNoMapping:
		return "no mapping"
	case StatusNotFound:
		return "not found"
	case StatusDeviceError:
		return "device error"
	case StatusVolumeCorrupted:
		return "volume corrupted"
	case StatusInvalidParameter:
		return "invalid parameter"
	case StatusUnsupported:
		return "unsupported"
	case StatusTimeout:
		return "timeout"
	case StatusAccessDenied:
		return "access denied"
	case StatusNotReady:
		return "not ready"
	case StatusCRCError:
		return "CRC error"
	case StatusEndOfFile:
		return "end of file"
	case StatusSecurityViolation:
		return "security violation"
	case StatusWriteProtected:
		return "write protected"
	case StatusWarnDeleteFailure:
		return "warn delete failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) IsError() bool {
	return s != StatusSuccess && s != StatusWarnDeleteFailure
}

// ToStatus implements the exhaustive C1 mapping from a parser-reported
// error to a firmware status code (spec §4.8). Any parser error kind not
// explicitly named in the table below is mapped to StatusNotFound, matching
// the "any other" row of the table, so the mapping is total (invariant #7).
func ToStatus(err ParserError) Status {
	switch err {
	case ErrNone:
		return StatusSuccess
	case ErrBadModule:
		return StatusLoadError
	case ErrOutOfRange:
		return StatusBufferTooSmall
	case ErrOutOfMemory, ErrSymlinkLoop:
		return StatusOutOfResources
	case ErrBadFileType:
		return StatusNoMapping
	case ErrFileNotFound, ErrUnknownDevice, ErrUnknownFileSystem:
		return StatusNotFound
	case ErrReadError, ErrWriteError, ErrDeviceError, ErrIOError:
		return StatusDeviceError
	case ErrBadPartitionTable, ErrBadFileSystem:
		return StatusVolumeCorrupted
	case ErrBadFilename, ErrBadArgument, ErrBadNumber, ErrUnknownCommand, ErrInvalidCommand:
		return StatusInvalidParameter
	case ErrNotImplemented:
		return StatusUnsupported
	case ErrTimeout:
		return StatusTimeout
	case ErrAccessDenied:
		return StatusAccessDenied
	case ErrWait:
		return StatusNotReady
	case ErrExtractorFailed, ErrBadCompressedData:
		return StatusCRCError
	case ErrEOF:
		return StatusEndOfFile
	case ErrBadSignature:
		return StatusSecurityViolation
	default:
		return StatusNotFound
	}
}

// DriverError is the error type returned internally by the driver shell
// (package driver) before it is collapsed to a Status at the protocol
// boundary. It carries a human-readable message plus, optionally, the
// parser error it wraps, following the WithMessage/Wrap shape the teacher
// uses for its own errno-style errors.
type DriverError struct {
	status  Status
	message string
	cause   error
}

func NewDriverError(status Status, message string) *DriverError {
	return &DriverError{status: status, message: message}
}

func WrapParserError(err ParserError, context string) *DriverError {
	return &DriverError{
		status:  ToStatus(err),
		message: fmt.Sprintf("%s: %s", context, err.Error()),
		cause:   err,
	}
}

func (e *DriverError) Status() Status {
	return e.status
}

func (e *DriverError) Error() string {
	return e.message
}

func (e *DriverError) Unwrap() error {
	return e.cause
}

func (e *DriverError) WithMessage(message string) *DriverError {
	return &DriverError{
		status:  e.status,
		message: fmt.Sprintf("%s: %s", message, e.message),
		cause:   e,
	}
}
