// Package codec implements the UTF-8 <-> UTF-16LE text conversions the
// driver shell needs at the firmware boundary (spec §4.6, component C2).
//
// The firmware's EFI_FILE_INFO/EFI_FILE_SYSTEM_INFO records carry filenames
// and labels as UTF-16LE; the parser kit and the driver's own path handling
// work in UTF-8. Each direction comes in two forms: an allocating one that
// always succeeds (aside from malformed input) and a fixed-buffer one that
// reports the required capacity when the destination is too small, mirroring
// the original driver's *NoAlloc / *Alloc function pairs.
package codec

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrBufferTooSmall is returned by the fixed-buffer variants when the
// destination cannot hold the converted string (plus its terminating NUL).
// RequiredLen gives the capacity the caller must provide to retry, mirroring
// the firmware convention of reporting the needed buffer size back to the
// caller on EFI_BUFFER_TOO_SMALL.
type ErrBufferTooSmall struct {
	RequiredLen int
}

func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("buffer too small: need room for at least %d elements", e.RequiredLen)
}

// UTF8ToUTF16Alloc converts a UTF-8 string to a NUL-terminated UTF-16LE
// code unit slice, allocating as needed.
func UTF8ToUTF16Alloc(s string) []uint16 {
	runes := []rune(s)
	units := utf16.Encode(runes)
	out := make([]uint16, len(units)+1)
	copy(out, units)
	out[len(units)] = 0
	return out
}

// UTF8ToUTF16NoAlloc converts s into dst, a caller-supplied buffer of UTF-16
// code units. It writes a terminating NUL when there's room. If dst is too
// small to hold the converted string plus its NUL, it returns
// ErrBufferTooSmall reporting the number of code units required, and writes
// nothing.
func UTF8ToUTF16NoAlloc(s string, dst []uint16) (int, error) {
	units := utf16.Encode([]rune(s))
	needed := len(units) + 1
	if len(dst) < needed {
		return 0, ErrBufferTooSmall{RequiredLen: needed}
	}
	n := copy(dst, units)
	dst[n] = 0
	return n + 1, nil
}

// UTF16ToUTF8Alloc converts a NUL-terminated (or full-length, if no NUL is
// present) UTF-16LE code unit slice to a UTF-8 string, allocating as needed.
func UTF16ToUTF8Alloc(units []uint16) string {
	units = trimNUL(units)
	return string(utf16.Decode(units))
}

// UTF16ToUTF8NoAlloc converts units into dst, a caller-supplied byte buffer.
// It writes a terminating NUL when there's room. If dst is too small it
// returns ErrBufferTooSmall reporting the number of bytes required (including
// the NUL), and writes nothing.
func UTF16ToUTF8NoAlloc(units []uint16, dst []byte) (int, error) {
	units = trimNUL(units)
	decoded := utf16.Decode(units)

	needed := 0
	for _, r := range decoded {
		needed += utf8.RuneLen(r)
	}
	needed++ // terminating NUL

	if len(dst) < needed {
		return 0, ErrBufferTooSmall{RequiredLen: needed}
	}

	n := 0
	for _, r := range decoded {
		n += utf8.EncodeRune(dst[n:], r)
	}
	dst[n] = 0
	return n + 1, nil
}

func trimNUL(units []uint16) []uint16 {
	for i, u := range units {
		if u == 0 {
			return units[:i]
		}
	}
	return units
}
