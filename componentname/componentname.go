// Package componentname formats the driver name the firmware's component
// name protocols report (spec §6), and carries the two supported-language
// tags.
//
// The original C driver's FSGetDriverName returns the same pointer
// (DriverNameString) regardless of which of the two component name
// protocols is asking or what language was requested; per its own comment,
// the only real difference between EFI_COMPONENT_NAME_PROTOCOL and
// EFI_COMPONENT_NAME2_PROTOCOL is the language tag each advertises in
// SupportedLanguages ("eng", ISO 639-2, vs "en", RFC 4646).
package componentname

import "fmt"

// LanguageISO639_2 is the language tag EFI_COMPONENT_NAME_PROTOCOL
// advertises.
const LanguageISO639_2 = "eng"

// LanguageRFC4646 is the language tag EFI_COMPONENT_NAME2_PROTOCOL
// advertises.
const LanguageRFC4646 = "en"

// DriverName formats the firmware-visible driver name for a filesystem
// family, e.g. DriverName("NTFS", 1, 10, "corefs") ->
// "EfiFs NTFS driver v1.10 (corefs)".
func DriverName(fsName string, versionMajor, versionMinor int, pkg string) string {
	return fmt.Sprintf("EfiFs %s driver v%d.%d (%s)", fsName, versionMajor, versionMinor, pkg)
}

// GetDriverName returns the driver name for the given requested language, or
// ("", false) if language is neither of the two supported tags. It ignores
// the requested language's correctness the same way the original does:
// both protocols return the identical name string regardless of which
// language was asked for, but it still validates that the caller is asking
// in a language this driver claims to support.
func GetDriverName(fsName string, versionMajor, versionMinor int, pkg, language string) (string, bool) {
	if language != LanguageISO639_2 && language != LanguageRFC4646 {
		return "", false
	}
	return DriverName(fsName, versionMajor, versionMinor, pkg), true
}

// GetControllerName always fails: this driver never names controllers, only
// itself (mirrors FSGetControllerName returning EFI_UNSUPPORTED
// unconditionally).
func GetControllerName() (string, bool) {
	return "", false
}
