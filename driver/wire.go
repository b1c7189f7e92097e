package driver

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/internal/codec"
)

// ErrTruncatedRecord is returned by UnmarshalFileInfo when record is too
// short to hold even the fixed-size prefix.
var ErrTruncatedRecord = errors.New("driver: truncated on-wire record")

const fileInfoFixedLen = 8 + 8 + 8 + 16*3 + 8 // size + sizes + 3 EFI_TIMEs + attribute

// marshalEFITime writes t as a 16-byte EFI_TIME record: Year(u16) Month(u8)
// Day(u8) Hour(u8) Minute(u8) Second(u8) Pad1(u8) Nanosecond(u32)
// TimeZone(i16) Daylight(u8) Pad2(u8). TimeZone/Daylight are always zero;
// the parser kit only ever reports UTC mtimes.
func marshalEFITime(w *bytes.Buffer, t efifs.CivilTime) {
	binary.Write(w, binary.LittleEndian, uint16(t.Year))
	w.WriteByte(byte(t.Month))
	w.WriteByte(byte(t.Day))
	w.WriteByte(byte(t.Hour))
	w.WriteByte(byte(t.Minute))
	w.WriteByte(byte(t.Second))
	w.WriteByte(0) // Pad1
	binary.Write(w, binary.LittleEndian, uint32(0)) // Nanosecond
	binary.Write(w, binary.LittleEndian, int16(0))  // TimeZone
	w.WriteByte(0)                                  // Daylight
	w.WriteByte(0)                                  // Pad2
}

// MarshalFileInfo serializes info as the firmware's EFI_FILE_INFO record
// (spec §6): a fixed prefix followed by the UTF-16LE, NUL-terminated file
// name. The leading size field counts the whole record, filename included.
func MarshalFileInfo(info efifs.FileInfo) []byte {
	var body bytes.Buffer
	binary.Write(&body, binary.LittleEndian, info.FileSize)
	binary.Write(&body, binary.LittleEndian, info.PhysicalSize)
	marshalEFITime(&body, info.CreateTime)
	marshalEFITime(&body, info.LastAccessTime)
	marshalEFITime(&body, info.ModTime)
	binary.Write(&body, binary.LittleEndian, uint64(info.Attribute))

	name := codec.UTF8ToUTF16Alloc(info.FileName)
	for _, unit := range name {
		binary.Write(&body, binary.LittleEndian, unit)
	}

	var record bytes.Buffer
	binary.Write(&record, binary.LittleEndian, uint64(8+body.Len()))
	record.Write(body.Bytes())
	return record.Bytes()
}

// unmarshalEFITime is the inverse of marshalEFITime. TimeZone/Daylight/
// Nanosecond are discarded; this driver never produces non-zero values for
// them.
func unmarshalEFITime(b []byte) efifs.CivilTime {
	return efifs.CivilTime{
		Year:   int(binary.LittleEndian.Uint16(b[0:2])),
		Month:  int(b[2]),
		Day:    int(b[3]),
		Hour:   int(b[4]),
		Minute: int(b[5]),
		Second: int(b[6]),
	}
}

func bytesToUTF16LE(b []byte) []uint16 {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i : 2*i+2])
	}
	return units
}

// UnmarshalFileInfo is the inverse of MarshalFileInfo, used by consumers of
// a directory Read (or a generic-info GetInfo) to interpret the bytes the
// driver wrote back.
func UnmarshalFileInfo(record []byte) (efifs.FileInfo, error) {
	if len(record) < fileInfoFixedLen {
		return efifs.FileInfo{}, ErrTruncatedRecord
	}
	return efifs.FileInfo{
		FileSize:       binary.LittleEndian.Uint64(record[8:16]),
		PhysicalSize:   binary.LittleEndian.Uint64(record[16:24]),
		CreateTime:     unmarshalEFITime(record[24:40]),
		LastAccessTime: unmarshalEFITime(record[40:56]),
		ModTime:        unmarshalEFITime(record[56:72]),
		Attribute:      efifs.Attribute(binary.LittleEndian.Uint64(record[72:80])),
		FileName:       codec.UTF16ToUTF8Alloc(bytesToUTF16LE(record[80:])),
	}, nil
}

// MarshalFileSystemInfo serializes info as the firmware's
// EFI_FILE_SYSTEM_INFO record (spec §6).
func MarshalFileSystemInfo(info efifs.FileSystemInfo) []byte {
	var body bytes.Buffer
	if info.ReadOnly {
		body.WriteByte(1)
	} else {
		body.WriteByte(0)
	}
	binary.Write(&body, binary.LittleEndian, info.VolumeSize)
	binary.Write(&body, binary.LittleEndian, info.FreeSpace)
	binary.Write(&body, binary.LittleEndian, info.BlockSize)

	label := codec.UTF8ToUTF16Alloc(info.VolumeLabel)
	for _, unit := range label {
		binary.Write(&body, binary.LittleEndian, unit)
	}

	var record bytes.Buffer
	binary.Write(&record, binary.LittleEndian, uint64(8+body.Len()))
	record.Write(body.Bytes())
	return record.Bytes()
}
