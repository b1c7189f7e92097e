package driver_test

import (
	"encoding/binary"
	"testing"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/driver"
	"github.com/stretchr/testify/assert"
)

func TestMarshalFileInfo_LeadingSizeCoversWholeRecord(t *testing.T) {
	record := driver.MarshalFileInfo(efifs.FileInfo{
		FileSize:     4,
		PhysicalSize: 4,
		Attribute:    efifs.AttrReadOnly,
		FileName:     "hello.bin",
	})

	size := binary.LittleEndian.Uint64(record[:8])
	assert.Equal(t, uint64(len(record)), size)
}

func TestMarshalFileSystemInfo_LeadingSizeCoversWholeRecord(t *testing.T) {
	record := driver.MarshalFileSystemInfo(efifs.FileSystemInfo{
		ReadOnly:    true,
		VolumeSize:  1 << 20,
		BlockSize:   512,
		VolumeLabel: "FIXTURE",
	})

	size := binary.LittleEndian.Uint64(record[:8])
	assert.Equal(t, uint64(len(record)), size)
}

func TestMarshalFileInfo_NameIsNULTerminatedUTF16(t *testing.T) {
	record := driver.MarshalFileInfo(efifs.FileInfo{FileName: "ok"})
	name := record[len(record)-6:] // "ok" -> 2 code units + NUL = 3 * 2 bytes
	assert.Equal(t, []byte{'o', 0, 'k', 0, 0, 0}, name)
}
