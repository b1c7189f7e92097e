package parserkit_test

import (
	"testing"

	"github.com/efifs/corefs/parserkit"
	"github.com/efifs/corefs/transport/fakefirmware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectorReader_ComputesFixedSectorOffset(t *testing.T) {
	disk := fakefirmware.NewDisk(7, 4096, 8)
	rws := disk.ReadWriteSeeker()
	payload := make([]byte, parserkit.SectorSize)
	payload[10] = 0xAB
	_, err := rws.Seek(parserkit.SectorSize*2, 0)
	require.NoError(t, err)
	_, err = rws.Write(payload)
	require.NoError(t, err)

	reader := parserkit.SectorReader{Disk: disk, MediaID: 7}
	buf := make([]byte, 16)
	require.NoError(t, reader.ReadSector(2, 0, buf))
	assert.Equal(t, byte(0xAB), buf[10])
}

func TestSectorReader_IgnoresMediaBlockSize(t *testing.T) {
	// Sector math is always 512 bytes regardless of the media's own block
	// size (spec §4.4): a 4096-byte-block disk still addresses sector 1 at
	// byte 512, not byte 4096.
	disk := fakefirmware.NewDisk(1, 4096, 4)
	rws := disk.ReadWriteSeeker()
	_, err := rws.Seek(parserkit.SectorSize, 0)
	require.NoError(t, err)
	_, err = rws.Write([]byte{0xCD})
	require.NoError(t, err)

	reader := parserkit.SectorReader{Disk: disk, MediaID: 1}
	buf := make([]byte, 1)
	require.NoError(t, reader.ReadSector(1, 0, buf))
	assert.Equal(t, byte(0xCD), buf[0])
}
