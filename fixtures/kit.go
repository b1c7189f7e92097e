// Package fixtures provides an in-memory, read-only fake filesystem parser
// implementing parserkit.Kit, for use in driver package tests and the demo
// CLI in place of a real on-disk format parser.
package fixtures

import (
	"strings"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/parserkit"
	"github.com/efifs/corefs/transport"
)

type node struct {
	name       string
	isDir      bool
	modTime    int32
	children   []*node
	data       []byte
	compressed bool
	corrupt    bool
	unreadable bool
}

func (n *node) find(segments []string) *node {
	if len(segments) == 0 {
		return n
	}
	if !n.isDir {
		return nil
	}
	for _, child := range n.children {
		if child.name == segments[0] {
			return child.find(segments[1:])
		}
	}
	return nil
}

func lookup(root *node, path string) *node {
	path = strings.Trim(path, "/")
	if path == "" {
		return root
	}
	return root.find(strings.Split(path, "/"))
}

// Kit is an in-memory fake implementing parserkit.Kit. Its tree is fixed at
// construction:
//
//	/hello.txt            regular file, "hello, world\n"
//	/dir1/sub/hello.bin    regular file, stored RLE8-compressed
//	/dir1/broken-link      unreadable entry (Open fails with ErrBadFileType),
//	                       standing in for a symlink the original comments
//	                       "EFI_NO_MAPPING is returned for"
//	/corrupt.bin           regular file whose stored bytes are a truncated
//	                       RLE8 stream, so Open fails with ErrBadCompressedData
type Kit struct {
	label      string
	volumeUUID string
	probeCalls int
}

// New creates a Kit with the fixed fixture tree described above.
func New(label, volumeUUID string) *Kit {
	return &Kit{label: label, volumeUUID: volumeUUID}
}

// device is the Device value handed back by DeviceInit.
type device struct {
	root         *node
	sectorReader parserkit.SectorReader
}

func buildTree() *node {
	helloBin := compressRLE8([]byte("aaaaaaaaaa bbbbbbbbbbbb binary payload"))

	return &node{
		name:  "",
		isDir: true,
		children: []*node{
			{name: "hello.txt", modTime: 1_700_000_000, data: []byte("hello, world\n")},
			{
				name:  "dir1",
				isDir: true,
				children: []*node{
					{
						name:  "sub",
						isDir: true,
						children: []*node{
							{name: "hello.bin", modTime: 1_700_000_100, data: helloBin, compressed: true},
						},
					},
					{name: "broken-link", unreadable: true},
				},
			},
			{name: "corrupt.bin", data: []byte{0xAA, 0xAA}, compressed: true, corrupt: true},
		},
	}
}

func (k *Kit) DeviceInit(disk transport.DiskIO, mediaID uint32) (parserkit.Device, error) {
	k.probeCalls = 0
	return &device{
		root:         buildTree(),
		sectorReader: parserkit.SectorReader{Disk: disk, MediaID: mediaID},
	}, nil
}

func (k *Kit) DeviceExit(dev parserkit.Device) {}

func (k *Kit) Probe(dev parserkit.Device) bool {
	k.probeCalls++
	d, ok := dev.(*device)
	return ok && d.root != nil
}

// ProbeCalls reports how many times Probe has been invoked since the last
// DeviceInit, for asserting that Supported never probes the parser kit (S8).
func (k *Kit) ProbeCalls() int { return k.probeCalls }

func (k *Kit) Open(dev parserkit.Device, path string) (parserkit.ParserFile, error) {
	d := dev.(*device)
	n := lookup(d.root, path)
	if n == nil {
		return nil, efifs.ErrFileNotFound
	}
	if n.isDir || n.unreadable {
		return nil, efifs.ErrBadFileType
	}

	data := n.data
	if n.compressed {
		decompressed, err := decompressRLE8(n.data)
		if err != nil || n.corrupt {
			return nil, efifs.ErrBadCompressedData
		}
		data = decompressed
	}
	return &openFile{data: data}, nil
}

type openFile struct {
	data []byte
}

func (k *Kit) Close(f parserkit.ParserFile) {}

func (k *Kit) Read(f parserkit.ParserFile, buf []byte, offset int64) (int, error) {
	of := f.(*openFile)
	if offset < 0 || offset >= int64(len(of.data)) {
		return 0, nil
	}
	n := copy(buf, of.data[offset:])
	return n, nil
}

func (k *Kit) Size(f parserkit.ParserFile) int64 {
	return int64(len(f.(*openFile).data))
}

func (k *Kit) Dir(dev parserkit.Device, path string, hook parserkit.DirHookFunc) error {
	d := dev.(*device)
	n := lookup(d.root, path)
	if n == nil {
		return efifs.ErrFileNotFound
	}
	if !n.isDir {
		return efifs.ErrBadFileType
	}

	for _, child := range n.children {
		info := parserkit.DirEntryInfo{IsDirectory: child.isDir, ModTime: child.modTime}
		if hook(child.name, info) {
			break
		}
	}
	return nil
}

func (k *Kit) Label(dev parserkit.Device) (string, error) {
	return k.label, nil
}

func (k *Kit) UUID(dev parserkit.Device) (string, bool) {
	if k.volumeUUID == "" {
		return "", false
	}
	return k.volumeUUID, true
}
