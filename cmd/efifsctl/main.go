// efifsctl is a demo CLI driving the driver package end-to-end against the
// in-memory fixture parser kit and fakefirmware transports, standing in for
// the real firmware environment this driver shell is meant to run under.
// It exercises Supported/Start/OpenVolume/Open/Read/GetInfo/Stop from a
// runnable entry point, the way the teacher's cmd/main.go drives its own
// format/unzip operations through a urfave/cli.App.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/driver"
	"github.com/efifs/corefs/fixtures"
	"github.com/efifs/corefs/parserkit"
	"github.com/efifs/corefs/transport/fakefirmware"
	"github.com/urfave/cli/v2"
)

const (
	fsLabel = "FIXTURE-LABEL"
	fsUUID  = "11111111-2222-3333-4444-555555555555"
)

func main() {
	app := cli.App{
		Usage: "Inspect the in-memory fixture filesystem through the efifs driver shell",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List a directory's contents",
				ArgsUsage: "[PATH]",
				Action:    runLs,
			},
			{
				Name:      "cat",
				Usage:     "Print a regular file's contents",
				ArgsUsage: "PATH",
				Action:    runCat,
			},
			{
				Name:      "info",
				Usage:     "Report GetInfo records for a path and the volume",
				ArgsUsage: "[PATH]",
				Action:    runInfo,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

// newSession binds a fresh controller backed by the fixture kit and opens
// its volume, the same Supported/Start/OpenVolume sequence a firmware
// connect controller event would drive.
func newSession() (*driver.Binding, *driver.File, error) {
	b := driver.NewBinding("FIXTURE", 1, 0, "corefs", func() parserkit.Kit {
		return fixtures.New(fsLabel, fsUUID)
	})

	disk := fakefirmware.NewDisk(1, 512, 16)
	ctrl := &driver.Controller{
		Disk:       disk,
		Block:      disk,
		Protocols:  fakefirmware.NewProtocolDirectory(),
		DevicePath: "fake-disk-0",
	}

	if status := b.Supported(ctrl); status != efifs.StatusSuccess {
		return nil, nil, fmt.Errorf("not supported: %s", status)
	}
	if status := b.Start(ctrl); status != efifs.StatusSuccess {
		return nil, nil, fmt.Errorf("start failed: %s", status)
	}

	volume, ok := driver.LocateVolume(ctrl)
	if !ok {
		return nil, nil, fmt.Errorf("volume not found after start")
	}
	return b, volume.OpenVolume(), nil
}

// resolve walks path's slash-separated components from root via repeated
// Open calls, the way a real consumer navigating a directory tree would.
func resolve(root *driver.File, path string) (*driver.File, error) {
	f := root
	path = strings.Trim(path, "/")
	if path == "" {
		return f, nil
	}
	for _, segment := range strings.Split(path, "/") {
		next, status := f.Open(segment, efifs.ModeRead)
		if status != efifs.StatusSuccess {
			return nil, fmt.Errorf("open %q: %s", segment, status)
		}
		if f != root {
			f.Close()
		}
		f = next
	}
	return f, nil
}

func runLs(c *cli.Context) error {
	b, root, err := newSession()
	if err != nil {
		return err
	}
	defer b.Uninstall()

	target, err := resolve(root, c.Args().First())
	if err != nil {
		return err
	}

	buf := make([]byte, 4096)
	for {
		n, status := target.Read(buf)
		if status != efifs.StatusSuccess {
			return fmt.Errorf("read: %s", status)
		}
		if n == 0 {
			break
		}
		info, err := driver.UnmarshalFileInfo(buf[:n])
		if err != nil {
			return err
		}
		kind := "-"
		if info.Attribute&efifs.AttrDirectory != 0 {
			kind = "d"
		}
		fmt.Printf("%s %10d  %s\n", kind, info.FileSize, info.FileName)
	}
	return nil
}

func runCat(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("cat: PATH is required")
	}
	b, root, err := newSession()
	if err != nil {
		return err
	}
	defer b.Uninstall()

	target, err := resolve(root, c.Args().First())
	if err != nil {
		return err
	}

	buf := make([]byte, 4096)
	for {
		n, status := target.Read(buf)
		if status != efifs.StatusSuccess {
			return fmt.Errorf("read: %s", status)
		}
		if n == 0 {
			break
		}
		os.Stdout.Write(buf[:n])
	}
	return nil
}

func runInfo(c *cli.Context) error {
	b, root, err := newSession()
	if err != nil {
		return err
	}
	defer b.Uninstall()

	target, err := resolve(root, c.Args().First())
	if err != nil {
		return err
	}

	generic, status := target.GetInfo(driver.InfoGeneric)
	if status != efifs.StatusSuccess {
		return fmt.Errorf("get generic info: %s", status)
	}
	fi := generic.(efifs.FileInfo)
	fmt.Printf("name:          %s\n", fi.FileName)
	fmt.Printf("size:          %d\n", fi.FileSize)
	fmt.Printf("attribute:     0x%x\n", uint64(fi.Attribute))

	fsInfo, status := target.GetInfo(driver.InfoFileSystem)
	if status != efifs.StatusSuccess {
		return fmt.Errorf("get filesystem info: %s", status)
	}
	fsi := fsInfo.(efifs.FileSystemInfo)
	fmt.Printf("volume label:  %s\n", fsi.VolumeLabel)
	fmt.Printf("volume size:   %d\n", fsi.VolumeSize)
	fmt.Printf("block size:    %d\n", fsi.BlockSize)
	fmt.Printf("read-only:     %v\n", fsi.ReadOnly)
	return nil
}
