// Package registry holds the stable table mapping a filesystem family's
// short name to the 128-bit GUID its driver instance publishes as a
// singleton protocol (spec §6, A4/A5). The original C driver keeps this as
// a static FSGuid[] array in fs_guid.h, searched linearly by GetFSGuid(); it
// ships with a single entry (NTFS) filled in, the rest left for other
// filesystem families to add as they're implemented.
//
// This rewrite keeps the "flat lookup table, searched by name" shape but
// loads it from an embedded CSV the way disko's disks package loads its
// disk-geometries table, instead of a source-compiled array.
package registry

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

type row struct {
	Name string `csv:"name"`
	GUID string `csv:"guid"`
}

//go:embed filesystems.csv
var rawCSV string

var byName map[string]uuid.UUID

// Lookup returns the GUID registered for a filesystem short name (e.g.
// "ntfs"), and false if no entry exists for it. Matching is case-insensitive,
// since the original's StriCmp ignores case when comparing CHAR16 names.
func Lookup(name string) (uuid.UUID, bool) {
	guid, ok := byName[strings.ToLower(name)]
	return guid, ok
}

// Names returns every registered filesystem short name, in no particular
// order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}

func init() {
	byName = make(map[string]uuid.UUID)

	reader := strings.NewReader(rawCSV)
	err := gocsv.UnmarshalToCallback(reader, func(r row) error {
		name := strings.ToLower(r.Name)
		if _, exists := byName[name]; exists {
			return fmt.Errorf("registry: duplicate entry for filesystem %q", r.Name)
		}

		guid, err := uuid.Parse(r.GUID)
		if err != nil {
			return fmt.Errorf("registry: bad GUID for filesystem %q: %w", r.Name, err)
		}

		byName[name] = guid
		return nil
	})
	if err != nil && err != io.EOF {
		panic(err)
	}
}
