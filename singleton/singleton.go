// Package singleton implements the per-filesystem double-load mutex (spec
// §4.7, C8): installing a GUID-keyed protocol on the process-wide protocol
// database as a global flag that the filesystem's driver is already loaded.
//
// This mirrors FSDriverInstall's mutex dance in the original C driver: look
// up the filesystem's GUID in the registry, LocateProtocol it to check
// whether another instance already claimed it, and if not, install a marker
// protocol under that GUID so the next load attempt finds it.
package singleton

import (
	"fmt"

	"github.com/efifs/corefs/registry"
	"github.com/efifs/corefs/transport"
	"github.com/google/uuid"
)

// marker is the placeholder interface value installed under the mutex GUID.
// Its only purpose is to exist, the way the original's MutexProtocol is a
// bare struct with no fields.
type marker struct{}

// Guard acquires and releases the per-filesystem singleton protocol on a
// transport.ProtocolDirectory.
type Guard struct {
	dir  transport.ProtocolDirectory
	held bool
	name string
	guid uuid.UUID
}

// NewGuard creates a Guard bound to the given protocol database.
func NewGuard(dir transport.ProtocolDirectory) *Guard {
	return &Guard{dir: dir}
}

// Acquire looks up name in the registry and tries to claim its singleton
// protocol. It fails if the name is unregistered (mirrors "No GUID is
// defined for <name>. Please edit <fs_guid.h> to add one") or if another
// instance already holds it (mirrors "This driver has already been
// installed").
func (g *Guard) Acquire(name string) error {
	if g.held {
		return fmt.Errorf("singleton: guard for %q already acquired", name)
	}

	guid, ok := registry.Lookup(name)
	if !ok {
		return fmt.Errorf("singleton: no GUID registered for filesystem %q", name)
	}

	if _, err := g.dir.Locate(guid); err == nil {
		return fmt.Errorf("singleton: filesystem %q is already loaded", name)
	}

	if err := g.dir.Install(guid, marker{}); err != nil {
		return fmt.Errorf("singleton: could not install mutex for %q: %w", name, err)
	}

	g.held = true
	g.name = name
	g.guid = guid
	return nil
}

// Release uninstalls the singleton protocol, allowing a future Acquire of
// the same filesystem to succeed. It is a no-op if nothing is held.
func (g *Guard) Release() {
	if !g.held {
		return
	}
	g.dir.Uninstall(g.guid)
	g.held = false
}
