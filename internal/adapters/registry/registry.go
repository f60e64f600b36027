// Package registry implements the command handler registry: a
// (packetId, version) keyed dispatch table, sorted for deterministic
// iteration, with idempotent replace-on-register. A single mutex
// guards a plain sorted slice rather than a map, since a map cannot
// give sorted iteration for free.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ghaddam/armnn/internal/domain"
	"github.com/ghaddam/armnn/internal/ports"
)

// ErrHandlerNotFound is returned by Get for an unregistered key.
var ErrHandlerNotFound = fmt.Errorf("armnn: handler not found")

// Key identifies a registered handler by packet id and protocol
// version, ordered lexicographically by (PacketID, Version).
type Key struct {
	PacketID uint32
	Version  uint32
}

// Less reports whether k sorts before other.
func (k Key) Less(other Key) bool {
	if k.PacketID != other.PacketID {
		return k.PacketID < other.PacketID
	}
	return k.Version < other.Version
}

// Compare returns -1, 0 or 1 as k is less than, equal to, or greater
// than other, matching the total order Less defines.
func (k Key) Compare(other Key) int {
	switch {
	case k.Less(other):
		return -1
	case other.Less(k):
		return 1
	default:
		return 0
	}
}

type entry struct {
	key     Key
	handler ports.CommandHandler
}

// Registry is the sorted (packetId, version) -> handler dispatch table.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register installs handler under (packetID, version), replacing
// whatever was previously registered at that key.
func (r *Registry) Register(handler ports.CommandHandler, packetID uint32, version domain.Version) {
	key := Key{PacketID: packetID, Version: version.Encoded()}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := sort.Search(len(r.entries), func(i int) bool {
		return !r.entries[i].key.Less(key)
	})
	if idx < len(r.entries) && r.entries[idx].key == key {
		r.entries[idx].handler = handler
		return
	}
	r.entries = append(r.entries, entry{})
	copy(r.entries[idx+1:], r.entries[idx:])
	r.entries[idx] = entry{key: key, handler: handler}
}

// Get looks up the handler for (packetID, version).
func (r *Registry) Get(packetID uint32, version domain.Version) (ports.CommandHandler, error) {
	key := Key{PacketID: packetID, Version: version.Encoded()}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := sort.Search(len(r.entries), func(i int) bool {
		return !r.entries[i].key.Less(key)
	})
	if idx < len(r.entries) && r.entries[idx].key == key {
		return r.entries[idx].handler, nil
	}
	return nil, fmt.Errorf("%w: packetId=%d version=%d", ErrHandlerNotFound, packetID, version.Encoded())
}

// Keys returns the currently registered keys in sorted order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]Key, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.key
	}
	return keys
}
