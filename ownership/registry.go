// ABOUTME: Registry of peer participants and their exported capabilities.
// ABOUTME: Injectable so tests can seed peer sets without activation races.

package ownership

import (
	"sort"
	"sync"
)

// PeerEntry pairs a peer participant's stable identifier with the capability
// object it exported.
type PeerEntry struct {
	ID         string
	Name       string
	Capability Capability
}

// PeerRegistry tracks discovered peers. Registrations accumulate over time
// as activations resolve; entries are never removed once added. Ordering
// among peers carries no meaning — each is queried independently.
type PeerRegistry interface {
	// Register adds a peer. If the ID is already registered the existing
	// entry is kept; first registration wins.
	Register(entry PeerEntry)

	// Lookup returns the entry for a peer ID.
	Lookup(id string) (PeerEntry, bool)

	// All returns every registered peer.
	All() []PeerEntry
}

// MemoryRegistry is the default PeerRegistry, a mutex-guarded map.
type MemoryRegistry struct {
	mu    sync.RWMutex
	peers map[string]PeerEntry
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{peers: make(map[string]PeerEntry)}
}

// Register adds a peer; re-registration of a known ID is a no-op.
func (r *MemoryRegistry) Register(entry PeerEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.peers[entry.ID]; exists {
		return
	}
	r.peers[entry.ID] = entry
}

// Lookup returns the entry for a peer ID.
func (r *MemoryRegistry) Lookup(id string) (PeerEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.peers[id]
	return entry, ok
}

// All returns every registered peer, sorted by ID for deterministic
// iteration.
func (r *MemoryRegistry) All() []PeerEntry {
	r.mu.RLock()
	entries := make([]PeerEntry, 0, len(r.peers))
	for _, entry := range r.peers {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

var _ PeerRegistry = (*MemoryRegistry)(nil)
