// ABOUTME: Shared test fixtures for ownership coordination tests.
// ABOUTME: Fake peers with mutable owned sets and release recorders.

package ownership

import (
	"context"
	"sync"

	"github.com/2389/urimux/events"
)

// fakePeer is a Capability with a mutable owned-URI set. Keys are canonical
// forms, matching what the coordinator passes to peer predicates.
type fakePeer struct {
	mu      sync.Mutex
	owned   map[string]bool
	changed *events.Signal
}

func newFakePeer(uris ...string) *fakePeer {
	p := &fakePeer{
		owned:   make(map[string]bool),
		changed: events.NewSignal(),
	}
	for _, uri := range uris {
		p.owned[uri] = true
	}
	return p
}

func (p *fakePeer) OwnsURI(uri string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.owned[uri]
}

func (p *fakePeer) OwnershipChanged() *events.Signal { return p.changed }

func (p *fakePeer) setOwned(uri string, owned bool) {
	p.mu.Lock()
	p.owned[uri] = owned
	p.mu.Unlock()
	p.changed.Emit()
}

// releaseRecorder captures release invocations.
type releaseRecorder struct {
	mu   sync.Mutex
	uris []string
}

func (r *releaseRecorder) release(_ context.Context, uri string) error {
	r.mu.Lock()
	r.uris = append(r.uris, uri)
	r.mu.Unlock()
	return nil
}

func (r *releaseRecorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.uris))
	copy(out, r.uris)
	return out
}

// ownedSet is a self-ownership predicate backed by a mutable set, with a
// change signal, for wiring coordinator callbacks in tests.
type ownedSet struct {
	mu      sync.Mutex
	owned   map[string]bool
	changed *events.Signal
}

func newOwnedSet(uris ...string) *ownedSet {
	s := &ownedSet{
		owned:   make(map[string]bool),
		changed: events.NewSignal(),
	}
	for _, uri := range uris {
		s.owned[uri] = true
	}
	return s
}

func (s *ownedSet) owns(uri string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owned[uri]
}

func (s *ownedSet) release(_ context.Context, uri string) error {
	s.mu.Lock()
	s.owned[uri] = false
	s.mu.Unlock()
	s.changed.Emit()
	return nil
}
