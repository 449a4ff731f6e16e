// ABOUTME: Capability object exported to peer participants.
// ABOUTME: Fails open (owns nothing) until the owner wires in its predicate.

package ownership

import (
	"context"
	"sync"

	"github.com/2389/urimux/events"
)

// Capability is the surface a participant exports to its coordination peers.
// Implementations must never block or panic from OwnsURI; it is queried on
// every projection pass.
type Capability interface {
	// OwnsURI reports whether this participant currently claims the resource.
	OwnsURI(uri string) bool

	// OwnershipChanged fires when the answer to OwnsURI may have changed.
	// The signal carries no payload; listeners re-query.
	OwnershipChanged() *events.Signal
}

// Callbacks is the owner-supplied half of a coordinator: the ownership
// predicate over its locally owned resources, an optional change source, and
// an optional release hook used by race resolution.
type Callbacks struct {
	// OwnsURI receives the canonical form of the queried resource.
	OwnsURI func(uri string) bool

	// OwnershipChanged, if set, is forwarded to the exported capability's
	// public change signal.
	OwnershipChanged *events.Signal

	// ReleaseURI, if set, relinquishes this participant's claim on the given
	// canonical resource. Invoked fire-and-forget; errors are unobserved.
	ReleaseURI func(ctx context.Context, uri string) error
}

// API is the capability object a coordinator exports to peers. It is created
// synchronously at coordinator construction so it can be handed out before
// the owner's backing store is ready; until Initialize supplies a predicate
// it reports no ownership for any resource.
type API struct {
	mu      sync.RWMutex
	owns    func(uri string) bool
	changed *events.Signal
}

func newAPI() *API {
	return &API{changed: events.NewSignal()}
}

// OwnsURI reports whether the owning participant claims the resource. The
// argument is canonicalized before the predicate runs, so equivalent
// spellings always produce the same answer.
func (a *API) OwnsURI(uri string) bool {
	a.mu.RLock()
	owns := a.owns
	a.mu.RUnlock()

	if owns == nil {
		return false
	}
	return owns(CanonicalURI(uri))
}

// OwnershipChanged fires when OwnsURI answers may have changed.
func (a *API) OwnershipChanged() *events.Signal {
	return a.changed
}

// bind installs the predicate. First write wins; the coordinator enforces
// the once-only discipline, this just swaps the pointer atomically.
func (a *API) bind(owns func(uri string) bool) {
	a.mu.Lock()
	a.owns = owns
	a.mu.Unlock()
}

var _ Capability = (*API)(nil)
