// ABOUTME: Optional structured trace hooks for coordination activity.
// ABOUTME: The journal implements this; the default tracer does nothing.

package ownership

import "time"

// Projection is one recomputation pass of the ownership context, as seen by
// a Tracer.
type Projection struct {
	ContextKey   string
	FocusedURI   string // canonical form; empty when nothing has focus
	OwnedByOther bool
	OwnedBySelf  bool
	OwningPeer   string // peer ID when OwnedByOther, else empty
	At           time.Time
}

// Tracer receives structured coordination records. Implementations must not
// block; they are called inline from recomputation passes.
type Tracer interface {
	PeerRegistered(id, name string)
	ProjectionComputed(p Projection)
	ReleaseRequested(uri string)
}

// NopTracer discards all records. It is the default when no tracer is
// configured.
type NopTracer struct{}

func (NopTracer) PeerRegistered(string, string) {}
func (NopTracer) ProjectionComputed(Projection) {}
func (NopTracer) ReleaseRequested(string)       {}

var _ Tracer = NopTracer{}
