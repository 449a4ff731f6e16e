// ABOUTME: Runtime interface the ownership coordinator consumes from its host
// ABOUTME: Participant metadata, activation, focus tracking, and context store access

package host

import (
	"context"

	"github.com/2389/urimux/events"
)

// Manifest is the coordination-relevant slice of a participant's metadata.
// A participant advertises which other participants it coordinates with
// under the well-known "urimux" namespace; "*" means any participant.
type Manifest struct {
	CoordinatesWith []string
}

// Info describes an installed participant as the host sees it.
type Info struct {
	ID       string
	Name     string
	Active   bool
	Manifest Manifest
}

// Runtime is the host surface consumed by the coordinator. Implementations
// must be safe for concurrent use.
type Runtime interface {
	// Installed returns every installed participant, active or not.
	Installed() []Info

	// Participant looks up a single participant by ID.
	Participant(id string) (Info, bool)

	// Exported returns the value a participant exported on activation, or
	// nil if the participant is not active or exported nothing.
	Exported(id string) any

	// Activate triggers asynchronous activation of a participant and returns
	// its exported value once activation completes.
	Activate(ctx context.Context, id string) (any, error)

	// ActiveResource returns the currently focused resource identifier, if any.
	ActiveResource() (string, bool)

	// SetContext writes a named boolean flag into the host's process-wide
	// context store.
	SetContext(ctx context.Context, key string, value bool) error

	// ShowWarning surfaces a warning message to the user.
	ShowWarning(message string)

	// FocusChanged fires when the focused resource changes.
	FocusChanged() *events.Signal

	// ParticipantsChanged fires when the set of installed participants
	// changes (install, uninstall, enable, disable).
	ParticipantsChanged() *events.Signal
}
