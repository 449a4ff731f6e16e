// Package host defines the runtime surface the ownership coordinator
// consumes: participant lookup and activation, focus tracking, and the
// process-wide context store.
//
// # Overview
//
// The coordinator never talks to a concrete host directly. Everything it
// needs — who is installed, who is active, what their manifests declare,
// which resource currently has focus, and where to project derived context
// flags — comes through the Runtime interface. Real hosts implement Runtime
// as a thin adapter; tests and the simulator use MemRuntime.
//
// # Context Store
//
// SetContext writes a named boolean into a process-wide key-value store read
// by UI visibility rules elsewhere in the host. Each participant writes only
// under its own configured key, so writers never conflict. Writes are
// best-effort: the coordinator fires them without observing failures.
//
// # Events
//
// FocusChanged and ParticipantsChanged are zero-payload signals. Listeners
// re-query ActiveResource and Installed respectively; the signals carry no
// snapshot and can never go stale.
package host
