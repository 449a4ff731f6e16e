// Package events provides the zero-payload change signal used across the
// ownership coordination protocol. Listeners are told that something changed,
// never what changed, and are expected to re-query.
package events
