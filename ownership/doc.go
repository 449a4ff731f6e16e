// Package ownership implements cooperative URI ownership coordination
// between independently activated host participants.
//
// # Overview
//
// Several participants may each be able to handle the same resource URI
// (for example two SQL extensions that both attach to a newly opened
// document). Each participant runs a Coordinator that:
//
//   - exports a capability object (API) peers can query for ownership
//   - discovers peer participants and registers their capability objects
//   - projects "is the focused resource owned by someone else" into the
//     host's context store, where UI visibility rules consume it
//   - detects the double-ownership race and yields its own claim
//
// # Capability Contract
//
// The only surface exchanged between participants:
//
//	OwnsURI(uri) bool          // pure query, never blocks, never errors
//	OwnershipChanged() *Signal // zero-payload, listeners re-query
//
// OwnsURI fails open: before the owner wires in its predicate via
// Initialize, it always reports false, so a half-started participant can
// never be mistaken for an owner.
//
// # Race Resolution
//
// Two participants can both claim a resource through unrelated reactive
// trigger paths. Left alone, each observes "the other owns it too" and both
// hide their UI. The repair rule is unilateral and local: any participant
// that finds the focused resource owned by both itself and a peer releases
// its own claim. Releasing drops that participant's OwnsURI to false, which
// is the terminating condition — the rule can never cascade to a third
// party. The protocol guarantees convergence to at most one owner, not
// which owner survives.
//
// # Failure Policy
//
// Every external effect is best-effort: peer activation failures are logged
// and the peer stays unregistered, malformed peer exports are ignored, and
// context-store writes and release invocations are fire-and-forget. A missed
// coordination costs a transient UI glitch, never data loss, so none of
// these paths propagate errors to the owning participant.
package ownership
