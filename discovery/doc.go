// Package discovery finds the installed participants that advertise
// ownership coordination support.
//
// A Provider produces Descriptors from some metadata source: RuntimeProvider
// reads participant manifests through the host runtime, ManifestProvider
// scans a directory of TOML manifest files. Relevant applies the protocol's
// selection rule — a participant is a coordination peer if it names this
// participant (or the "*" wildcard) in its manifest and is not this
// participant itself.
//
// Providers only describe; they never activate. Activation and capability
// registration stay with the coordinator, so the coordination logic remains
// host-agnostic and testable with a fake provider.
package discovery
