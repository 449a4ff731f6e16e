// ABOUTME: Host-runtime-backed discovery provider.
// ABOUTME: Maps installed participant metadata into coordination descriptors.

package discovery

import (
	"context"

	"github.com/2389/urimux/host"
)

// RuntimeProvider discovers participants through the host runtime's
// installed-participant metadata.
type RuntimeProvider struct {
	runtime host.Runtime
}

// NewRuntimeProvider creates a provider backed by the given runtime.
func NewRuntimeProvider(runtime host.Runtime) *RuntimeProvider {
	return &RuntimeProvider{runtime: runtime}
}

// Discover lists every installed participant as a descriptor. Selection of
// actual coordination peers is left to Relevant.
func (p *RuntimeProvider) Discover(_ context.Context) ([]Descriptor, error) {
	installed := p.runtime.Installed()
	descriptors := make([]Descriptor, 0, len(installed))
	for _, info := range installed {
		descriptors = append(descriptors, Descriptor{
			ID:              info.ID,
			Name:            info.Name,
			CoordinatesWith: info.Manifest.CoordinatesWith,
		})
	}
	return descriptors, nil
}
