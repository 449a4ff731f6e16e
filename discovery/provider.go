// ABOUTME: Provider interface and participant descriptors for peer discovery
// ABOUTME: Relevant applies the coordinates-with/wildcard selection rule

package discovery

import "context"

// Wildcard in a manifest's coordinates-with list matches every participant.
const Wildcard = "*"

// Descriptor describes a discovered participant, independent of any host.
type Descriptor struct {
	ID   string
	Name string

	// CoordinatesWith lists the participant IDs this participant declares
	// coordination with. May contain Wildcard.
	CoordinatesWith []string
}

// Provider produces participant descriptors from a metadata source.
// Implementations must be safe for concurrent use.
type Provider interface {
	Discover(ctx context.Context) ([]Descriptor, error)
}

// Relevant filters descriptors down to coordination peers of selfID: every
// participant other than selfID whose manifest names selfID or the wildcard.
func Relevant(descriptors []Descriptor, selfID string) []Descriptor {
	peers := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.ID == selfID {
			continue
		}
		if coordinatesWith(d, selfID) {
			peers = append(peers, d)
		}
	}
	return peers
}

func coordinatesWith(d Descriptor, selfID string) bool {
	for _, id := range d.CoordinatesWith {
		if id == selfID || id == Wildcard {
			return true
		}
	}
	return false
}
