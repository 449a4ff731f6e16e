// ABOUTME: Canonical string form for resource URIs.
// ABOUTME: Equivalent spellings must compare equal before ownership predicates run.

package ownership

import (
	"net/url"
	"strings"
)

// CanonicalURI normalizes a resource identifier so that differently spelled
// but equivalent URIs produce the same string: scheme and host are
// lowercased and percent-encoding is re-derived from the decoded path.
// Strings that do not parse as URIs are returned unchanged — the protocol
// treats resource identity as host-defined and opaque.
func CanonicalURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	// Drop the verbatim path so String() re-encodes from the decoded form,
	// collapsing unnecessary escapes like %2D.
	u.RawPath = ""
	return u.String()
}
