// Package videoid canonicalizes video URLs into bare identifiers.
package videoid

import "strings"

// Extract returns the canonical video identifier for a URL. It recognizes
// the short-link form (youtu.be/<id>, optionally followed by a query) and
// the watch form (?v=<id>, trailing parameters stripped). Anything else is
// returned unchanged, so Extract is a permissive transform rather than a
// validator, and applying it to its own output yields the same value.
func Extract(url string) string {
	if _, rest, ok := strings.Cut(url, "youtu.be/"); ok {
		id, _, _ := strings.Cut(rest, "?")
		return strings.TrimSuffix(id, "/")
	}
	if strings.Contains(url, "watch?v=") {
		_, rest, _ := strings.Cut(url, "v=")
		id, _, _ := strings.Cut(rest, "&")
		return id
	}
	return url
}
