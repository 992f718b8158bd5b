package matchquery

import "strings"

// path is one concrete property chain: up to three levels, each a literal
// key or empty for "not constrained". l1 names a top-level update field,
// l2 a field nested under it, l3 a field or type discriminator one level
// deeper.
type path struct {
	l1, l2, l3 string
}

// parseQuery splits a query on ':' into its segments, preserving empty
// ones so that "message:" and "message" stay distinct (an empty second
// segment is a shortcut key, an absent one is no constraint at all).
// Segments beyond the third are ignored. Parsing never fails; whether the
// result denotes anything is decided at compile time.
func parseQuery(query string) []string {
	segments := strings.Split(query, ":")
	if len(segments) > 3 {
		segments = segments[:3]
	}
	return segments
}
