package tables

import (
	"fmt"
	"regexp"
	"strings"
)

// nonAlnum matches the character runs collapsed during header sanitization.
var nonAlnum = regexp.MustCompile(`[^0-9A-Za-z]+`)

// SanitizeName normalizes a single header: runs of non-alphanumeric
// characters collapse to one underscore and trailing underscores are
// stripped. The result may be empty when the input has no alphanumerics;
// SanitizeNames handles positional replacement for that case.
//
// Sanitization is idempotent: applying it to an already-sanitized name is a
// no-op, so headers may be normalized at ingest and again inside the merger.
func SanitizeName(name string) string {
	return strings.TrimRight(nonAlnum.ReplaceAllString(name, "_"), "_")
}

// SanitizeNames normalizes a full header row. Names that sanitize to the
// empty string are replaced positionally with Column_<n> (1-based), and
// duplicates are disambiguated by appending _2, _3, ... in first-come order.
// The returned names are unique and safe for Table construction.
func SanitizeNames(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]bool, len(names))

	for i, name := range names {
		base := SanitizeName(name)
		if base == "" {
			base = fmt.Sprintf("Column_%d", i+1)
		}

		candidate := base
		for n := 2; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d", base, n)
		}

		used[candidate] = true
		out[i] = candidate
	}

	return out
}
