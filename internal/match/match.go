// Package match provides case-insensitive name matching for record lookup.
package match

import "strings"

// Equal reports whether two record names are equal after case
// normalization. It is defined as equality of Key values, so in-memory
// scans and key-indexed backends agree on which names match.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// Key returns the case-normalized form of a name, suitable as an index
// key in persistent backends. Two names for which Equal returns true
// produce the same key.
func Key(name string) string {
	return strings.ToLower(name)
}
