// Package names derives sortable surname keys for Dutch names.
package names

import "strings"

// MissingSortKey sorts after every real surname.
const MissingSortKey = "zzzzzzzz"

// Ordered longest-first: shorter prefixes are substrings of longer ones, so
// "van der Berg" must not match "van".
var prefixes = []string{"van der", "van den", "van de", "van", "de", "v.d."}

// SortKey returns the sort key for a surname. A nil surname maps to
// MissingSortKey. A name starting with a known prefix followed by a space
// becomes "<remainder>, <prefix>" with the prefix in its canonical lowercase
// form; anything else is returned unchanged.
func SortKey(lastName *string) string {
	if lastName == nil {
		return MissingSortKey
	}
	name := *lastName
	lower := strings.ToLower(name)
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, prefix+" ") {
			remainder := strings.TrimLeft(name[len(prefix):], " ")
			if remainder == "" {
				return name
			}
			return remainder + ", " + prefix
		}
	}
	return name
}
