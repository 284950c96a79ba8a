// Package extract finds local file references in stylesheets, layout markup
// and compiled provider configuration.
//
// All extractors share IsLocalReference, so remote URLs (http, https,
// protocol-relative), data URIs and bare fragments are filtered the same way
// everywhere.
package extract

import "strings"

// excludedPrefixes are reference prefixes that never point at a local file
var excludedPrefixes = []string{
	"http://",
	"https://",
	"//",
	"data:",
}

// IsLocalReference reports whether ref points at a local file
func IsLocalReference(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return false
	}
	lower := strings.ToLower(ref)
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

// StripQueryAndFragment removes a trailing ?query and #fragment from a reference.
// Font declarations commonly use forms such as "font.eot?#iefix" or "font.svg#name".
func StripQueryAndFragment(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i]
	}
	return ref
}

// orderedSet keeps the first occurrence of each value
type orderedSet struct {
	seen   map[string]bool
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.values = append(s.values, v)
}

func (s *orderedSet) list() []string {
	if s.values == nil {
		return []string{}
	}
	return s.values
}
