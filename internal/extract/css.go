package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// cssURLRegex matches url(...) with a double-quoted, single-quoted or bare value
var cssURLRegex = regexp.MustCompile(`(?i)url\(\s*(?:"([^"]*)"|'([^']*)'|([^)"'\s][^)"']*?))\s*\)`)

// Reference is a url() reference with its position in the source text
type Reference struct {
	URL    string
	Line   int // 1-indexed
	Column int // 1-indexed, in runes, pointing at the "u" of url(
}

// CSSReferences returns the local url() references of a stylesheet,
// deduplicated and in encounter order.
func CSSReferences(css string) []string {
	set := newOrderedSet()
	for _, ref := range CSSReferencesWithLines(css) {
		set.add(ref.URL)
	}
	return set.list()
}

// CSSReferencesWithLines returns every local url() reference with its line
// and column. Repeated references are all returned.
func CSSReferencesWithLines(css string) []Reference {
	matches := cssURLRegex.FindAllStringSubmatchIndex(css, -1)
	refs := make([]Reference, 0, len(matches))

	line, lineStart, scanned := 1, 0, 0
	for _, m := range matches {
		value := cssMatchValue(css, m)
		if !IsLocalReference(value) {
			continue
		}

		// Advance the line counter up to this match only once
		for i := scanned; i < m[0]; i++ {
			if css[i] == '\n' {
				line++
				lineStart = i + 1
			}
		}
		scanned = m[0]

		refs = append(refs, Reference{
			URL:    value,
			Line:   line,
			Column: utf8.RuneCountInString(css[lineStart:m[0]]) + 1,
		})
	}
	return refs
}

// cssMatchValue returns the url() value captured by whichever alternative matched
func cssMatchValue(css string, m []int) string {
	for group := 1; group <= 3; group++ {
		start, end := m[2*group], m[2*group+1]
		if start >= 0 {
			return strings.TrimSpace(css[start:end])
		}
	}
	return ""
}

// RewriteCSSReferences replaces every local url() whose value fn maps to a
// new value. Non-local references and those fn declines are left untouched.
func RewriteCSSReferences(css string, fn func(ref string) (string, bool)) string {
	return cssURLRegex.ReplaceAllStringFunc(css, func(match string) string {
		ref := cssMatchValue(match, cssURLRegex.FindStringSubmatchIndex(match))
		if !IsLocalReference(ref) {
			return match
		}
		replacement, ok := fn(ref)
		if !ok {
			return match
		}
		return `url("` + replacement + `")`
	})
}
