// Package abbrev normalizes organization abbreviations as they appear in
// annual report documents so they can be matched against the registry.
package abbrev

import "strings"

const escapedAmp = "&amp;"

// Normalize trims raw, drops a parenthesized qualifier that starts at the
// second word, so "ABC (XYZ) Corp" and "ABC (Formerly XYZ)" both become
// "ABC", and unescapes "&amp;" to "&".
// Normalize is idempotent and never changes letter case.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if first, rest, ok := strings.Cut(s, " "); ok {
		rest = strings.TrimSpace(rest)
		second := strings.Fields(rest)[0]
		if wrapped(second) || wrapped(rest) {
			s = first
		}
	}
	for strings.Contains(s, escapedAmp) {
		s = strings.Replace(s, escapedAmp, "&", 1)
	}
	return s
}

func wrapped(s string) bool {
	return strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
}

// Escape is the inverse of the ampersand unescape in Normalize.
func Escape(s string) string {
	return strings.ReplaceAll(s, "&", escapedAmp)
}
