// Package strings provides string and string slice helpers
package strings

import (
	std "strings"
	"unicode"
	"unicode/utf8"
)

// Contains reports whether sub is within s
func Contains(s, sub string) bool { return std.Contains(s, sub) }

// Compact returns in with blank/whitespace-only entries removed,
// preserving order. Entries are trimmed
func Compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = std.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Capitalize upper-cases the first rune of s and leaves the rest alone
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	up := unicode.ToUpper(r)
	if up == r {
		return s
	}
	return string(up) + s[size:]
}
