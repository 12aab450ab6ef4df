// Package names resolves user-facing names (column headers, attribute names)
// inside index and range expressions.
//
// A name that contains one of the grammar characters "-", "," or "_" must be
// written in double quotes so it is read as a single token.
package names

import "strings"

// Quote delimits names containing grammar characters.
const Quote = `"`

// special lists the characters that force a name to be quoted.
const special = "-,_"

// NeedsQuotes reports whether name must be quoted inside an expression.
func NeedsQuotes(name string) bool {
	return strings.ContainsAny(name, special)
}

// Escape quotes name if it contains a grammar character, otherwise it is
// returned unchanged.
func Escape(name string) string {
	if !NeedsQuotes(name) {
		return name
	}
	return Quote + name + Quote
}

// Unescape strips one pair of surrounding double quotes.
func Unescape(s string) string {
	if IsQuoted(s) {
		return s[len(Quote) : len(s)-len(Quote)]
	}
	return s
}

// IsQuoted reports whether s is wrapped in double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2*len(Quote) && strings.HasPrefix(s, Quote) && strings.HasSuffix(s, Quote)
}

// Split splits s at every sep that is not inside double quotes. The result
// always has at least one element.
func Split(s string, sep byte) []string {
	var parts []string
	quoted := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
