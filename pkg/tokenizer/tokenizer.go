// Package tokenizer filters raw index/range expressions down to the tokens
// the grammar allows.
//
// Each allowed token is substituted by a private-use code point (in order, so
// longer tokens listed first win), every character that is not such a code
// point is dropped, and the code points are finally replaced by their tokens
// again. Matching is case-insensitive; the emitted text uses the token as
// supplied to New.
package tokenizer

import (
	"strings"

	"github.com/praetorian-inc/rangeexpr/pkg/placeholder"
	"golang.org/x/text/unicode/norm"
)

// Structural tokens of the range grammar.
const (
	RangeSep  = "-"
	ListSep   = ","
	InvStart  = "inv("
	InvEnd    = ")"
	digitRune = "0123456789"
)

// Substitution code points live in the supplementary private use planes
// 15 and 16 (U+F0000..U+FFFFD, U+100000..U+10FFFD).
const (
	plane15     = 0xF0000
	plane16     = 0x100000
	planeSize   = 0xFFFE
	MaxTokens   = 2 * planeSize
	privateBase = plane15
)

// Tokenizer filters strings down to a fixed list of tokens.
type Tokenizer struct {
	tokens  []string
	lowered []string
}

// New creates a tokenizer for the given tokens. Tokens are tried in the
// given order; empty tokens and anything past MaxTokens are ignored.
func New(tokens ...string) *Tokenizer {
	t := &Tokenizer{
		tokens:  make([]string, 0, len(tokens)),
		lowered: make([]string, 0, len(tokens)),
	}
	for _, tok := range tokens {
		if tok == "" || len(t.tokens) == MaxTokens {
			continue
		}
		t.tokens = append(t.tokens, tok)
		t.lowered = append(t.lowered, strings.ToLower(norm.NFC.String(tok)))
	}
	return t
}

// Tokens returns the tokens in matching order.
func (t *Tokenizer) Tokens() []string {
	return append([]string(nil), t.tokens...)
}

// Filter lowercases s, keeps only whole occurrences of the tokens and drops
// every other character. The result may be empty.
func (t *Tokenizer) Filter(s string) string {
	if s == "" {
		return ""
	}

	work := strings.ToLower(norm.NFC.String(stripPrivate(s)))
	for i, tok := range t.lowered {
		if strings.Contains(work, tok) {
			work = strings.ReplaceAll(work, tok, string(codePoint(i)))
		}
	}

	var sb strings.Builder
	for _, r := range work {
		if idx, ok := tokenIndex(r); ok && idx < len(t.tokens) {
			sb.WriteString(t.tokens[idx])
		}
	}
	return sb.String()
}

// Digits returns the ten digit tokens.
func Digits() []string {
	out := make([]string, 0, len(digitRune))
	for _, r := range digitRune {
		out = append(out, string(r))
	}
	return out
}

// IndexTokens returns the tokens of a single index: placeholders, the
// explicit marker and digits.
func IndexTokens() []string {
	out := append([]string(nil), placeholder.All...)
	out = append(out, placeholder.Explicit)
	return append(out, Digits()...)
}

// UnorderedTokens returns the tokens of an unordered range (no inversion).
func UnorderedTokens() []string {
	return append(IndexTokens(), RangeSep, ListSep)
}

// RangeTokens returns the tokens of an ordered range.
func RangeTokens() []string {
	out := append([]string(nil), placeholder.All...)
	out = append(out, InvStart, InvEnd, placeholder.Explicit)
	out = append(out, Digits()...)
	return append(out, RangeSep, ListSep)
}

// =============================================================================
// HELPERS
// =============================================================================

func codePoint(i int) rune {
	if i < planeSize {
		return rune(plane15 + i)
	}
	return rune(plane16 + i - planeSize)
}

func tokenIndex(r rune) (int, bool) {
	switch {
	case r >= plane15 && r < plane15+planeSize:
		return int(r - plane15), true
	case r >= plane16 && r < plane16+planeSize:
		return int(r-plane16) + planeSize, true
	}
	return 0, false
}

// stripPrivate removes supplementary private-use code points so user input
// can never impersonate a substituted token.
func stripPrivate(s string) string {
	if !strings.ContainsFunc(s, isPrivate) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isPrivate(r) {
			return -1
		}
		return r
	}, s)
}

func isPrivate(r rune) bool {
	return r >= privateBase
}
