package names

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
	"golang.org/x/text/unicode/norm"
)

// Entry is one name of a data source.
type Entry struct {
	Name     string `json:"name"`
	Token    string `json:"token"` // how the name is written in an expression
	Position int    `json:"position"`
}

// Table maps names to positions. Entries are ordered by descending token
// length and then by byte-wise name order, so a longer name always wins over
// a shorter one it contains and equal-length names have a fixed order.
type Table struct {
	entries []Entry
	byName  map[string]int
	byFold  map[string]int

	// Aho-Corasick over the lowercased tokens, used to skip names that do not
	// occur in an expression at all. keywordEntry maps a dictionary index to
	// the first entry with that lowercased token.
	matcher      *ahocorasick.Matcher
	keywordEntry []int
}

// NewTable builds a table from a data source. Empty names are skipped and
// for duplicate names the lowest position wins.
func NewTable(src types.NameSource) *Table {
	t := &Table{
		byName: make(map[string]int),
		byFold: make(map[string]int),
	}
	if src == nil {
		return t
	}

	n := src.Count()
	for i := 0; i < n; i++ {
		name := norm.NFC.String(src.NameAt(i))
		if name == "" {
			continue
		}
		if _, dup := t.byName[name]; dup {
			continue
		}
		t.byName[name] = i
		t.entries = append(t.entries, Entry{Name: name, Token: Escape(name), Position: i})
	}

	slices.SortStableFunc(t.entries, func(a, b Entry) int {
		if c := cmp.Compare(len(b.Token), len(a.Token)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	var keywords []string
	seenKeyword := make(map[string]bool)
	for i, e := range t.entries {
		if kw := fold(e.Token); !seenKeyword[kw] {
			seenKeyword[kw] = true
			keywords = append(keywords, kw)
			t.keywordEntry = append(t.keywordEntry, i)
		}
		if _, seen := t.byFold[fold(e.Name)]; !seen {
			t.byFold[fold(e.Name)] = e.Position
		}
	}
	if len(keywords) > 0 {
		t.matcher = ahocorasick.NewStringMatcher(keywords)
	}

	return t
}

// Len returns the number of distinct names.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in matching order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Tokens returns the written form of every name in matching order.
func (t *Table) Tokens() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Token
	}
	return out
}

// Candidates returns, in matching order, the tokens of the names that occur
// in expr (case-insensitively).
func (t *Table) Candidates(expr string) []string {
	if t.matcher == nil || expr == "" {
		return nil
	}

	hits := t.matcher.MatchThreadSafe([]byte(fold(expr)))
	if len(hits) == 0 {
		return nil
	}
	idx := make([]int, 0, len(hits))
	for _, hit := range hits {
		idx = append(idx, t.keywordEntry[hit])
	}
	slices.Sort(idx)

	out := make([]string, 0, len(idx))
	for _, i := range slices.Compact(idx) {
		out = append(out, t.entries[i].Token)
	}
	return out
}

// Lookup returns the position of a name, written plain or quoted. An exact
// match is preferred over a case-insensitive one.
func (t *Table) Lookup(token string) (int, bool) {
	name := norm.NFC.String(Unescape(token))
	if pos, ok := t.byName[name]; ok {
		return pos, true
	}
	pos, ok := t.byFold[fold(name)]
	return pos, ok
}

// Has reports whether token names an entry.
func (t *Table) Has(token string) bool {
	_, ok := t.Lookup(token)
	return ok
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
