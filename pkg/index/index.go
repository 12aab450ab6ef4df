// Package index implements a single 1-based position expression such as
// "3", "last_1" or, for data-backed indices, a name like "height".
package index

import (
	"cmp"
	"fmt"
	"strings"
	"sync"

	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/placeholder"
	"github.com/praetorian-inc/rangeexpr/pkg/tokenizer"
)

// Index is a single position. The expression is cleaned and resolved lazily;
// every setter drops the cached results.
type Index struct {
	mu sync.Mutex

	raw     string
	max     int
	binding names.Binding

	clean    *string
	intIndex *int
}

// New creates an unbounded index.
func New(raw string) *Index {
	return NewWithMax(raw, -1)
}

// NewWithMax creates an index bounded by max (1..max are valid).
func NewWithMax(raw string, max int) *Index {
	return newIndex(raw, max, names.NewBinding(false))
}

func newIndex(raw string, max int, binding names.Binding) *Index {
	return &Index{
		raw:     raw,
		max:     normalizeMax(max),
		binding: binding,
	}
}

// SetIndex replaces the expression.
func (i *Index) SetIndex(raw string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.raw = raw
	i.reset()
}

// Raw returns the expression exactly as supplied.
func (i *Index) Raw() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.raw
}

// SetMax sets the bound; values <= 0 mean unbounded.
func (i *Index) SetMax(max int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.max = normalizeMax(max)
	i.intIndex = nil
}

// Max returns the bound, -1 when unbounded.
func (i *Index) Max() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.max
}

// Index returns the cleaned expression, or the raw expression if nothing
// valid is left after cleaning.
func (i *Index) Index() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.indexLocked()
}

// HasIndex reports whether an expression is present.
func (i *Index) HasIndex() bool {
	return i.Index() != ""
}

// IsEmpty reports whether no expression is present.
func (i *Index) IsEmpty() bool {
	return !i.HasIndex()
}

// IntIndex returns the 0-based position, -1 if the index is unbounded or does
// not resolve to a position in [0, max-1].
func (i *Index) IntIndex() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.intIndexLocked()
}

// Resolve returns the 0-based position or the reason there is none.
func (i *Index) Resolve() (int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.binding.Resolver().Parse(i.indexLocked(), i.max)
}

// Compare orders indices by position. If either side is unbounded both are
// resolved against an unbounded maximum, so "3" < "5" still holds and
// "last" sorts after any number.
func (i *Index) Compare(o *Index) int {
	if i.Max() > 0 && o.Max() > 0 {
		return cmp.Compare(i.IntIndex(), o.IntIndex())
	}
	return cmp.Compare(i.unboundedValue(), o.unboundedValue())
}

// Equal compares the cleaned expressions.
func (i *Index) Equal(o *Index) bool {
	if o == nil {
		return false
	}
	return i.Index() == o.Index()
}

// Clone returns an independent copy sharing the data source, if any.
func (i *Index) Clone() *Index {
	i.mu.Lock()
	defer i.mu.Unlock()
	binding := names.NewBinding(i.binding.DataBacked())
	binding.SetSource(i.binding.Source())
	return newIndex(i.raw, i.max, binding)
}

// String returns a debug representation.
func (i *Index) String() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return fmt.Sprintf("index=%s, max=%d", i.indexLocked(), i.max)
}

// Example returns a short description of the syntax.
func (i *Index) Example() string {
	text := "An index is a number starting with 1; the following placeholders can be used as well: " +
		strings.Join(placeholder.All, ", ")
	if i.binding.DataBacked() {
		text += "; names can be used as well, names containing '-', ',' or '_' must be enclosed in double quotes" +
			"; '#' followed by a number forces a numeric index"
	}
	return text
}

// =============================================================================
// HELPERS
// =============================================================================

func (i *Index) reset() {
	i.clean = nil
	i.intIndex = nil
}

func (i *Index) indexLocked() string {
	if i.clean == nil {
		clean := i.cleanLocked(i.raw)
		i.clean = &clean
	}
	if *i.clean == "" {
		return i.raw
	}
	return *i.clean
}

func (i *Index) cleanLocked(s string) string {
	res := i.binding.Resolver()
	if !res.CanClean() {
		return s
	}
	filtered := res.Tokenizer(s, tokenizer.IndexTokens()).Filter(s)
	if !res.IsSingle(filtered) {
		return ""
	}
	return filtered
}

func (i *Index) intIndexLocked() int {
	if i.intIndex == nil {
		pos, err := i.binding.Resolver().Parse(i.indexLocked(), i.max)
		if err != nil {
			pos = -1
		}
		i.intIndex = &pos
	}
	return *i.intIndex
}

func (i *Index) unboundedValue() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	pos, err := i.binding.Resolver().Value(i.indexLocked(), placeholder.Unbounded)
	if err != nil {
		return -1
	}
	return pos
}

func normalizeMax(max int) int {
	if max <= 0 {
		return -1
	}
	return max
}
