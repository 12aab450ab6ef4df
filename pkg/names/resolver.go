package names

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/praetorian-inc/rangeexpr/pkg/placeholder"
	"github.com/praetorian-inc/rangeexpr/pkg/tokenizer"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// Resolver resolves single tokens of an expression: names first (when a
// table is present), then placeholders, then 1-based numbers.
//
// A data-backed resolver without a table cannot tell names from noise, so it
// does not filter expressions and reports unknown words as unresolvable.
type Resolver struct {
	table      *Table
	dataBacked bool
}

// NewResolver returns a resolver for plain numeric/placeholder expressions.
func NewResolver() *Resolver {
	return &Resolver{}
}

// NewDataResolver returns a resolver for a data-backed expression; table may
// be nil when no data is attached yet.
func NewDataResolver(table *Table) *Resolver {
	return &Resolver{table: table, dataBacked: true}
}

// Table returns the name table, nil if none.
func (r *Resolver) Table() *Table {
	return r.table
}

// CanClean reports whether expressions may be filtered down to known tokens.
func (r *Resolver) CanClean() bool {
	return !r.dataBacked || r.table != nil
}

// Tokenizer returns a tokenizer for expr: the names occurring in expr merged
// with the base grammar tokens, longest first. On equal length a name comes
// before a grammar token, so a column called "first" or "5" is read as a name.
func (r *Resolver) Tokenizer(expr string, base []string) *tokenizer.Tokenizer {
	if r.table == nil {
		return tokenizer.New(base...)
	}
	candidates := r.table.Candidates(expr)
	if len(candidates) == 0 {
		return tokenizer.New(base...)
	}
	tokens := append(candidates, base...)
	slices.SortStableFunc(tokens, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	return tokenizer.New(tokens...)
}

// IsSingle reports whether token is syntactically a single position: a
// known name, a placeholder or a number.
func (r *Resolver) IsSingle(token string) bool {
	if r.table != nil && r.table.Has(token) {
		return true
	}
	return placeholder.IsPlaceholder(token) || placeholder.IsNumeric(token)
}

// Value resolves token without checking it against max.
func (r *Resolver) Value(token string, max int) (int, error) {
	if r.table != nil && !isExplicit(token) {
		if pos, ok := r.table.Lookup(token); ok {
			return pos, nil
		}
	}
	if r.dataBacked && r.table == nil && !placeholder.IsPlaceholder(token) && !placeholder.IsNumeric(token) {
		return -1, fmt.Errorf("%q: %w", token, types.ErrUnresolvableName)
	}
	return placeholder.Value(token, max)
}

// Parse resolves token and rejects positions outside [0, max-1].
func (r *Resolver) Parse(token string, max int) (int, error) {
	if max <= 0 {
		return -1, types.ErrInvalidMaximum
	}
	pos, err := r.Value(token, max)
	if err != nil {
		return -1, err
	}
	if pos < 0 || pos >= max {
		return -1, fmt.Errorf("%q resolves to %d, max %d: %w", token, pos, max, types.ErrOutOfRange)
	}
	return pos, nil
}

func isExplicit(token string) bool {
	return strings.HasPrefix(token, placeholder.Explicit) && placeholder.IsNumeric(token)
}

// Binding ties an expression to an optional data source and builds its
// resolver on demand. It is not safe for concurrent use; the owning Index or
// Range guards it with its own lock.
type Binding struct {
	dataBacked bool
	source     types.NameSource
	resolver   *Resolver
}

// NewBinding returns a binding for a plain (dataBacked false) or a
// data-backed expression.
func NewBinding(dataBacked bool) Binding {
	return Binding{dataBacked: dataBacked}
}

// BindResolver returns a binding that always uses res.
func BindResolver(res *Resolver) Binding {
	return Binding{dataBacked: res.dataBacked, resolver: res}
}

// DataBacked reports whether names are allowed.
func (b *Binding) DataBacked() bool {
	return b.dataBacked
}

// Source returns the attached data source, nil if none.
func (b *Binding) Source() types.NameSource {
	return b.source
}

// SetSource attaches (or, with nil, detaches) a data source and drops the
// cached resolver.
func (b *Binding) SetSource(src types.NameSource) {
	b.source = src
	b.resolver = nil
}

// Resolver returns the resolver for the current source.
func (b *Binding) Resolver() *Resolver {
	if b.resolver != nil {
		return b.resolver
	}
	switch {
	case !b.dataBacked:
		b.resolver = NewResolver()
	case b.source == nil:
		b.resolver = NewDataResolver(nil)
	default:
		b.resolver = NewDataResolver(NewTable(b.source))
	}
	return b.resolver
}
