// Package ranges implements range expressions over a bounded, ordered
// collection: "1-5,7", "inv(first-3)", "last_2-last" and, for data-backed
// ranges, quoted or plain names such as `"col,1"-height`.
//
// A Range is an ordered set: the union of its segments, optionally
// complemented by an "inv(...)" wrapper. An UnorderedRange is a list: its
// segments are expanded in expression order and duplicates are kept.
//
// Malformed input never fails. Segments that cannot be used are dropped when
// cleaning or parsing and reported through Errors.
package ranges

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/placeholder"
	"github.com/praetorian-inc/rangeexpr/pkg/tokenizer"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// Grammar tokens.
const (
	RangeSep = tokenizer.RangeSep
	ListSep  = tokenizer.ListSep
	InvStart = tokenizer.InvStart
	InvEnd   = tokenizer.InvEnd
)

// All selects every position.
const All = placeholder.First + RangeSep + placeholder.Last

// Range is an ordered, duplicate-free set of positions.
//
// The expression is cleaned, split and resolved lazily. The derived state
// (cleaned text, inversion flag, segments and errors) is computed and
// replaced under one lock, so readers never see a mixed combination.
type Range struct {
	mu sync.Mutex

	raw     string
	max     int
	binding names.Binding

	clean     *string
	inverted  *bool
	actual    *string
	parsed    bool
	subRanges []types.SubRange
	errs      []error
}

// New creates an unbounded range.
func New(raw string) *Range {
	return NewWithMax(raw, -1)
}

// NewWithMax creates a range bounded by max (positions 1..max).
func NewWithMax(raw string, max int) *Range {
	return newRange(raw, max, names.NewBinding(false))
}

func newRange(raw string, max int, binding names.Binding) *Range {
	return &Range{
		raw:     raw,
		max:     normalizeMax(max),
		binding: binding,
	}
}

// ToRange returns an unbounded range selecting the given 0-based positions.
func ToRange(positions []int) *Range {
	return New(Compact(positions))
}

// IsValid reports whether s is already in canonical form: cleaning leaves it
// unchanged and non-empty, and with a positive max no segment is dropped
// while parsing.
func IsValid(s string, max int) bool {
	return NewWithMax(s, max).Valid()
}

// SetRange replaces the expression.
func (r *Range) SetRange(raw string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setRangeLocked(raw)
}

// Raw returns the expression exactly as supplied.
func (r *Range) Raw() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.raw
}

// SetIndices replaces the expression with the compact form of the given
// 0-based positions.
func (r *Range) SetIndices(positions []int) {
	r.SetRange(Compact(positions))
}

// SetMax sets the bound; values <= 0 mean unbounded.
func (r *Range) SetMax(max int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if max = normalizeMax(max); max != r.max {
		r.max = max
		r.reset()
	}
}

// Max returns the bound, -1 when unbounded.
func (r *Range) Max() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.max
}

// Range returns the cleaned expression, or the raw expression if nothing
// valid is left after cleaning.
func (r *Range) Range() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rangeLocked()
}

// ActualRange returns the expression without its "inv(...)" wrapper.
func (r *Range) ActualRange() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.actualLocked()
}

// HasRange reports whether an expression is present.
func (r *Range) HasRange() bool {
	return r.Range() != ""
}

// IsEmpty reports whether no expression is present.
func (r *Range) IsEmpty() bool {
	return r.Range() == ""
}

// IsAllRange reports whether the expression is "first-last".
func (r *Range) IsAllRange() bool {
	return r.Range() == All
}

// IsInverted reports whether the expression is wrapped in "inv(...)".
func (r *Range) IsInverted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invertedLocked()
}

// SetInverted adds or removes the "inv(...)" wrapper.
func (r *Range) SetInverted(inverted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	actual := r.actualLocked()
	if inverted {
		r.setRangeLocked(InvStart + actual + InvEnd)
	} else {
		r.setRangeLocked(actual)
	}
}

// InRange reports whether the 0-based position is selected.
func (r *Range) InRange(pos int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inRangeLocked(pos)
}

// IntIndices returns the selected 0-based positions in ascending order.
// Empty if the range is unbounded.
func (r *Range) IntIndices() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.intIndicesLocked()
}

// IntSegments returns the parsed segments without expanding them; a single
// position is returned as (pos, pos).
func (r *Range) IntSegments() []types.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parseLocked()
	out := make([]types.Segment, len(r.subRanges))
	for i, sub := range r.subRanges {
		out[i] = types.Segment{sub.From, sub.Upper()}
	}
	return out
}

// SubRanges returns a copy of the parsed segments.
func (r *Range) SubRanges() []types.SubRange {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parseLocked()
	return slices.Clone(r.subRanges)
}

// ToExplicitRange lists every selected position, 1-based and comma-separated.
func (r *Range) ToExplicitRange() string {
	return Explicit(r.IntIndices())
}

// Valid reports whether the raw expression is canonical and, when bounded,
// resolves without dropping a segment.
func (r *Range) Valid() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	clean := r.cleanLocked()
	if clean == "" || clean != r.raw {
		return false
	}
	if r.max > 0 {
		r.parseLocked()
		return len(r.errs) == 0
	}
	return true
}

// Errors returns the segments dropped by the last parse, each as a
// *types.SegmentError.
func (r *Range) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parseLocked()
	return slices.Clone(r.errs)
}

// Validate returns the dropped segments joined into one error, nil if none.
func (r *Range) Validate() error {
	return errors.Join(r.Errors()...)
}

// Compare orders ranges by the number of selected positions and then by the
// positions themselves.
func (r *Range) Compare(o *Range) int {
	return compareIndices(r.IntIndices(), o.IntIndices())
}

// Equal reports whether both ranges select the same positions.
func (r *Range) Equal(o *Range) bool {
	if o == nil {
		return false
	}
	return r.Compare(o) == 0
}

// Clone returns an independent copy holding the cleaned expression and
// sharing the data source, if any.
func (r *Range) Clone() *Range {
	r.mu.Lock()
	defer r.mu.Unlock()
	binding := names.NewBinding(r.binding.DataBacked())
	binding.SetSource(r.binding.Source())
	return newRange(r.rangeLocked(), r.max, binding)
}

// String returns a debug representation.
func (r *Range) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("range=%s, max=%d, inv=%t", r.rangeLocked(), r.max, r.invertedLocked())
}

// Example returns a short description of the syntax.
func (r *Range) Example() string {
	return example(r.binding.DataBacked(), true)
}

// =============================================================================
// HELPERS
// =============================================================================

func (r *Range) reset() {
	r.inverted = nil
	r.actual = nil
	r.parsed = false
	r.subRanges = nil
	r.errs = nil
}

func (r *Range) setRangeLocked(raw string) {
	r.raw = raw
	r.clean = nil
	r.reset()
}

func (r *Range) cleanLocked() string {
	if r.clean == nil {
		clean := cleanExpr(r.binding.Resolver(), r.raw, true)
		r.clean = &clean
	}
	return *r.clean
}

func (r *Range) rangeLocked() string {
	if clean := r.cleanLocked(); clean != "" {
		return clean
	}
	return r.raw
}

func (r *Range) invertedLocked() bool {
	if r.inverted == nil {
		s := r.rangeLocked()
		inv := strings.HasPrefix(s, InvStart) && strings.HasSuffix(s, InvEnd) && len(s) >= len(InvStart)+len(InvEnd)
		r.inverted = &inv
	}
	return *r.inverted
}

func (r *Range) actualLocked() string {
	if r.actual == nil {
		s := r.rangeLocked()
		if r.invertedLocked() {
			s = s[len(InvStart) : len(s)-len(InvEnd)]
		}
		r.actual = &s
	}
	return *r.actual
}

func (r *Range) parseLocked() {
	if r.parsed {
		return
	}
	r.subRanges, r.errs = parseExpr(r.binding.Resolver(), r.actualLocked(), r.max)
	r.parsed = true
}

func (r *Range) inRangeLocked(pos int) bool {
	r.parseLocked()
	for _, sub := range r.subRanges {
		if sub.Contains(pos) {
			return !r.invertedLocked()
		}
	}
	return r.invertedLocked()
}

func (r *Range) intIndicesLocked() []int {
	out := []int{}
	for i := 0; i < r.max; i++ {
		if r.inRangeLocked(i) {
			out = append(out, i)
		}
	}
	return out
}

// cleanExpr filters s down to grammar tokens and drops every segment that is
// not "single" or "single-single" with from <= to. Bounds are not checked:
// "first-last" stays valid regardless of max. A data-backed expression
// without data is only split, not filtered.
func cleanExpr(res *names.Resolver, s string, allowInv bool) string {
	canClean := res.CanClean()

	tmp := s
	if canClean {
		base := tokenizer.RangeTokens()
		if !allowInv {
			base = tokenizer.UnorderedTokens()
		}
		tmp = res.Tokenizer(s, base).Filter(s)
	}

	inverted := false
	if allowInv && len(tmp) >= len(InvStart)+1+len(InvEnd) &&
		strings.HasPrefix(tmp, InvStart) && strings.HasSuffix(tmp, InvEnd) {
		inverted = true
		tmp = tmp[len(InvStart) : len(tmp)-len(InvEnd)]
	}

	var kept []string
	for _, seg := range names.Split(tmp, ListSep[0]) {
		if keepSegment(res, seg, canClean) {
			kept = append(kept, seg)
		}
	}

	out := strings.Join(kept, ListSep)
	if inverted && out != "" {
		out = InvStart + out + InvEnd
	}
	return out
}

func keepSegment(res *names.Resolver, seg string, canClean bool) bool {
	parts := names.Split(seg, RangeSep[0])
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	if !canClean {
		return len(parts) <= 2
	}

	switch len(parts) {
	case 1:
		return res.IsSingle(parts[0])
	case 2:
		if !res.IsSingle(parts[0]) || !res.IsSingle(parts[1]) {
			return false
		}
		from, err := res.Value(parts[0], placeholder.Unbounded)
		if err != nil {
			return false
		}
		to, err := res.Value(parts[1], placeholder.Unbounded)
		if err != nil {
			return false
		}
		return from <= to
	}
	return false
}

// parseExpr resolves the segments of an expression (without inversion
// wrapper) against max. A single or interval start outside [0, max-1] drops
// the segment; an interval end beyond the last position is clamped to max.
func parseExpr(res *names.Resolver, expr string, max int) ([]types.SubRange, []error) {
	if max <= 0 {
		return nil, nil
	}

	var subs []types.SubRange
	var errs []error
	for _, seg := range names.Split(expr, ListSep[0]) {
		if seg == "" {
			continue
		}
		sub, err := parseSegment(res, seg, max)
		if err != nil {
			errs = append(errs, &types.SegmentError{Segment: seg, Err: err})
			continue
		}
		subs = append(subs, sub)
	}
	return subs, errs
}

func parseSegment(res *names.Resolver, seg string, max int) (types.SubRange, error) {
	parts := names.Split(seg, RangeSep[0])
	switch len(parts) {
	case 1:
		from, err := res.Parse(parts[0], max)
		if err != nil {
			return types.SubRange{}, err
		}
		return types.NewSingle(from), nil
	case 2:
		from, err := res.Parse(parts[0], max)
		if err != nil {
			return types.SubRange{}, err
		}
		to, err := res.Value(parts[1], max)
		if err != nil {
			return types.SubRange{}, err
		}
		if from > to {
			return types.SubRange{}, fmt.Errorf("%q is before %q: %w", parts[1], parts[0], types.ErrMalformedSegment)
		}
		if to >= max {
			to = max
		}
		return types.NewInterval(from, to), nil
	}
	return types.SubRange{}, types.ErrMalformedSegment
}

func compareIndices(a, b []int) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return slices.Compare(a, b)
}

func example(dataBacked, allowInv bool) string {
	var sb strings.Builder
	if allowInv {
		sb.WriteString("A range is a comma-separated list of single 1-based indices or sub-ranges of indices ('start-end'); ")
		sb.WriteString("'inv(...)' inverts the range '...'; ")
	} else {
		sb.WriteString("An unordered range is a comma-separated list of single 1-based indices or sub-ranges of indices ('start-end'), ")
		sb.WriteString("used in the order given and duplicates are kept; ")
	}
	sb.WriteString("the following placeholders can be used as well: ")
	sb.WriteString(strings.Join(placeholder.All, ", "))
	if dataBacked {
		sb.WriteString("; names can be used as well, names containing '-', ',' or '_' must be enclosed in double quotes")
		sb.WriteString("; '#' followed by a number forces a numeric index")
	}
	return sb.String()
}

func normalizeMax(max int) int {
	if max <= 0 {
		return -1
	}
	return max
}
