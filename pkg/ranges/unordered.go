package ranges

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// UnorderedRange is a comma-separated list of singles and intervals whose
// positions are returned in expression order, duplicates included:
// "3,1,3" on max 5 yields [2 0 2]. There is no "inv(...)".
//
// Each segment is resolved by a Range of its own, so bounds, placeholders and
// the clamping of interval ends behave exactly as in Range.
type UnorderedRange struct {
	mu sync.Mutex

	raw     string
	max     int
	binding names.Binding

	clean    *string
	parsed   bool
	segments []*Range
	indices  []int
	errs     []error
}

// NewUnordered creates an unbounded unordered range.
func NewUnordered(raw string) *UnorderedRange {
	return NewUnorderedWithMax(raw, -1)
}

// NewUnorderedWithMax creates an unordered range bounded by max.
func NewUnorderedWithMax(raw string, max int) *UnorderedRange {
	return newUnordered(raw, max, names.NewBinding(false))
}

func newUnordered(raw string, max int, binding names.Binding) *UnorderedRange {
	return &UnorderedRange{
		raw:     raw,
		max:     normalizeMax(max),
		binding: binding,
	}
}

// ToUnorderedRange returns an unbounded unordered range listing the given
// 0-based positions in order.
func ToUnorderedRange(positions []int) *UnorderedRange {
	return NewUnordered(Explicit(positions))
}

// IsValidUnordered is IsValid for unordered ranges.
func IsValidUnordered(s string, max int) bool {
	return NewUnorderedWithMax(s, max).Valid()
}

// SetRange replaces the expression.
func (u *UnorderedRange) SetRange(raw string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.raw = raw
	u.clean = nil
	u.reset()
}

// Raw returns the expression exactly as supplied.
func (u *UnorderedRange) Raw() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.raw
}

// SetIndices replaces the expression with the given 0-based positions,
// listed in order.
func (u *UnorderedRange) SetIndices(positions []int) {
	u.SetRange(Explicit(positions))
}

// SetMax sets the bound; values <= 0 mean unbounded.
func (u *UnorderedRange) SetMax(max int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if max = normalizeMax(max); max != u.max {
		u.max = max
		u.reset()
	}
}

// Max returns the bound, -1 when unbounded.
func (u *UnorderedRange) Max() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.max
}

// Range returns the cleaned expression, or the raw expression if nothing
// valid is left after cleaning.
func (u *UnorderedRange) Range() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rangeLocked()
}

// HasRange reports whether an expression is present.
func (u *UnorderedRange) HasRange() bool {
	return u.Range() != ""
}

// IsEmpty reports whether no expression is present.
func (u *UnorderedRange) IsEmpty() bool {
	return u.Range() == ""
}

// IsAllRange reports whether the expression is "first-last".
func (u *UnorderedRange) IsAllRange() bool {
	return u.Range() == All
}

// InRange reports whether the 0-based position occurs in the list.
func (u *UnorderedRange) InRange(pos int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.parseLocked()
	return slices.Contains(u.indices, pos)
}

// IntIndices returns the positions in expression order, duplicates
// included. Empty if the range is unbounded.
func (u *UnorderedRange) IntIndices() []int {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.parseLocked()
	return slices.Clone(u.indices)
}

// IntSegments returns the parsed segments in expression order.
func (u *UnorderedRange) IntSegments() []types.Segment {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.parseLocked()
	var out []types.Segment
	for _, seg := range u.segments {
		out = append(out, seg.IntSegments()...)
	}
	return out
}

// ToExplicitRange lists every position, 1-based and comma-separated, in
// expression order.
func (u *UnorderedRange) ToExplicitRange() string {
	return Explicit(u.IntIndices())
}

// Valid reports whether the raw expression is canonical and, when bounded,
// resolves without dropping a segment.
func (u *UnorderedRange) Valid() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	clean := u.cleanLocked()
	if clean == "" || clean != u.raw {
		return false
	}
	if u.max > 0 {
		u.parseLocked()
		return len(u.errs) == 0
	}
	return true
}

// Errors returns the segments dropped by the last parse.
func (u *UnorderedRange) Errors() []error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.parseLocked()
	return slices.Clone(u.errs)
}

// Validate returns the dropped segments joined into one error, nil if none.
func (u *UnorderedRange) Validate() error {
	return errors.Join(u.Errors()...)
}

// Compare orders unordered ranges by length and then position by position.
func (u *UnorderedRange) Compare(o *UnorderedRange) int {
	return compareIndices(u.IntIndices(), o.IntIndices())
}

// Equal reports whether both ranges list the same positions in the same order.
func (u *UnorderedRange) Equal(o *UnorderedRange) bool {
	if o == nil {
		return false
	}
	return u.Compare(o) == 0
}

// Clone returns an independent copy holding the cleaned expression.
func (u *UnorderedRange) Clone() *UnorderedRange {
	u.mu.Lock()
	defer u.mu.Unlock()
	binding := names.NewBinding(u.binding.DataBacked())
	binding.SetSource(u.binding.Source())
	return newUnordered(u.rangeLocked(), u.max, binding)
}

// String returns a debug representation.
func (u *UnorderedRange) String() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fmt.Sprintf("range=%s, max=%d", u.rangeLocked(), u.max)
}

// Example returns a short description of the syntax.
func (u *UnorderedRange) Example() string {
	return example(u.binding.DataBacked(), false)
}

// =============================================================================
// HELPERS
// =============================================================================

func (u *UnorderedRange) reset() {
	u.parsed = false
	u.segments = nil
	u.indices = nil
	u.errs = nil
}

func (u *UnorderedRange) cleanLocked() string {
	if u.clean == nil {
		clean := cleanExpr(u.binding.Resolver(), u.raw, false)
		u.clean = &clean
	}
	return *u.clean
}

func (u *UnorderedRange) rangeLocked() string {
	if clean := u.cleanLocked(); clean != "" {
		return clean
	}
	return u.raw
}

func (u *UnorderedRange) parseLocked() {
	if u.parsed {
		return
	}
	u.parsed = true
	u.indices = []int{}
	if u.max <= 0 {
		return
	}

	res := u.binding.Resolver()
	for _, seg := range names.Split(u.rangeLocked(), ListSep[0]) {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, InvStart) {
			u.errs = append(u.errs, &types.SegmentError{Segment: seg, Err: types.ErrMalformedSegment})
			continue
		}
		sub := newRange(seg, u.max, names.BindResolver(res))
		if errs := sub.Errors(); len(errs) > 0 {
			u.errs = append(u.errs, errs...)
			continue
		}
		u.segments = append(u.segments, sub)
		u.indices = append(u.indices, sub.IntIndices()...)
	}
}
