package types

import "fmt"

// SubRange is a single position or an inclusive interval (0-based).
// When HasTo is false the sub-range denotes the single position From.
type SubRange struct {
	From  int  `json:"from"`
	To    int  `json:"to,omitempty"`
	HasTo bool `json:"has_to,omitempty"`
}

// NewSingle returns a sub-range covering exactly one position.
func NewSingle(from int) SubRange {
	return SubRange{From: from}
}

// NewInterval returns the inclusive sub-range [from, to].
func NewInterval(from, to int) SubRange {
	return SubRange{From: from, To: to, HasTo: true}
}

// Upper returns the last position of the sub-range (From for singles).
func (s SubRange) Upper() int {
	if s.HasTo {
		return s.To
	}
	return s.From
}

// Contains reports whether the 0-based position lies within the sub-range.
func (s SubRange) Contains(pos int) bool {
	if !s.HasTo {
		return s.From == pos
	}
	return s.From <= pos && pos <= s.To
}

// Compare orders sub-ranges by From; for equal From a single sorts
// before an interval and two intervals are ordered by To.
func (s SubRange) Compare(o SubRange) int {
	switch {
	case s.From < o.From:
		return -1
	case s.From > o.From:
		return 1
	}

	switch {
	case s.HasTo && o.HasTo:
		switch {
		case s.To < o.To:
			return -1
		case s.To > o.To:
			return 1
		}
		return 0
	case !s.HasTo && !o.HasTo:
		return 0
	case !s.HasTo:
		return -1
	default:
		return 1
	}
}

// String returns a debug representation of the sub-range.
func (s SubRange) String() string {
	if !s.HasTo {
		return fmt.Sprintf("num=%d", s.From)
	}
	return fmt.Sprintf("from=%d, to=%d", s.From, s.To)
}

// Segment is a (from, to) pair as returned by Range.IntSegments.
// Singles have From == To.
type Segment [2]int
