package types

import (
	"errors"
	"fmt"
)

// Sentinel errors describing why a token or segment could not be resolved.
// None of them escape Index or Range getters; they are reported through the
// error accumulator (Range.Errors) and the placeholder.Parse family.
var (
	// ErrInvalidMaximum is returned when resolution is attempted without a positive bound.
	ErrInvalidMaximum = errors.New("invalid maximum")

	// ErrNotAPlaceholder is returned when a token is not one of the six placeholders.
	ErrNotAPlaceholder = errors.New("not a placeholder")

	// ErrOutOfRange is returned when a resolved position lies outside [0, max-1].
	ErrOutOfRange = errors.New("position out of range")

	// ErrMalformedSegment is returned for a segment that is neither single nor single-single.
	ErrMalformedSegment = errors.New("malformed segment")

	// ErrUnresolvableName is returned for a name that matches no placeholder and no known name.
	ErrUnresolvableName = errors.New("unresolvable name")
)

// SegmentError records a comma-segment that was dropped while parsing.
type SegmentError struct {
	Segment string
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %q: %v", e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}
