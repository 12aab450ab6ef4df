// Package placeholder resolves single tokens of an index or range expression
// ("first", "last_1", "7", "#7") to 0-based positions.
package placeholder

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// Symbolic names for well-known positions.
const (
	First  = "first"
	Second = "second"
	Third  = "third"
	Last2  = "last_2" // 3rd to last
	Last1  = "last_1" // 2nd to last
	Last   = "last"
)

// Explicit prefixes a numeric single that must never be read as a name ("#3").
const Explicit = "#"

// Unbounded is the bound used to compare tokens when no maximum is known.
const Unbounded = math.MaxInt32

// All lists the placeholders in matching order: a placeholder that is a
// prefix of another ("last" of "last_1") comes after it.
var All = []string{First, Second, Third, Last2, Last1, Last}

// IsPlaceholder reports whether token is one of the six placeholders,
// ignoring case.
func IsPlaceholder(token string) bool {
	switch strings.ToLower(token) {
	case First, Second, Third, Last2, Last1, Last:
		return true
	}
	return false
}

// Resolve maps a placeholder to its 0-based position for the given maximum.
// The result is not range checked: with a small max "last_2" resolves to a
// negative position which the caller must reject.
func Resolve(token string, max int) (int, error) {
	switch strings.ToLower(token) {
	case First:
		return 0, nil
	case Second:
		return 1, nil
	case Third:
		return 2, nil
	case Last2:
		return max - 3, nil
	case Last1:
		return max - 2, nil
	case Last:
		return max - 1, nil
	}
	return -1, fmt.Errorf("%q: %w", token, types.ErrNotAPlaceholder)
}

// IsNumeric reports whether token is a 1-based number, optionally written
// with the explicit "#" marker.
func IsNumeric(token string) bool {
	digits := strings.TrimPrefix(token, Explicit)
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// Value resolves a placeholder or 1-based number to a 0-based position
// without checking it against max.
func Value(token string, max int) (int, error) {
	if IsPlaceholder(token) {
		return Resolve(token, max)
	}
	if !IsNumeric(token) {
		return -1, fmt.Errorf("%q: %w", token, types.ErrMalformedSegment)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(token, Explicit))
	if err != nil {
		return -1, fmt.Errorf("%q: %w", token, types.ErrMalformedSegment)
	}
	return n - 1, nil
}

// Parse resolves token against max and rejects positions outside [0, max-1].
func Parse(token string, max int) (int, error) {
	if max <= 0 {
		return -1, types.ErrInvalidMaximum
	}
	pos, err := Value(token, max)
	if err != nil {
		return -1, err
	}
	if pos < 0 || pos >= max {
		return -1, fmt.Errorf("%q resolves to %d, max %d: %w", token, pos, max, types.ErrOutOfRange)
	}
	return pos, nil
}
