package ranges

import (
	"slices"
	"strconv"
	"strings"
)

// Compact encodes 0-based positions as a minimal 1-based range expression:
// positions are sorted, duplicates and negatives dropped, and runs of
// consecutive positions written as "from-to".
//
//	Compact([]int{0, 1, 2, 5, 7, 8}) == "1-3,6,8-9"
func Compact(positions []int) string {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	return encodeRuns(slices.Compact(sorted))
}

// Explicit lists 0-based positions 1-based and comma-separated in the order
// given; duplicates are kept, negatives dropped.
//
//	Explicit([]int{4, 0, 0, 2}) == "5,1,1,3"
func Explicit(positions []int) string {
	parts := make([]string, 0, len(positions))
	for _, pos := range positions {
		if pos >= 0 {
			parts = append(parts, strconv.Itoa(pos+1))
		}
	}
	return strings.Join(parts, ListSep)
}

func encodeRuns(positions []int) string {
	var sb strings.Builder
	for i := 0; i < len(positions); {
		if positions[i] < 0 {
			i++
			continue
		}
		j := i
		for j+1 < len(positions) && positions[j+1] == positions[j]+1 {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteString(ListSep)
		}
		sb.WriteString(strconv.Itoa(positions[i] + 1))
		if j > i {
			sb.WriteString(RangeSep)
			sb.WriteString(strconv.Itoa(positions[j] + 1))
		}
		i = j + 1
	}
	return sb.String()
}
