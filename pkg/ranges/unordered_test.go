package ranges

import (
	"testing"

	"github.com/praetorian-inc/rangeexpr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnorderedRange_IntIndices(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		max      int
		expected []int
	}{
		{name: "no max", raw: "1", max: -1, expected: []int{}},
		{name: "duplicates and order kept", raw: "3,1,3", max: 5, expected: []int{2, 0, 2}},
		{name: "ascending singles", raw: "1,2,6,8", max: 10, expected: []int{0, 1, 5, 7}},
		{name: "descending singles", raw: "8,2,6,1", max: 10, expected: []int{7, 1, 5, 0}},
		{name: "explicit singles", raw: "#1,#2,#6,#8", max: 10, expected: []int{0, 1, 5, 7}},
		{name: "sub-ranges in order", raw: "6-8,1-4", max: 10, expected: []int{5, 6, 7, 0, 1, 2, 3}},
		{name: "placeholders", raw: "last,first", max: 10, expected: []int{9, 0}},
		{name: "single out of range", raw: "12", max: 10, expected: []int{}},
		{name: "one of two out of range", raw: "5,12", max: 10, expected: []int{4}},
		{name: "second interval out of range", raw: "5-9,11-20", max: 10, expected: []int{4, 5, 6, 7, 8}},
		{name: "interval end clamped", raw: "5-12,15-20", max: 10, expected: []int{4, 5, 6, 7, 8, 9}},
		{name: "mixed", raw: "1-3,4,6-7,8", max: 10, expected: []int{0, 1, 2, 3, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewUnorderedWithMax(tt.raw, tt.max).IntIndices())
		})
	}
}

func TestUnorderedRange_Setting(t *testing.T) {
	for _, s := range []string{"1", "#1", "1-10", "#1-#10", "first-10", "first-#10", "1-last", "#1-last", "first-last", "3,1,3"} {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, s, NewUnordered(s).Range())
		})
	}
}

func TestUnorderedRange_NoInversion(t *testing.T) {
	r := NewUnorderedWithMax("inv(1-3)", 10)
	assert.Equal(t, "1-3", r.Range())
	assert.Equal(t, []int{0, 1, 2}, r.IntIndices())
}

func TestUnorderedRange_SetIndices(t *testing.T) {
	tests := []struct {
		indices  []int
		expected string
	}{
		{indices: []int{}, expected: ""},
		{indices: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, expected: "1,2,3,4,5,6,7,8,9,10"},
		{indices: []int{0, 1, 3, 4, 6, 7, 9}, expected: "1,2,4,5,7,8,10"},
		{indices: []int{0, 2, 4, 6, 9}, expected: "1,3,5,7,10"},
		{indices: []int{4, 0, 2, 9, 6}, expected: "5,1,3,10,7"},
		{indices: []int{0}, expected: "1"},
		{indices: []int{9}, expected: "10"},
		{indices: []int{0, 9}, expected: "1,10"},
	}

	r := NewUnorderedWithMax("", 10)
	for _, tt := range tests {
		r.SetIndices(tt.indices)
		assert.Equal(t, tt.expected, r.Range())
		assert.Equal(t, tt.indices, r.IntIndices())
	}
}

func TestToUnorderedRange(t *testing.T) {
	assert.Equal(t, "1,2,3,4,5", ToUnorderedRange([]int{0, 1, 2, 3, 4}).Range())
	assert.Equal(t, "1,2,4,5", ToUnorderedRange([]int{0, 1, 3, 4}).Range())
	assert.Equal(t, "1,4,7,9", ToUnorderedRange([]int{0, 3, 6, 8}).Range())
}

func TestUnorderedRange_InRange(t *testing.T) {
	r := NewUnorderedWithMax("3,1,3", 5)
	assert.True(t, r.InRange(0))
	assert.True(t, r.InRange(2))
	assert.False(t, r.InRange(1))
	assert.False(t, r.InRange(4))
}

func TestUnorderedRange_IntSegments(t *testing.T) {
	r := NewUnorderedWithMax("3,1-2,3", 10)
	assert.Equal(t, []types.Segment{{2, 2}, {0, 1}, {2, 2}}, r.IntSegments())
}

func TestUnorderedRange_ToExplicitRange(t *testing.T) {
	assert.Equal(t, "1,2,3,4,5", NewUnorderedWithMax("first-last", 5).ToExplicitRange())
	assert.Equal(t, "2,3,4", NewUnorderedWithMax("second-last_1", 5).ToExplicitRange())
	assert.Equal(t, "4,1,4", NewUnorderedWithMax("4,1,4", 5).ToExplicitRange())
}

func TestUnorderedRange_Errors(t *testing.T) {
	r := NewUnorderedWithMax("2,12,3", 10)
	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], types.ErrOutOfRange)
	assert.Equal(t, []int{1, 2}, r.IntIndices())
	assert.Error(t, r.Validate())
}

func TestUnorderedRange_EmptyAndAll(t *testing.T) {
	r := NewUnordered("")
	assert.True(t, r.IsEmpty())
	assert.False(t, r.HasRange())

	r.SetRange(All)
	assert.True(t, r.IsAllRange())
}

func TestUnorderedRange_CompareAndEqual(t *testing.T) {
	assert.False(t, NewUnorderedWithMax("1,2", 5).Equal(NewUnorderedWithMax("2,1", 5)))
	assert.True(t, NewUnorderedWithMax("1-3", 5).Equal(NewUnorderedWithMax("1,2,3", 5)))
	assert.Negative(t, NewUnorderedWithMax("1,2", 5).Compare(NewUnorderedWithMax("2,1", 5)))
}

func TestUnorderedRange_CloneAndString(t *testing.T) {
	r := NewUnorderedWithMax("3, 1", 5)
	clone := r.Clone()
	assert.Equal(t, "3,1", clone.Raw())
	assert.Equal(t, []int{2, 0}, clone.IntIndices())
	assert.Equal(t, "range=3,1, max=5", r.String())
	assert.Contains(t, r.Example(), "duplicates are kept")
}

func TestUnorderedRange_SetMax(t *testing.T) {
	r := NewUnorderedWithMax("last,1", 3)
	assert.Equal(t, []int{2, 0}, r.IntIndices())
	r.SetMax(4)
	assert.Equal(t, []int{3, 0}, r.IntIndices())
	assert.Equal(t, 4, r.Max())
}

func TestIsValidUnordered(t *testing.T) {
	assert.True(t, IsValidUnordered("3,1,3", 5))
	assert.False(t, IsValidUnordered("3,1,9", 5))
	assert.False(t, IsValidUnordered("inv(1)", 5))
	assert.False(t, IsValidUnordered("", 5))
}
