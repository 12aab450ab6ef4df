package ranges

import (
	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// rangeCore lets DataRange embed Range without the field hiding Range.Range.
type rangeCore = Range

// DataRange is a Range that may also refer to positions by name, e.g.
// `id,"first_name"-score` against a spreadsheet header. Attaching a source
// bounds the range by the number of names.
type DataRange[D types.NameSource] struct {
	*rangeCore
	data    D
	hasData bool
}

// NewDataRange creates a data-backed range without data. Until data is
// attached the expression is only split, not cleaned, and names do not
// resolve.
func NewDataRange[D types.NameSource](raw string) *DataRange[D] {
	return &DataRange[D]{rangeCore: newRange(raw, -1, names.NewBinding(true))}
}

// NewDataRangeWithData creates a data-backed range for the given source.
func NewDataRangeWithData[D types.NameSource](raw string, data D) *DataRange[D] {
	d := NewDataRange[D](raw)
	d.SetData(data)
	return d
}

// SetData attaches a data source and sets the bound to its size. A nil
// source, including a typed nil pointer, detaches the current one.
func (d *DataRange[D]) SetData(data D) {
	if types.IsNilSource(data) {
		d.ClearData()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = data
	d.hasData = true
	d.binding.SetSource(data)
	d.max = normalizeMax(data.Count())
	d.clean = nil
	d.reset()
}

// ClearData detaches the data source; the range becomes unbounded.
func (d *DataRange[D]) ClearData() {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero D
	d.data = zero
	d.hasData = false
	d.binding.SetSource(nil)
	d.max = -1
	d.clean = nil
	d.reset()
}

// Data returns the attached data source.
func (d *DataRange[D]) Data() (D, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data, d.hasData
}

// Clone returns an independent copy sharing the data source.
func (d *DataRange[D]) Clone() *DataRange[D] {
	data, ok := d.Data()
	return &DataRange[D]{rangeCore: d.rangeCore.Clone(), data: data, hasData: ok}
}

// AsRange returns the underlying Range, e.g. for Compare.
func (d *DataRange[D]) AsRange() *Range {
	return d.rangeCore
}

// DataUnorderedRange is the data-backed UnorderedRange.
type DataUnorderedRange[D types.NameSource] struct {
	*UnorderedRange
	data    D
	hasData bool
}

// NewDataUnorderedRange creates a data-backed unordered range without data.
func NewDataUnorderedRange[D types.NameSource](raw string) *DataUnorderedRange[D] {
	return &DataUnorderedRange[D]{UnorderedRange: newUnordered(raw, -1, names.NewBinding(true))}
}

// NewDataUnorderedRangeWithData creates a data-backed unordered range for the
// given source.
func NewDataUnorderedRangeWithData[D types.NameSource](raw string, data D) *DataUnorderedRange[D] {
	d := NewDataUnorderedRange[D](raw)
	d.SetData(data)
	return d
}

// SetData attaches a data source and sets the bound to its size. A nil
// source, including a typed nil pointer, detaches the current one.
func (d *DataUnorderedRange[D]) SetData(data D) {
	if types.IsNilSource(data) {
		d.ClearData()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = data
	d.hasData = true
	d.binding.SetSource(data)
	d.max = normalizeMax(data.Count())
	d.clean = nil
	d.reset()
}

// ClearData detaches the data source; the range becomes unbounded.
func (d *DataUnorderedRange[D]) ClearData() {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero D
	d.data = zero
	d.hasData = false
	d.binding.SetSource(nil)
	d.max = -1
	d.clean = nil
	d.reset()
}

// Data returns the attached data source.
func (d *DataUnorderedRange[D]) Data() (D, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data, d.hasData
}

// Clone returns an independent copy sharing the data source.
func (d *DataUnorderedRange[D]) Clone() *DataUnorderedRange[D] {
	data, ok := d.Data()
	return &DataUnorderedRange[D]{UnorderedRange: d.UnorderedRange.Clone(), data: data, hasData: ok}
}

// AsUnorderedRange returns the underlying UnorderedRange.
func (d *DataUnorderedRange[D]) AsUnorderedRange() *UnorderedRange {
	return d.UnorderedRange
}

// EscapeName quotes a name containing '-', ',' or '_' for use in an
// expression.
func EscapeName(name string) string {
	return names.Escape(name)
}

// UnescapeName strips the quotes added by EscapeName.
func UnescapeName(s string) string {
	return names.Unescape(s)
}
