package index

import (
	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// indexCore lets DataIndex embed Index without the field hiding Index.Index.
type indexCore = Index

// DataIndex is an Index that may also refer to a position by name. Names are
// looked up in the attached data source; attaching a source also bounds the
// index by the number of names.
type DataIndex[D types.NameSource] struct {
	*indexCore
	data    D
	hasData bool
}

// NewDataIndex creates a data-backed index without data.
func NewDataIndex[D types.NameSource](raw string) *DataIndex[D] {
	return &DataIndex[D]{indexCore: newIndex(raw, -1, names.NewBinding(true))}
}

// NewDataIndexWithData creates a data-backed index for the given source.
func NewDataIndexWithData[D types.NameSource](raw string, data D) *DataIndex[D] {
	d := NewDataIndex[D](raw)
	d.SetData(data)
	return d
}

// SetData attaches a data source and sets the bound to its size. A nil
// source, including a typed nil pointer, detaches the current one.
func (d *DataIndex[D]) SetData(data D) {
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
	d.reset()
}

// ClearData detaches the data source; the index becomes unbounded.
func (d *DataIndex[D]) ClearData() {
	d.mu.Lock()
	defer d.mu.Unlock()
	var zero D
	d.data = zero
	d.hasData = false
	d.binding.SetSource(nil)
	d.max = -1
	d.reset()
}

// Data returns the attached data source.
func (d *DataIndex[D]) Data() (D, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data, d.hasData
}

// Clone returns an independent copy sharing the data source.
func (d *DataIndex[D]) Clone() *DataIndex[D] {
	data, ok := d.Data()
	return &DataIndex[D]{indexCore: d.indexCore.Clone(), data: data, hasData: ok}
}

// AsIndex returns the underlying Index, e.g. for Compare.
func (d *DataIndex[D]) AsIndex() *Index {
	return d.indexCore
}
