package types

import "reflect"

// NameSource is the capability a data-backed index or range needs from the
// collection it addresses: how many elements there are and what each one is
// called. Positions are 0-based.
type NameSource interface {
	Count() int
	NameAt(i int) string
}

// Names is a static NameSource backed by a slice, e.g. a spreadsheet header row.
type Names []string

// Count returns the number of names.
func (n Names) Count() int {
	return len(n)
}

// NameAt returns the name at 0-based position i, "" when out of bounds.
func (n Names) NameAt(i int) string {
	if i < 0 || i >= len(n) {
		return ""
	}
	return n[i]
}

// CollectNames copies all names of a source into a slice.
func CollectNames(src NameSource) Names {
	if IsNilSource(src) {
		return nil
	}
	out := make(Names, src.Count())
	for i := range out {
		out[i] = src.NameAt(i)
	}
	return out
}

// IsNilSource reports whether src is nil or an interface holding a nil
// pointer, map or func.
func IsNilSource(src NameSource) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
