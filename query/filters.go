package query

import (
	"maps"
	"slices"
)

// Reserved keys are carried by dedicated State fields and never stored as
// pass-through extras.
const (
	KeySearch        = "search"
	KeySortBy        = "sort_by"
	KeySortDirection = "sort_direction"
	KeyPage          = "page"
	KeyDateRange     = "date_range"
	// wire keys of the date range endpoints
	KeyStartDate = "start_date"
	KeyEndDate   = "end_date"
)

var reservedKeys = map[string]struct{}{
	KeySearch:        {},
	KeySortBy:        {},
	KeySortDirection: {},
	KeyPage:          {},
	KeyDateRange:     {},
	KeyStartDate:     {},
	KeyEndDate:       {},
}

// IsReserved reports whether key is handled by a dedicated field.
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// Filters is the pass-through extra filter store.
// A nil value is kept and serializes as absent.
type Filters map[string]any

// NewFilters builds a store from m, dropping reserved keys.
func NewFilters(m map[string]any) Filters {
	f := make(Filters, len(m))
	for k, v := range m {
		f.Set(k, v)
	}
	return f
}

// Set stores key unless it is reserved. It reports whether the key was stored.
func (f Filters) Set(key string, value any) bool {
	if key == "" || IsReserved(key) {
		return false
	}
	f[key] = value
	return true
}

// Get returns the value of key.
func (f Filters) Get(key string) (any, bool) {
	v, ok := f[key]
	return v, ok
}

// Merge returns a new store with other's non-reserved keys added to or
// overwriting f's. Keys missing from other are kept.
func (f Filters) Merge(other Filters) Filters {
	out := f.Clone()
	for k, v := range other {
		out.Set(k, v)
	}
	return out
}

// Clone returns a shallow copy.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	maps.Copy(out, f)
	return out
}

// Keys returns the keys in sorted order.
func (f Filters) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}
