package query

import (
	"fmt"
	"strings"

	"github.com/ncobase/datatable/ecode"
)

// SortDirection represents sorting direction.
type SortDirection string

const (
	SortNone SortDirection = ""     // Not sorted
	SortAsc  SortDirection = "asc"  // Ascending order
	SortDesc SortDirection = "desc" // Descending order
)

// Valid reports whether d is one of the known directions.
func (d SortDirection) Valid() bool {
	switch d {
	case SortNone, SortAsc, SortDesc:
		return true
	}
	return false
}

// String returns the wire form, "none" for SortNone.
func (d SortDirection) String() string {
	if d == SortNone {
		return "none"
	}
	return string(d)
}

// ParseSortDirection parses asc, desc, none or the empty string.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	case "", "none", "null":
		return SortNone, nil
	}
	return SortNone, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsInvalid("sort_direction"))
}

// NextSort returns the sort that clicking column produces from current.
//
// The same column cycles none → asc → desc → none; any other column resets
// to asc regardless of the previous column's direction.
func NextSort(current State, column string) (string, SortDirection) {
	if current.SortField != column {
		return column, SortAsc
	}
	switch current.SortDirection {
	case SortAsc:
		return column, SortDesc
	case SortDesc:
		return "", SortNone
	default:
		return column, SortAsc
	}
}
