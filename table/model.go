package table

import (
	"slices"

	"github.com/ncobase/datatable/query"
)

// RowModel decides the visible rows.
type RowModel[T any] interface {
	VisibleRows(rows []T, cols []Column[T], sort SortState) []T
}

// Manual shows rows in server order. Sorting and paging already happened
// on the server.
type Manual[T any] struct{}

// VisibleRows returns rows unchanged.
func (Manual[T]) VisibleRows(rows []T, _ []Column[T], _ SortState) []T {
	return rows
}

// Client sorts the loaded rows locally by the sorted column's accessor.
type Client[T any] struct{}

// VisibleRows returns a sorted copy of rows.
func (Client[T]) VisibleRows(rows []T, cols []Column[T], sort SortState) []T {
	if sort.Direction == query.SortNone {
		return rows
	}
	col, ok := Columns[T](cols).Find(sort.Field)
	if !ok || col.Accessor == nil {
		return rows
	}
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b T) int {
		c := Compare(col.Accessor(a), col.Accessor(b))
		if sort.Direction == query.SortDesc {
			return -c
		}
		return c
	})
	return out
}

// Indicator values of a header.
const (
	IndicatorAsc      = "asc"
	IndicatorDesc     = "desc"
	IndicatorUnsorted = "unsorted"
)

// Header is the view model of a column header.
type Header struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Sortable  bool                `json:"sortable"`
	Sorted    bool                `json:"sorted"`
	Direction query.SortDirection `json:"direction,omitempty"`
	Indicator string              `json:"indicator,omitempty"`
}

// Row is the view model of a table row.
type Row struct {
	Index int      `json:"index"`
	Cells []string `json:"cells"`
}

// Headers builds the header view models.
func Headers[T any](cols []Column[T], sort SortState) []Header {
	out := make([]Header, 0, len(cols))
	for _, c := range cols {
		h := Header{ID: c.ID, Title: c.Title(), Sortable: c.Sortable}
		if c.Sortable {
			h.Indicator = IndicatorUnsorted
			if sort.Direction != query.SortNone && sort.Field == c.ID {
				h.Sorted = true
				h.Direction = sort.Direction
				h.Indicator = string(sort.Direction)
			}
		}
		out = append(out, h)
	}
	return out
}

// Rows renders rows cell by cell.
func Rows[T any](rows []T, cols []Column[T]) []Row {
	out := make([]Row, 0, len(rows))
	for i, r := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = c.Render(r)
		}
		out = append(out, Row{Index: i, Cells: cells})
	}
	return out
}
