package table

import (
	"fmt"
	"time"

	"github.com/ncobase/datatable/ecode"
	"github.com/ncobase/datatable/query"
)

// Column describes one table column.
type Column[T any] struct {
	ID     string
	Header string
	// HeaderFunc overrides Header when set.
	HeaderFunc func() string
	Accessor   func(T) any
	// Cell formats the cell; the accessor value is printed otherwise.
	Cell     func(T) string
	Sortable bool
}

// Title returns the header text.
func (c Column[T]) Title() string {
	if c.HeaderFunc != nil {
		return c.HeaderFunc()
	}
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

// Value returns the raw value of row.
func (c Column[T]) Value(row T) any {
	if c.Accessor == nil {
		return nil
	}
	return c.Accessor(row)
}

// Render returns the display text of row.
func (c Column[T]) Render(row T) string {
	if c.Cell != nil {
		return c.Cell(row)
	}
	switch v := c.Value(row).(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(query.DateLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(query.DateLayout)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Columns is an ordered column set.
type Columns[T any] []Column[T]

// Validate requires unique, non-empty ids.
func (cs Columns[T]) Validate() error {
	seen := make(map[string]struct{}, len(cs))
	for i, c := range cs {
		if c.ID == "" {
			return fmt.Errorf("%w: column %d: %s", ecode.ErrDuplicateColumn, i, ecode.FieldIsEmpty("id"))
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %s", ecode.ErrDuplicateColumn, ecode.AlreadyExist(c.ID))
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// Find returns the column with id.
func (cs Columns[T]) Find(id string) (Column[T], bool) {
	for _, c := range cs {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}

// SortState is the sort shown by the headers.
type SortState struct {
	Field     string
	Direction query.SortDirection
}

// SortOf returns the sort state of s.
func SortOf(s query.State) SortState {
	return SortState{Field: s.SortField, Direction: s.SortDirection}
}
