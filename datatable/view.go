package datatable

import (
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/query"
	"github.com/ncobase/datatable/table"
)

// View is a render-ready snapshot of a table.
type View[T any] struct {
	// Search is the typed text, ahead of the committed search.
	Search    string         `json:"search"`
	State     query.State    `json:"-"`
	Headers   []table.Header `json:"headers"`
	Rows      []table.Row    `json:"rows"`
	Items     []T            `json:"-"`
	Empty     bool           `json:"empty"`
	Meta      paging.Meta    `json:"meta"`
	Pager     paging.Pager   `json:"-"`
	Summary   string         `json:"summary"`
	ShowPager bool           `json:"show_pager"`
}

// View returns the current snapshot. A page whose current page lies
// outside its page count renders as an empty result.
func (t *Table[T]) View() View[T] {
	state := t.store.Current()
	sort := table.SortOf(state)

	t.mu.Lock()
	text := t.text
	var page paging.Page[T]
	if t.page != nil {
		page = *t.page
	}
	t.mu.Unlock()

	v := View[T]{
		Search:  text,
		State:   state,
		Headers: table.Headers(t.cols, sort),
		Meta:    page.Meta,
	}

	var items []T
	if page.Meta.InRange() {
		items = t.rows.VisibleRows(page.Data, t.cols, sort)
	}
	v.Items = items
	v.Rows = table.Rows(items, t.cols)
	v.Empty = len(items) == 0

	if !v.Empty {
		v.Pager = paging.Build(page.Meta.CurrentPage, page.Meta.LastPage)
		v.ShowPager = v.Pager.Visible()
		v.Summary = paging.Summary(page.Meta)
	} else {
		v.Summary = paging.NoResults
	}
	return v
}
