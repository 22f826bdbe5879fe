// Package source serves an in-memory dataset as a paginated endpoint that
// speaks the table payload.
package source

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/payload"
	"github.com/ncobase/datatable/query"
	"github.com/ncobase/datatable/table"
)

// DefaultPerPage is the page size when neither the request nor the source
// sets one.
const DefaultPerPage = 10

// Memory is a paginated view over a slice.
type Memory[T any] struct {
	// Search reports whether item matches the search term.
	Search func(item T, term string) bool
	// Sorts maps sortable field names to key accessors.
	Sorts map[string]func(T) any
	// Date returns the date filtered by start_date and end_date.
	Date func(T) time.Time
	// Fields maps extra filter keys to value accessors. Keys without an
	// accessor are ignored.
	Fields  map[string]func(T) any
	PerPage int
	// MaxPerPage caps per_page; 0 means no cap.
	MaxPerPage int

	mu    sync.RWMutex
	items []T
}

// NewMemory returns a source over items.
func NewMemory[T any](items []T) *Memory[T] {
	return &Memory[T]{items: slices.Clone(items)}
}

// Add appends items.
func (m *Memory[T]) Add(items ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
}

// Len returns the number of items.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Query filters, sorts and slices the dataset. base becomes the page path
// and the base of its links.
func (m *Memory[T]) Query(r payload.Request, base *url.URL) (paging.Page[T], error) {
	if r.SortBy != "" {
		if _, ok := m.Sorts[r.SortBy]; !ok {
			return paging.Page[T]{}, &payload.ValidationError{Fields: map[string]string{
				payload.KeySortBy: fmt.Sprintf("The field '%s' cannot sort by %q.", payload.KeySortBy, r.SortBy),
			}}
		}
	}

	m.mu.RLock()
	items := slices.Clone(m.items)
	m.mu.RUnlock()

	items = slices.DeleteFunc(items, func(it T) bool { return !m.match(it, r) })

	if key, ok := m.Sorts[r.SortBy]; ok {
		desc := r.Direction() == query.SortDesc
		slices.SortStableFunc(items, func(a, b T) int {
			c := table.Compare(key(a), key(b))
			if desc {
				return -c
			}
			return c
		})
	}

	perPage := m.perPage(r.PerPage)
	total := len(items)
	start, end := total, total
	if r.Page >= 1 && r.Page <= paging.LastPage(total, perPage) {
		start = (r.Page - 1) * perPage
		end = min(start+perPage, total)
	}

	return paging.NewPage(items[start:end], total, r.Page, perPage, linkBase(base, r)), nil
}

func (m *Memory[T]) perPage(requested int) int {
	n := m.PerPage
	if requested > 0 {
		n = requested
	}
	if n <= 0 {
		n = DefaultPerPage
	}
	if m.MaxPerPage > 0 {
		n = min(n, m.MaxPerPage)
	}
	return n
}

func (m *Memory[T]) match(it T, r payload.Request) bool {
	if term := strings.TrimSpace(r.Search); term != "" && m.Search != nil && !m.Search(it, term) {
		return false
	}

	if m.Date != nil {
		if dr := r.DateRange(time.UTC); dr != nil {
			d := truncate(m.Date(it))
			if dr.From != nil && d.Before(*dr.From) {
				return false
			}
			if dr.To != nil && d.After(*dr.To) {
				return false
			}
		}
	}

	for k, want := range r.Extra {
		get, ok := m.Fields[k]
		if !ok || len(want) == 0 {
			continue
		}
		if !slices.Contains(want, fmt.Sprint(get(it))) {
			return false
		}
	}
	return true
}

// truncate drops the time of day, keeping the calendar date in UTC.
func truncate(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// linkBase carries the request payload into the page links.
func linkBase(base *url.URL, r payload.Request) *url.URL {
	if base == nil {
		return nil
	}
	u := *base
	values, err := r.Payload().Values()
	if err != nil {
		return &u
	}
	if r.PerPage > 0 {
		values.Set(payload.KeyPerPage, fmt.Sprint(r.PerPage))
	}
	u.RawQuery = values.Encode()
	return &u
}
