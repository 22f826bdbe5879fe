package paging

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ncobase/datatable/ecode"
)

// Meta holds the page metadata reported by the data source.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	Total       int    `json:"total"`
	PerPage     int    `json:"per_page"`
	From        int    `json:"from"`
	To          int    `json:"to"`
	Path        string `json:"path,omitempty"`
}

// Validate reports malformed metadata.
func (m Meta) Validate() error {
	switch {
	case m.CurrentPage < 1:
		return fmt.Errorf("%w: %s", ecode.ErrInvalidMeta, ecode.OutOfRange("current_page"))
	case m.LastPage >= 1 && m.CurrentPage > m.LastPage:
		return fmt.Errorf("%w: current_page %d > last_page %d", ecode.ErrInvalidMeta, m.CurrentPage, m.LastPage)
	case m.From > m.To || m.To > m.Total:
		return fmt.Errorf("%w: from %d, to %d, total %d", ecode.ErrInvalidMeta, m.From, m.To, m.Total)
	}
	return nil
}

// InRange reports whether the current page lies within [1, LastPage].
func (m Meta) InRange() bool {
	return m.CurrentPage >= 1 && m.CurrentPage <= m.LastPage
}

// HasNext reports whether a next page exists.
func (m Meta) HasNext() bool {
	return m.CurrentPage < m.LastPage
}

// HasPrev reports whether a previous page exists.
func (m Meta) HasPrev() bool {
	return m.CurrentPage > 1
}

// Links holds navigation links; nil when the target does not exist.
type Links struct {
	First *string `json:"first"`
	Last  *string `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// Page is one page of a paginated data source.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Links Links `json:"links"`
	Meta  Meta  `json:"meta"`
}

// LastPage returns the number of pages needed for total items.
func LastPage(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// NewPage builds a page envelope for items, the slice of page out of total.
// Links keep the query of base and replace its page parameter.
func NewPage[T any](items []T, total, page, perPage int, base *url.URL) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	last := LastPage(total, perPage)

	meta := Meta{
		CurrentPage: page,
		LastPage:    last,
		Total:       total,
		PerPage:     perPage,
	}
	if len(items) > 0 {
		meta.From = (page-1)*perPage + 1
		meta.To = meta.From + len(items) - 1
	}

	var links Links
	if base != nil {
		meta.Path = base.Path
		links.First = pageLink(base, 1)
		links.Last = pageLink(base, last)
		if page > 1 && page <= last+1 {
			links.Prev = pageLink(base, page-1)
		}
		if page < last {
			links.Next = pageLink(base, page+1)
		}
	}

	return Page[T]{Data: items, Links: links, Meta: meta}
}

func pageLink(base *url.URL, page int) *string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
