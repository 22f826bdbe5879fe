package paging

import "strconv"

const (
	// maxPagesToShow is the page count listed without ellipsis.
	maxPagesToShow = 5
)

// EntryKind tells a page button from an ellipsis.
type EntryKind int

const (
	KindPage EntryKind = iota
	KindEllipsisStart
	KindEllipsisEnd
)

// Entry is one element of the pager.
type Entry struct {
	Kind EntryKind
	Page int
}

// IsEllipsis reports whether the entry is a gap marker.
func (e Entry) IsEllipsis() bool {
	return e.Kind != KindPage
}

// Key returns a stable identity for list rendering.
func (e Entry) Key() string {
	switch e.Kind {
	case KindEllipsisStart:
		return "ellipsis-start"
	case KindEllipsisEnd:
		return "ellipsis-end"
	}
	return "page-" + strconv.Itoa(e.Page)
}

// String renders the entry as a button label.
func (e Entry) String() string {
	if e.IsEllipsis() {
		return "..."
	}
	return strconv.Itoa(e.Page)
}

// Pager is the pagination view model.
type Pager struct {
	Entries []Entry
	Current int
	Total   int
	HasPrev bool
	HasNext bool
}

// Build returns the pager for currentPage out of totalPages.
func Build(currentPage, totalPages int) Pager {
	p := Pager{
		Current: currentPage,
		Total:   totalPages,
		HasPrev: currentPage > 1,
		HasNext: currentPage < totalPages,
	}
	if totalPages <= 0 {
		return p
	}

	if totalPages <= maxPagesToShow {
		p.Entries = make([]Entry, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			p.Entries = append(p.Entries, Entry{Kind: KindPage, Page: i})
		}
		return p
	}

	// out-of-range pages still get a sane window
	current := min(max(currentPage, 1), totalPages)

	p.Entries = append(p.Entries, Entry{Kind: KindPage, Page: 1})

	start := max(2, current-1)
	end := min(totalPages-1, current+1)
	if current <= 3 {
		end = min(totalPages-1, 4)
	}
	if current >= totalPages-2 {
		start = max(2, totalPages-3)
	}

	if start > 2 {
		p.Entries = append(p.Entries, Entry{Kind: KindEllipsisStart})
	}
	for i := start; i <= end; i++ {
		p.Entries = append(p.Entries, Entry{Kind: KindPage, Page: i})
	}
	if end < totalPages-1 {
		p.Entries = append(p.Entries, Entry{Kind: KindEllipsisEnd})
	}
	p.Entries = append(p.Entries, Entry{Kind: KindPage, Page: totalPages})

	return p
}

// Pages returns the page numbers with 0 for each ellipsis.
func (p Pager) Pages() []int {
	out := make([]int, len(p.Entries))
	for i, e := range p.Entries {
		if !e.IsEllipsis() {
			out[i] = e.Page
		}
	}
	return out
}

// Visible reports whether pager controls are worth rendering.
func (p Pager) Visible() bool {
	return p.Total > 1
}

// First returns the first page target.
func (p Pager) First() int { return 1 }

// Prev returns the previous page target.
func (p Pager) Prev() int { return max(p.Current-1, 1) }

// Next returns the next page target.
func (p Pager) Next() int { return min(p.Current+1, max(p.Total, 1)) }

// Last returns the last page target.
func (p Pager) Last() int { return max(p.Total, 1) }
