package query

import (
	"fmt"
	"time"

	"github.com/ncobase/datatable/ecode"
)

// DateRange is an inclusive date interval; either endpoint may be absent.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// IsZero reports whether both endpoints are absent.
func (r *DateRange) IsZero() bool {
	return r == nil || (r.From == nil && r.To == nil)
}

// Clone returns a deep copy.
func (r *DateRange) Clone() *DateRange {
	if r == nil {
		return nil
	}
	out := &DateRange{}
	if r.From != nil {
		from := *r.From
		out.From = &from
	}
	if r.To != nil {
		to := *r.To
		out.To = &to
	}
	return out
}

// State is the canonical query state driving the next server request.
type State struct {
	Search        string
	SortField     string
	SortDirection SortDirection
	// Page is 0 until a page has been tracked; the server's current page
	// is used meanwhile.
	Page      int
	DateRange *DateRange
	Extra     Filters
}

// Option configures a new State.
type Option func(*State)

// WithSort sets the initial sort.
func WithSort(field string, dir SortDirection) Option {
	return func(s *State) {
		if field == "" || dir == SortNone {
			s.SortField, s.SortDirection = "", SortNone
			return
		}
		s.SortField, s.SortDirection = field, dir
	}
}

// WithFilters sets the initial extra filters.
func WithFilters(f Filters) Option {
	return func(s *State) {
		s.Extra = NewFilters(f)
	}
}

// WithSearch sets the initial search text.
func WithSearch(search string) Option {
	return func(s *State) {
		s.Search = search
	}
}

// NewState returns the mount-time state.
func NewState(opts ...Option) State {
	s := State{Extra: Filters{}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Sorted reports whether a sort is active.
func (s State) Sorted() bool {
	return s.SortDirection != SortNone
}

// Validate checks the sort invariant and the page bound.
func (s State) Validate() error {
	if !s.SortDirection.Valid() {
		return fmt.Errorf("%w: %s", ecode.ErrSortInvariant, ecode.FieldIsInvalid("sort_direction"))
	}
	if (s.SortDirection == SortNone) != (s.SortField == "") {
		return fmt.Errorf("%w: field %q direction %s", ecode.ErrSortInvariant, s.SortField, s.SortDirection)
	}
	if s.Page < 0 {
		return fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.OutOfRange("page"))
	}
	return nil
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.DateRange = s.DateRange.Clone()
	out.Extra = s.Extra.Clone()
	return out
}
