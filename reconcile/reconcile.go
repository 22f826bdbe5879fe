package reconcile

import (
	"fmt"

	"github.com/ncobase/datatable/ecode"
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/payload"
	"github.com/ncobase/datatable/query"
)

// Reconcile computes the next state and its payload from current, update
// and the server's last page metadata (nil when none was received).
func Reconcile(current query.State, update query.Update, meta *paging.Meta) (query.State, payload.Payload, error) {
	if p, ok := update.Page.Get(); ok && p < 1 {
		return current, payload.Payload{}, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.OutOfRange("page"))
	}

	next := current.Clone()

	if s, ok := update.Search.Get(); ok {
		next.Search = s
	}

	if update.SortBy.Set || update.SortDirection.Set {
		next.SortField, next.SortDirection = nextSort(current, update)
	}

	if r, ok := update.DateRange.Get(); ok {
		next.DateRange = r.Clone()
	}

	if len(update.Extra) > 0 {
		next.Extra = next.Extra.Merge(update.Extra)
	} else if next.Extra == nil {
		next.Extra = query.Filters{}
	}

	next.Page = nextPage(current, update, meta)

	if err := next.Validate(); err != nil {
		return current, payload.Payload{}, err
	}
	p, err := payload.Serialize(next)
	if err != nil {
		return current, payload.Payload{}, err
	}
	return next, p, nil
}

func nextSort(current query.State, update query.Update) (string, query.SortDirection) {
	field := update.SortBy.Or(current.SortField)
	dir, ok := update.SortDirection.Get()
	if !ok {
		dir = current.SortDirection
		// a field given alone starts ascending unless it is already sorted
		if update.SortBy.Set && (field != current.SortField || dir == query.SortNone) {
			dir = query.SortAsc
		}
	}
	if field == "" || dir == query.SortNone {
		return "", query.SortNone
	}
	return field, dir
}

func nextPage(current query.State, update query.Update, meta *paging.Meta) int {
	switch {
	case update.ResetsPage():
		return 1
	case update.Page.Set:
		return update.Page.Value
	case meta != nil && meta.CurrentPage > 0:
		// the last response is authoritative over the page last requested
		return meta.CurrentPage
	case current.Page > 0:
		return current.Page
	}
	return 1
}
