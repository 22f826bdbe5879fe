// Package query holds the canonical query state of a server-paginated table:
// search text, sort field and direction, page number, date range and the
// open-ended set of pass-through extra filters.
//
// # State
//
// A State is only ever replaced wholesale. The Store keeps exactly one of them
// and exposes Current for reads and Replace for the reconciler's output:
//
//	store := query.NewStore(query.NewState(query.WithSort("name", query.SortAsc)))
//	next, _, err := reconcile.Reconcile(store.Current(), update, meta)
//	if err == nil {
//	    store.Replace(next)
//	}
//
// # Updates
//
// An Update is a sparse change. Every field is an Opt so that "absent" and
// "set to the zero value" stay distinguishable:
//
//	u := query.Update{Search: query.Some("alice")}
//	u = query.Update{DateRange: query.Some[*query.DateRange](nil)} // clears the range
//
// Maps coming from filter components go through ParseUpdate, which lifts the
// reserved keys (search, sort_by, sort_direction, page, date_range) into their
// dedicated fields and keeps everything else as pass-through extras.
//
// # Sorting
//
// NextSort implements the header click cycle: the same column goes
// none → asc → desc → none, a different column always starts at asc.
package query
