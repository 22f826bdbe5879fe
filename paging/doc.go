// Package paging models page-number pagination as it travels between a
// paginated JSON endpoint and a table: the page metadata reported by the
// server, the page envelope, and the compact pager view model.
//
// # Response Structure
//
// Standard paginated response:
//
//	{
//	  "data": [...],
//	  "links": {"first": "...", "last": "...", "prev": null, "next": "..."},
//	  "meta": {
//	    "current_page": 2, "last_page": 5, "per_page": 15,
//	    "from": 16, "to": 30, "total": 70, "path": "/users"
//	  }
//	}
//
// # Pager
//
// Build turns the current page and page count into the list of page buttons:
//
//	p := paging.Build(5, 10)
//	// 1 … 4 5 6 … 10, HasPrev: true, HasNext: true
//
// Up to five pages are listed in full. Beyond that the first and last page
// are always present, a three-page window follows the current page and an
// ellipsis marks every gap.
package paging
