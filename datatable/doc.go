// Package datatable composes the query state, the debounced search, the
// reconciler and the pager into one server-driven table controller.
//
// A Table receives user events (typing, header clicks, page changes,
// filter changes), reconciles them into the next request and dispatches it
// through a reconcile.Navigator. Responses come back through Receive, which
// drops any response older than the newest one already applied, so a slow
// request can never overwrite a newer result.
//
//	nav := navigation.NewHTTP[User]("http://localhost:8080")
//	tbl, err := datatable.New(datatable.Config{
//	    Route:      "users.index",
//	    Searchable: true,
//	}, cols, nav, registry)
//	nav.SetSink(tbl)
//	defer tbl.Close()
//
//	tbl.Type("jo")                         // committed after 300ms of quiet
//	_ = tbl.ToggleSort(ctx, "name")        // page back to 1
//	view := tbl.View()
package datatable
