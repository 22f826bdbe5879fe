// Package reconcile merges sparse filter updates into the tracked query
// state and dispatches the resulting request.
//
// Reconcile is pure: present fields override, absent fields inherit, and
// any change other than the page sends the user back to page 1. The
// Reconciler adds the side effects: resolving the endpoint address,
// numbering the request and handing it to a Navigator.
//
//	r := reconcile.New(nav, resolver, "users.index", nil)
//	res, err := r.Apply(ctx, current, query.Update{Search: query.Some("jo")}, meta)
//
// Every dispatched visit preserves client state and scroll position.
package reconcile
