// Package router registers endpoints on gin or gorilla/mux behind one
// interface and resolves route names back into addresses.
//
// Routes registered through Named are recorded in a Registry, which is a
// reconcile.Resolver:
//
//	r := router.NewGinAdapter(gin.New())
//	r.Group("/api").Named("users.index", http.MethodGet, "/teams/:team/users", h)
//	addr := r.Routes().Resolve("users.index", map[string]any{"team": 1, "tab": "all"})
//	// /api/teams/1/users?tab=all
package router

import "net/http"

// Interface abstracts the routing mechanism.
type Interface interface {
	http.Handler
	Group(path string, middleware ...func(http.Handler) http.Handler) Interface
	Handle(method, path string, handler http.HandlerFunc)
	// Named registers a route and records its full path under name.
	Named(name, method, path string, handler http.HandlerFunc)
	GET(path string, handler http.HandlerFunc)
	Routes() *Registry
}
