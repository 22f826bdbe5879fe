package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ncobase/datatable/ctxutil"
)

type MuxRouter struct {
	router *mux.Router
	group  *mux.Router
	prefix string
	routes *Registry
}

func NewMuxAdapter(router *mux.Router) Interface {
	return &MuxRouter{router: router, group: router, routes: NewRegistry()}
}

func (r *MuxRouter) Group(path string, middleware ...func(http.Handler) http.Handler) Interface {
	group := r.group.PathPrefix(path).Subrouter()
	for _, m := range middleware {
		group.Use(m)
	}
	return &MuxRouter{router: r.router, group: group, prefix: joinPath(r.prefix, path), routes: r.routes}
}

func (r *MuxRouter) Handle(method, path string, handler http.HandlerFunc) {
	r.group.HandleFunc(path, traced(handler)).Methods(method)
}

func (r *MuxRouter) Named(name, method, path string, handler http.HandlerFunc) {
	r.group.HandleFunc(path, traced(handler)).Methods(method).Name(name)
	r.routes.Add(name, joinPath(r.prefix, path))
}

func (r *MuxRouter) GET(path string, handler http.HandlerFunc) {
	r.Handle(http.MethodGet, path, handler)
}

func (r *MuxRouter) Routes() *Registry {
	return r.routes
}

func (r *MuxRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Resolver resolves names through the mux router itself.
func (r *MuxRouter) Resolver() *MuxResolver {
	return &MuxResolver{Router: r.router}
}

func traced(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		if id := req.Header.Get("X-Request-Id"); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, _ = ctxutil.EnsureTraceID(ctx)
		h(w, req.WithContext(ctx))
	}
}
