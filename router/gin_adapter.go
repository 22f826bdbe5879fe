package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/datatable/ctxutil"
)

type GinRouter struct {
	engine *gin.Engine
	group  *gin.RouterGroup
	routes *Registry
}

func NewGinAdapter(engine *gin.Engine) Interface {
	return &GinRouter{engine: engine, group: &engine.RouterGroup, routes: NewRegistry()}
}

func (r *GinRouter) Group(path string, middleware ...func(http.Handler) http.Handler) Interface {
	handlers := make([]gin.HandlerFunc, len(middleware))
	for i, m := range middleware {
		handlers[i] = func(c *gin.Context) {
			next := false
			m(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next = true
				c.Request = req
				c.Next()
			})).ServeHTTP(c.Writer, c.Request)
			if !next {
				c.Abort()
			}
		}
	}
	return &GinRouter{engine: r.engine, group: r.group.Group(path, handlers...), routes: r.routes}
}

func (r *GinRouter) Handle(method, path string, handler http.HandlerFunc) {
	r.group.Handle(method, path, wrap(handler))
}

func (r *GinRouter) Named(name, method, path string, handler http.HandlerFunc) {
	r.Handle(method, path, handler)
	r.routes.Add(name, joinPath(r.group.BasePath(), path))
}

func (r *GinRouter) GET(path string, handler http.HandlerFunc) {
	r.Handle(http.MethodGet, path, handler)
}

func (r *GinRouter) Routes() *Registry {
	return r.routes
}

func (r *GinRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

// wrap exposes the gin context and a trace id through the request context.
func wrap(h http.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.WithGinContext(c.Request.Context(), c)
		if id := c.GetHeader("X-Request-Id"); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, _ = ctxutil.EnsureTraceID(ctx)
		h(c.Writer, c.Request.WithContext(ctx))
	}
}
