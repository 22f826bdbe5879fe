package router

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/ncobase/datatable/logging/logger"
)

// UnresolvedPrefix prefixes the placeholder address of unknown routes.
const UnresolvedPrefix = "/unresolved/"

// matches {name}, {name:pattern} and :name segments
var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)(?::[^}]*)?\}|:([A-Za-z0-9_]+)`)

// Registry maps route names to path patterns.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]string
	log    *logger.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]string), log: logger.StdLogger()}
}

// Add records pattern under name, replacing any previous pattern.
func (r *Registry) Add(name, pattern string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[name] = pattern
}

// Pattern returns the pattern of name.
func (r *Registry) Pattern(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.routes[name]
	return p, ok
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.routes))
}

// Resolve fills the placeholders of name's pattern from params and appends
// the other params as a query string. Unknown names resolve to
// UnresolvedPrefix + name.
func (r *Registry) Resolve(name string, params map[string]any) string {
	pattern, ok := r.Pattern(name)
	if !ok {
		r.log.Warnf(context.Background(), "route %q is not registered", name)
		return UnresolvedPrefix + name
	}

	rest := maps.Clone(params)
	path := placeholder.ReplaceAllStringFunc(pattern, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		key := sub[1]
		if key == "" {
			key = sub[2]
		}
		v, ok := rest[key]
		if !ok || v == nil {
			r.log.Warnf(context.Background(), "route %q: missing parameter %q", name, key)
			return m
		}
		delete(rest, key)
		return url.PathEscape(fmt.Sprint(v))
	})
	return withQuery(path, rest)
}

// MuxResolver resolves names registered on a gorilla/mux router.
type MuxResolver struct {
	Router *mux.Router
	Log    *logger.Logger
}

// Resolve builds the URL of the named mux route.
func (m *MuxResolver) Resolve(name string, params map[string]any) string {
	log := m.Log
	if log == nil {
		log = logger.StdLogger()
	}

	route := m.Router.Get(name)
	if route == nil {
		log.Warnf(context.Background(), "route %q is not registered", name)
		return UnresolvedPrefix + name
	}

	rest := maps.Clone(params)
	vars, err := route.GetVarNames()
	if err != nil {
		log.Warnf(context.Background(), "route %q: %v", name, err)
		return UnresolvedPrefix + name
	}
	pairs := make([]string, 0, len(vars)*2)
	for _, v := range vars {
		if x, ok := rest[v]; ok && x != nil {
			pairs = append(pairs, v, fmt.Sprint(x))
			delete(rest, v)
		}
	}
	u, err := route.URLPath(pairs...)
	if err != nil {
		log.Warnf(context.Background(), "route %q: %v", name, err)
		return UnresolvedPrefix + name
	}
	return withQuery(u.EscapedPath(), rest)
}

func withQuery(path string, params map[string]any) string {
	q := url.Values{}
	for k, v := range params {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			for i := range rv.Len() {
				q.Add(k, fmt.Sprint(rv.Index(i).Interface()))
			}
			continue
		}
		q.Set(k, fmt.Sprint(v))
	}
	if len(q) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}
