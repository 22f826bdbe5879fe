package reconcile

import (
	"context"
	"fmt"
	"maps"
	"sync/atomic"

	"github.com/ncobase/datatable/logging/logger"
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/payload"
	"github.com/ncobase/datatable/query"
)

// Options are the dispatch flags of a visit.
type Options struct {
	PreserveState  bool `json:"preserve_state"`
	PreserveScroll bool `json:"preserve_scroll"`
}

// Visit is one dispatched request.
type Visit struct {
	Seq     uint64          `json:"seq"`
	Address string          `json:"address"`
	Payload payload.Payload `json:"payload"`
	Options Options         `json:"options"`
}

// Navigator performs visits.
type Navigator interface {
	Navigate(ctx context.Context, v Visit) error
}

// Resolver turns a route name and parameters into an address.
type Resolver interface {
	Resolve(routeName string, params map[string]any) string
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(routeName string, params map[string]any) string

// Resolve calls f.
func (f ResolverFunc) Resolve(routeName string, params map[string]any) string {
	return f(routeName, params)
}

// Result is the outcome of Apply.
type Result struct {
	State   query.State
	Payload payload.Payload
	Visit   Visit
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger, logger.StdLogger() by default.
func WithLogger(l *logger.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.log = l
		}
	}
}

// WithNotify registers a callback receiving the merged extra filters after
// every update that changes them.
func WithNotify(fn func(query.Filters)) Option {
	return func(r *Reconciler) {
		r.notify = fn
	}
}

// Reconciler reconciles updates and dispatches the resulting visits.
type Reconciler struct {
	nav      Navigator
	resolver Resolver
	route    string
	params   map[string]any
	log      *logger.Logger
	notify   func(query.Filters)
	seq      atomic.Uint64
}

// New returns a Reconciler dispatching to route through nav.
func New(nav Navigator, resolver Resolver, route string, params map[string]any, opts ...Option) *Reconciler {
	r := &Reconciler{
		nav:      nav,
		resolver: resolver,
		route:    route,
		params:   maps.Clone(params),
		log:      logger.StdLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seq returns the sequence number of the last dispatched visit.
func (r *Reconciler) Seq() uint64 {
	return r.seq.Load()
}

// Apply reconciles update into current and dispatches the request. On a
// navigation error the result still carries the reconciled state.
func (r *Reconciler) Apply(ctx context.Context, current query.State, update query.Update, meta *paging.Meta) (Result, error) {
	next, p, err := Reconcile(current, update, meta)
	if err != nil {
		r.log.Warnf(ctx, "reconcile rejected update: %v", err)
		return Result{State: current}, err
	}

	if r.notify != nil && len(update.Extra) > 0 {
		r.notify(next.Extra.Clone())
	}

	v := Visit{
		Seq:     r.seq.Add(1),
		Address: r.resolver.Resolve(r.route, maps.Clone(r.params)),
		Payload: p,
		Options: Options{PreserveState: true, PreserveScroll: true},
	}
	res := Result{State: next, Payload: p, Visit: v}

	r.log.Debugf(ctx, "visit #%d %s page=%d", v.Seq, v.Address, p.Page)
	if err := r.nav.Navigate(ctx, v); err != nil {
		r.log.Errorf(ctx, "visit #%d %s failed: %v", v.Seq, v.Address, err)
		return res, fmt.Errorf("navigate %s: %w", v.Address, err)
	}
	return res, nil
}
