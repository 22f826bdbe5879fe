package datatable

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ncobase/datatable/ctxutil"
	"github.com/ncobase/datatable/debounce"
	"github.com/ncobase/datatable/ecode"
	"github.com/ncobase/datatable/logging/logger"
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/query"
	"github.com/ncobase/datatable/reconcile"
	"github.com/ncobase/datatable/table"
)

// Config is the static configuration of a table.
type Config struct {
	Route                string
	RouteParams          map[string]any
	Searchable           bool
	EnableDateRange      bool
	DefaultSortField     string
	DefaultSortDirection query.SortDirection
	DebounceWait         time.Duration
	Filters              query.Filters
}

// Option configures a Table.
type Option[T any] func(*Table[T])

// WithClock sets the clock of the search debouncer.
func WithClock[T any](c clockwork.Clock) Option[T] {
	return func(t *Table[T]) {
		t.clock = c
	}
}

// WithLogger sets the logger, logger.StdLogger() by default.
func WithLogger[T any](l *logger.Logger) Option[T] {
	return func(t *Table[T]) {
		if l != nil {
			t.log = l
		}
	}
}

// WithRowModel replaces the default table.Manual row model.
func WithRowModel[T any](m table.RowModel[T]) Option[T] {
	return func(t *Table[T]) {
		if m != nil {
			t.rows = m
		}
	}
}

// WithOnFilterChange registers a callback receiving the merged extra
// filters after each filter change.
func WithOnFilterChange[T any](fn func(query.Filters)) Option[T] {
	return func(t *Table[T]) {
		t.onFilterChange = fn
	}
}

// WithPage sets the page rendered before any request was made.
func WithPage[T any](p paging.Page[T]) Option[T] {
	return func(t *Table[T]) {
		t.page = &p
	}
}

// Table is a server-driven data table controller. It is safe for
// concurrent use.
type Table[T any] struct {
	cfg            Config
	cols           table.Columns[T]
	rows           table.RowModel[T]
	log            *logger.Logger
	clock          clockwork.Clock
	onFilterChange func(query.Filters)

	rec    *reconcile.Reconciler
	search *debounce.Debouncer[string]
	store  *query.Store

	// events serializes reconciliation
	events sync.Mutex
	closed atomic.Bool

	mu      sync.Mutex
	text    string
	page    *paging.Page[T]
	applied uint64
}

// New returns a table dispatching through nav to the address resolver
// gives for cfg.Route.
func New[T any](cfg Config, cols table.Columns[T], nav reconcile.Navigator, resolver reconcile.Resolver, opts ...Option[T]) (*Table[T], error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}
	if nav == nil || resolver == nil {
		return nil, errors.New("datatable: navigator and resolver are required")
	}

	t := &Table[T]{
		cfg:  cfg,
		cols: cols,
		rows: table.Manual[T]{},
		log:  logger.StdLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}

	initial := query.NewState(
		query.WithSort(cfg.DefaultSortField, cfg.DefaultSortDirection),
		query.WithFilters(cfg.Filters),
	)
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("datatable: default sort: %w", err)
	}
	t.store = query.NewStore(initial)

	recOpts := []reconcile.Option{reconcile.WithLogger(t.log)}
	if t.onFilterChange != nil {
		recOpts = append(recOpts, reconcile.WithNotify(t.onFilterChange))
	}
	t.rec = reconcile.New(nav, resolver, cfg.Route, cfg.RouteParams, recOpts...)

	t.search = debounce.New(cfg.DebounceWait, t.commitSearch,
		debounce.WithClock[string](t.clock),
		debounce.WithInitial(initial.Search),
	)
	return t, nil
}

// State returns the tracked query state.
func (t *Table[T]) State() query.State {
	return t.store.Current()
}

// Columns returns the column set.
func (t *Table[T]) Columns() table.Columns[T] {
	return t.cols
}

// Load dispatches the current state without changing it.
func (t *Table[T]) Load(ctx context.Context) error {
	return t.Apply(ctx, query.Update{})
}

// Type echoes text immediately and commits it as the search term once
// typing pauses.
func (t *Table[T]) Type(text string) error {
	if !t.cfg.Searchable {
		return fmt.Errorf("%w: search disabled", ecode.ErrInvalidQuery)
	}
	if t.closed.Load() {
		return ecode.ErrClosed
	}
	t.mu.Lock()
	t.text = text
	t.mu.Unlock()
	t.search.Push(text)
	return nil
}

// SubmitSearch commits the typed text without waiting for the pause.
func (t *Table[T]) SubmitSearch() {
	t.search.Flush()
}

func (t *Table[T]) commitSearch(text string) {
	ctx, _ := ctxutil.EnsureTraceID(context.Background())
	err := t.update(ctx, false, func(query.State) query.Update {
		return query.Update{Search: query.Some(text)}
	})
	if err != nil && !errors.Is(err, ecode.ErrClosed) {
		t.log.Warnf(ctx, "search %q: %v", text, err)
	}
}

// ToggleSort cycles the sort of column.
func (t *Table[T]) ToggleSort(ctx context.Context, column string) error {
	col, ok := t.cols.Find(column)
	if !ok || !col.Sortable {
		return fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsInvalid(column))
	}
	return t.update(ctx, true, func(s query.State) query.Update {
		field, dir := query.NextSort(s, column)
		return query.Update{SortBy: query.Some(field), SortDirection: query.Some(dir)}
	})
}

// GoToPage requests page n.
func (t *Table[T]) GoToPage(ctx context.Context, n int) error {
	return t.Apply(ctx, query.Update{Page: query.Some(n)})
}

// SetDateRange replaces the date range; nil clears it.
func (t *Table[T]) SetDateRange(ctx context.Context, r *query.DateRange) error {
	if !t.cfg.EnableDateRange {
		return fmt.Errorf("%w: date range disabled", ecode.ErrInvalidQuery)
	}
	return t.Apply(ctx, query.Update{DateRange: query.Some(r)})
}

// SetFilters applies a filter component's values. Reserved keys update
// their dedicated fields, every other key is merged into the extras.
func (t *Table[T]) SetFilters(ctx context.Context, m map[string]any) error {
	u, err := query.ParseUpdate(m)
	if err != nil {
		return err
	}
	if u.DateRange.Set && !t.cfg.EnableDateRange {
		return fmt.Errorf("%w: date range disabled", ecode.ErrInvalidQuery)
	}
	return t.Apply(ctx, u)
}

// Apply reconciles u and dispatches the resulting request.
func (t *Table[T]) Apply(ctx context.Context, u query.Update) error {
	return t.update(ctx, true, func(query.State) query.Update { return u })
}

// update reconciles the update build returns. With echo set, a search
// change made outside typing replaces the typed text.
func (t *Table[T]) update(ctx context.Context, echo bool, build func(query.State) query.Update) error {
	t.events.Lock()
	defer t.events.Unlock()
	if t.closed.Load() {
		return ecode.ErrClosed
	}

	current := t.store.Current()
	res, err := t.rec.Apply(ctx, current, build(current), t.meta())
	t.store.Replace(res.State)
	if s := res.State.Search; echo && s != current.Search {
		t.search.Reset(s)
		t.mu.Lock()
		t.text = s
		t.mu.Unlock()
	}
	return err
}

func (t *Table[T]) meta() *paging.Meta {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.page == nil {
		return nil
	}
	m := t.page.Meta
	return &m
}

// Receive applies the response to visit seq. Responses not newer than the
// last applied one are dropped; it reports whether p was applied.
func (t *Table[T]) Receive(seq uint64, p paging.Page[T]) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq <= t.applied {
		t.log.Debugf(context.Background(), "dropped stale response #%d, applied #%d", seq, t.applied)
		return false
	}
	if err := p.Meta.Validate(); err != nil {
		t.log.Warnf(context.Background(), "response #%d: %v", seq, err)
	}
	t.applied = seq
	t.page = &p
	return true
}

// Applied returns the sequence number of the last applied response.
func (t *Table[T]) Applied() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applied
}

// Close stops the search debouncer. Events after Close fail with
// ecode.ErrClosed.
func (t *Table[T]) Close() {
	// before taking events: a running commit needs it
	t.search.Stop()

	t.events.Lock()
	defer t.events.Unlock()
	t.closed.Store(true)
}
