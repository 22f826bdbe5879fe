package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ncobase/datatable/ecode"
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/payload"
	"github.com/ncobase/datatable/query"
	"github.com/ncobase/datatable/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int `json:"id"`
}

type sink struct {
	mu    sync.Mutex
	seqs  []uint64
	pages []paging.Page[item]
}

func (s *sink) Receive(seq uint64, p paging.Page[item]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs = append(s.seqs, seq)
	s.pages = append(s.pages, p)
	return true
}

func visit(t *testing.T, seq uint64, address string, st query.State) reconcile.Visit {
	t.Helper()
	p, err := payload.Serialize(st)
	require.NoError(t, err)
	return reconcile.Visit{Seq: seq, Address: address, Payload: p}
}

func TestHTTPNavigate(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_ = json.NewEncoder(w).Encode(paging.Page[item]{
			Data: []item{{ID: 7}},
			Meta: paging.Meta{CurrentPage: 2, LastPage: 3, Total: 21, PerPage: 10, From: 11, To: 11},
		})
	}))
	defer srv.Close()

	h, err := NewHTTP[item](srv.URL, WithHeader("X-Tenant", "acme"))
	require.NoError(t, err)
	s := &sink{}
	h.SetSink(s)

	st := query.NewState(query.WithSort("name", query.SortAsc), query.WithFilters(query.Filters{"status": "active"}))
	st.Page = 2
	require.NoError(t, h.Navigate(context.Background(), visit(t, 5, "/users?team=1", st)))

	require.NotNil(t, got)
	assert.Equal(t, "/users", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "1", q.Get("team"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "name", q.Get("sort_by"))
	assert.Equal(t, "asc", q.Get("sort_direction"))
	assert.Equal(t, "active", q.Get("status"))
	assert.False(t, q.Has("start_date"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "acme", got.Header.Get("X-Tenant"))
	assert.Len(t, got.Header.Get(RequestIDHeader), 36)

	require.Equal(t, []uint64{5}, s.seqs)
	assert.Equal(t, 7, s.pages[0].Data[0].ID)
	assert.Equal(t, 2, s.pages[0].Meta.CurrentPage)
}

func TestHTTPStatusError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	h, err := NewHTTP[item](srv.URL)
	require.NoError(t, err)
	s := &sink{}
	h.SetSink(s)

	err = h.Navigate(context.Background(), visit(t, 1, "/users", query.NewState()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ecode.ErrNavigation))
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(1), calls.Load(), "no automatic retries")
	assert.Empty(t, s.seqs)
}

func TestHTTPBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	h, err := NewHTTP[item](srv.URL, WithBreaker(DefaultBreaker("users")))
	require.NoError(t, err)

	for i := range 5 {
		err = h.Navigate(context.Background(), visit(t, uint64(i+1), "/users", query.NewState()))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ecode.ErrNavigation))
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	h, err := NewHTTP[item](srv.URL)
	require.NoError(t, err)
	err = h.Navigate(context.Background(), visit(t, 1, "/users", query.NewState()))
	assert.True(t, errors.Is(err, ecode.ErrNavigation))
}

func TestAsync(t *testing.T) {
	var mu sync.Mutex
	var seqs []uint64
	next := Func(func(_ context.Context, v reconcile.Visit) error {
		mu.Lock()
		defer mu.Unlock()
		seqs = append(seqs, v.Seq)
		return errors.New("ignored")
	})

	a := &Async{Next: next}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := range 3 {
		require.NoError(t, a.Navigate(ctx, reconcile.Visit{Seq: uint64(i + 1)}))
	}
	a.Wait()
	assert.ElementsMatch(t, []uint64{1, 2, 3}, seqs)
}
