package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ncobase/datatable/ecode"
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Created time.Time `json:"created"`
}

func dataset(n int) *Memory[user] {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	items := make([]user, n)
	for i := range items {
		status := "active"
		if i%3 == 0 {
			status = "inactive"
		}
		items[i] = user{ID: i + 1, Name: fmt.Sprintf("user%02d", i+1), Status: status, Created: start.AddDate(0, 0, i)}
	}
	m := NewMemory(items)
	m.Search = func(u user, term string) bool { return strings.Contains(u.Name, term) }
	m.Sorts = map[string]func(user) any{
		"id":   func(u user) any { return u.ID },
		"name": func(u user) any { return u.Name },
	}
	m.Date = func(u user) time.Time { return u.Created }
	m.Fields = map[string]func(user) any{"status": func(u user) any { return u.Status }}
	return m
}

func parse(t *testing.T, raw string) payload.Request {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	r, err := payload.Parse(v)
	require.NoError(t, err)
	return r
}

func TestQueryPaging(t *testing.T) {
	m := dataset(25)
	p, err := m.Query(parse(t, "page=3"), &url.URL{Path: "/users"})
	require.NoError(t, err)

	assert.Equal(t, paging.Meta{CurrentPage: 3, LastPage: 3, Total: 25, PerPage: 10, From: 21, To: 25, Path: "/users"}, p.Meta)
	assert.Len(t, p.Data, 5)
	assert.Nil(t, p.Links.Next)
	require.NotNil(t, p.Links.Prev)
	assert.Contains(t, *p.Links.Prev, "page=2")
}

func TestQueryFilters(t *testing.T) {
	m := dataset(25)

	p, err := m.Query(parse(t, "search=user1&sort_by=id&sort_direction=desc"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, p.Data)
	assert.Equal(t, 19, p.Data[0].ID)
	assert.Equal(t, 10, p.Meta.Total)

	p, err = m.Query(parse(t, "status=inactive&per_page=100"), nil)
	require.NoError(t, err)
	assert.Equal(t, 9, p.Meta.Total)

	// unknown extras are ignored
	p, err = m.Query(parse(t, "colour=red"), nil)
	require.NoError(t, err)
	assert.Equal(t, 25, p.Meta.Total)
}

func TestQueryDateRange(t *testing.T) {
	m := dataset(25)

	p, err := m.Query(parse(t, "start_date=2024-01-05&end_date=2024-01-07"), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Meta.Total)

	// open ended
	p, err = m.Query(parse(t, "start_date=2024-01-20"), nil)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Meta.Total)
}

func TestQueryOutOfRange(t *testing.T) {
	p, err := dataset(5).Query(parse(t, "page=9"), nil)
	require.NoError(t, err)
	assert.Empty(t, p.Data)
	assert.False(t, p.Meta.InRange())
	assert.Equal(t, paging.NoResults, paging.Summary(p.Meta))
}

func TestQueryHugePage(t *testing.T) {
	p, err := NewMemory([]int{1, 2, 3}).Query(payload.Request{Page: 1 << 60}, nil)
	require.NoError(t, err)
	assert.Empty(t, p.Data)
	assert.Equal(t, 1<<60, p.Meta.CurrentPage)
	assert.Equal(t, paging.NoResults, paging.Summary(p.Meta))

	srv := httptest.NewServer(Handler(dataset(5)))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/users?page=1152921504606846976")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestQueryUnknownSort(t *testing.T) {
	_, err := dataset(5).Query(parse(t, "sort_by=password"), nil)
	assert.True(t, errors.Is(err, ecode.ErrInvalidQuery))
}

func TestHandler(t *testing.T) {
	srv := httptest.NewServer(Handler(dataset(25)))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/users?page=2&sort_by=name")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var p paging.Page[user]
	require.NoError(t, json.NewDecoder(res.Body).Decode(&p))
	assert.Equal(t, 2, p.Meta.CurrentPage)
	assert.Equal(t, "user11", p.Data[0].Name)
	assert.Equal(t, "/users", p.Meta.Path)

	bad, err := http.Get(srv.URL + "/users?page=zero")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(bad.Body).Decode(&body))
	assert.Equal(t, float64(ecode.InvalidQuery), body["code"])
}
