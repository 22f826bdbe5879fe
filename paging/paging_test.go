package paging

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/ncobase/datatable/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pages(t *testing.T, p Pager) []int {
	t.Helper()
	return p.Pages()
}

func TestBuildSmall(t *testing.T) {
	p := Build(1, 3)
	assert.Equal(t, []int{1, 2, 3}, pages(t, p))
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)

	p = Build(1, 1)
	assert.Equal(t, []int{1}, pages(t, p))
	assert.False(t, p.HasPrev)
	assert.False(t, p.HasNext)
	assert.False(t, p.Visible())

	p = Build(5, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pages(t, p))
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)
}

func TestBuildWindows(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 10, []int{1, 2, 3, 4, 0, 10}},
		{3, 10, []int{1, 2, 3, 4, 0, 10}},
		{4, 10, []int{1, 0, 3, 4, 5, 0, 10}},
		{5, 10, []int{1, 0, 4, 5, 6, 0, 10}},
		{8, 10, []int{1, 0, 7, 8, 9, 10}},
		{10, 10, []int{1, 0, 7, 8, 9, 10}},
		{1, 6, []int{1, 2, 3, 4, 0, 6}},
		{4, 6, []int{1, 0, 3, 4, 5, 6}},
		{1, 7, []int{1, 2, 3, 4, 0, 7}},
	}
	for _, tt := range tests {
		p := Build(tt.current, tt.total)
		assert.Equal(t, tt.want, pages(t, p), "Build(%d, %d)", tt.current, tt.total)
	}
}

func TestBuildEllipsisKinds(t *testing.T) {
	p := Build(5, 10)
	require.Len(t, p.Entries, 7)
	assert.Equal(t, KindEllipsisStart, p.Entries[1].Kind)
	assert.Equal(t, KindEllipsisEnd, p.Entries[5].Kind)
	assert.Equal(t, "ellipsis-start", p.Entries[1].Key())
	assert.Equal(t, "page-5", p.Entries[3].Key())
	assert.Equal(t, "...", p.Entries[5].String())

	seen := map[string]bool{}
	for _, e := range p.Entries {
		assert.False(t, seen[e.Key()], "duplicate key %s", e.Key())
		seen[e.Key()] = true
	}
}

func TestBuildEdges(t *testing.T) {
	p := Build(1, 0)
	assert.Empty(t, p.Entries)
	assert.False(t, p.Visible())

	// out of range current page is clamped for the window only
	p = Build(42, 10)
	assert.Equal(t, []int{1, 0, 7, 8, 9, 10}, pages(t, p))
	assert.False(t, p.HasNext)

	p = Build(-3, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 0, 10}, pages(t, p))
	assert.False(t, p.HasPrev)
}

func TestPagerTargets(t *testing.T) {
	p := Build(5, 10)
	assert.Equal(t, 1, p.First())
	assert.Equal(t, 4, p.Prev())
	assert.Equal(t, 6, p.Next())
	assert.Equal(t, 10, p.Last())

	p = Build(1, 1)
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 1, p.Next())
}

func TestSummary(t *testing.T) {
	m := Meta{CurrentPage: 1, LastPage: 5, Total: 42, PerPage: 10, From: 1, To: 10}
	assert.Equal(t, "Showing 1 to 10 of 42 results", Summary(m))

	assert.Equal(t, NoResults, Summary(Meta{CurrentPage: 1, LastPage: 1}))
	assert.Equal(t, NoResults, Summary(Meta{CurrentPage: 9, LastPage: 5, Total: 42}))
}

func TestMetaValidate(t *testing.T) {
	ok := Meta{CurrentPage: 2, LastPage: 5, Total: 42, PerPage: 10, From: 11, To: 20}
	assert.NoError(t, ok.Validate())
	assert.True(t, ok.InRange())
	assert.True(t, ok.HasPrev())
	assert.True(t, ok.HasNext())

	bad := []Meta{
		{CurrentPage: 0, LastPage: 5},
		{CurrentPage: 6, LastPage: 5},
		{CurrentPage: 1, LastPage: 1, From: 5, To: 2, Total: 10},
		{CurrentPage: 1, LastPage: 1, From: 1, To: 20, Total: 10},
	}
	for _, m := range bad {
		err := m.Validate()
		assert.True(t, errors.Is(err, ecode.ErrInvalidMeta), "%+v", m)
	}
}

func TestNewPage(t *testing.T) {
	base, err := url.Parse("/users?search=jo")
	require.NoError(t, err)

	p := NewPage([]string{"k", "l"}, 12, 2, 10, base)
	assert.Equal(t, Meta{CurrentPage: 2, LastPage: 2, Total: 12, PerPage: 10, From: 11, To: 12, Path: "/users"}, p.Meta)
	require.NotNil(t, p.Links.Prev)
	assert.Equal(t, "/users?page=1&search=jo", *p.Links.Prev)
	assert.Nil(t, p.Links.Next)
	assert.Equal(t, "/users?page=2&search=jo", *p.Links.Last)

	empty := NewPage[string](nil, 0, 1, 10, nil)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 1, empty.Meta.LastPage)
	assert.Equal(t, 0, empty.Meta.From)
	assert.Nil(t, empty.Links.First)
}

func TestPageJSON(t *testing.T) {
	raw := `{"data":[{"id":1}],"links":{"first":"/u?page=1","last":"/u?page=3","prev":null,"next":"/u?page=2"},
	"meta":{"current_page":1,"last_page":3,"total":25,"per_page":10,"from":1,"to":10,"path":"/u"}}`

	var p Page[map[string]int]
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, 3, p.Meta.LastPage)
	assert.Nil(t, p.Links.Prev)
	assert.Equal(t, "/u?page=2", *p.Links.Next)
	assert.Equal(t, 1, p.Data[0]["id"])
}
