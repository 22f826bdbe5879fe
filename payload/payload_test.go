package payload

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/ncobase/datatable/ecode"
	q "github.com/ncobase/datatable/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(q.DateLayout, s)
	require.NoError(t, err)
	return &d
}

func TestSerializeOpenRange(t *testing.T) {
	s := q.NewState()
	s.Page = 1
	s.DateRange = &q.DateRange{From: date(t, "2024-01-05")}

	p, err := Serialize(s)
	require.NoError(t, err)
	require.NotNil(t, p.StartDate)
	assert.Equal(t, "2024-01-05", *p.StartDate)
	assert.Nil(t, p.EndDate)
	assert.True(t, p.RangeSet)

	m := p.Map()
	assert.Equal(t, "2024-01-05", m[KeyStartDate])
	v, ok := m[KeyEndDate]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestSerializeNoRange(t *testing.T) {
	p, err := Serialize(q.NewState())
	require.NoError(t, err)
	assert.False(t, p.RangeSet)
	assert.Nil(t, p.StartDate)
	assert.Equal(t, 1, p.Page)
}

func TestSerializeSort(t *testing.T) {
	s := q.NewState(q.WithSort("name", q.SortDesc))
	p, err := Serialize(s)
	require.NoError(t, err)
	assert.Equal(t, "name", *p.SortBy)
	assert.Equal(t, q.SortDesc, *p.SortDirection)

	p, err = Serialize(q.NewState(q.WithSort("name", q.SortNone)))
	require.NoError(t, err)
	assert.Nil(t, p.SortBy)
	assert.Nil(t, p.SortDirection)
	assert.Nil(t, p.Map()[KeySortBy])
}

func TestSerializeRefusesBrokenSort(t *testing.T) {
	s := q.NewState()
	s.SortField = "name"

	_, err := Serialize(s)
	assert.True(t, errors.Is(err, ecode.ErrSortInvariant))

	s = q.NewState()
	s.SortDirection = q.SortAsc
	_, err = Serialize(s)
	assert.True(t, errors.Is(err, ecode.ErrSortInvariant))
}

func TestSerializeExtras(t *testing.T) {
	s := q.NewState(q.WithFilters(q.Filters{"status": "active", "ids": []int{1, 2}}))
	s.Extra["empty"] = nil

	p, err := Serialize(s)
	require.NoError(t, err)
	assert.Equal(t, "active", p.Extra["status"])
	assert.Equal(t, []int{1, 2}, p.Extra["ids"])

	v, err := p.Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, v["ids"])
	assert.Equal(t, "active", v.Get("status"))
	assert.NotContains(t, v, "empty")
	assert.NotContains(t, v, KeySortBy)
	assert.NotContains(t, v, KeyStartDate)
	assert.Equal(t, "1", v.Get(KeyPage))
}

func TestEncode(t *testing.T) {
	s := q.NewState(q.WithSort("created_at", q.SortAsc), q.WithSearch("jo"))
	s.Page = 3
	s.DateRange = &q.DateRange{From: date(t, "2024-01-05"), To: date(t, "2024-02-01")}

	p, err := Serialize(s)
	require.NoError(t, err)
	got, err := p.Encode()
	require.NoError(t, err)
	assert.Equal(t, "end_date=2024-02-01&page=3&search=jo&sort_by=created_at&sort_direction=asc&start_date=2024-01-05", got)
}

func TestMarshalJSON(t *testing.T) {
	p, err := Serialize(q.NewState(q.WithFilters(q.Filters{"role": "admin"})))
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"search":"","sort_by":null,"sort_direction":null,"page":1,"start_date":null,"end_date":null,"role":"admin"}`, string(b))
}

func TestParse(t *testing.T) {
	v := url.Values{
		"search":         {"jo"},
		"sort_by":        {"name"},
		"sort_direction": {"DESC"},
		"page":           {"2"},
		"start_date":     {"2024-01-05"},
		"status":         {"active"},
		"ids":            {"1", "2"},
	}
	r, err := Parse(v)
	require.NoError(t, err)
	assert.Equal(t, "jo", r.Search)
	assert.Equal(t, q.SortDesc, r.Direction())
	assert.Equal(t, 2, r.Page)
	assert.Equal(t, []string{"1", "2"}, r.Extra["ids"])

	dr := r.DateRange(nil)
	require.NotNil(t, dr)
	assert.Equal(t, "2024-01-05", dr.From.Format(q.DateLayout))
	assert.Nil(t, dr.To)

	p := r.Payload()
	assert.Equal(t, "active", p.Extra["status"])
	assert.True(t, p.RangeSet)
}

func TestParseDefaults(t *testing.T) {
	r, err := Parse(url.Values{"sort_by": {"name"}})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, q.SortAsc, r.Direction())
	assert.Nil(t, r.DateRange(nil))
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		v     url.Values
		field string
	}{
		{"page not a number", url.Values{"page": {"x"}}, "page"},
		{"page zero", url.Values{"page": {"0"}}, "page"},
		{"bad direction", url.Values{"sort_by": {"a"}, "sort_direction": {"up"}}, "sort_direction"},
		{"direction without field", url.Values{"sort_direction": {"asc"}}, "sort_by"},
		{"bad date", url.Values{"start_date": {"05/01/2024"}}, "start_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ecode.ErrInvalidQuery))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	s := q.NewState(q.WithSort("name", q.SortAsc), q.WithFilters(q.Filters{"status": "active"}))
	s.Page = 4
	p, err := Serialize(s)
	require.NoError(t, err)

	v, err := p.Values()
	require.NoError(t, err)
	r, err := Parse(v)
	require.NoError(t, err)
	assert.True(t, p.Equal(r.Payload()))
}
