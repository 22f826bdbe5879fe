package query

import (
	"errors"
	"testing"
	"time"

	"github.com/ncobase/datatable/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSort_SameColumnCycles(t *testing.T) {
	s := NewState()

	field, dir := NextSort(s, "name")
	assert.Equal(t, "name", field)
	assert.Equal(t, SortAsc, dir)

	s.SortField, s.SortDirection = field, dir
	field, dir = NextSort(s, "name")
	assert.Equal(t, "name", field)
	assert.Equal(t, SortDesc, dir)

	s.SortField, s.SortDirection = field, dir
	field, dir = NextSort(s, "name")
	assert.Equal(t, "", field)
	assert.Equal(t, SortNone, dir)
}

func TestNextSort_OtherColumnStartsAscending(t *testing.T) {
	s := NewState(WithSort("name", SortDesc))

	field, dir := NextSort(s, "email")
	assert.Equal(t, "email", field)
	assert.Equal(t, SortAsc, dir)
}

func TestParseSortDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    SortDirection
		wantErr bool
	}{
		{"asc", SortAsc, false},
		{"DESC", SortDesc, false},
		{"", SortNone, false},
		{"none", SortNone, false},
		{"sideways", SortNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortDirection(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ecode.ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilters_ReservedKeysNeverStored(t *testing.T) {
	f := NewFilters(map[string]any{
		"status":     "active",
		"search":     "x",
		"page":       4,
		"date_range": nil,
		"start_date": "2024-01-01",
		"end_date":   "2024-01-31",
	})
	assert.Equal(t, []string{"status"}, f.Keys())
	assert.False(t, f.Set("start_date", "2024-01-01"))
	assert.False(t, f.Set("sort_by", "name"))
	assert.True(t, f.Set("role", "admin"))
}

func TestFilters_MergeIsAdditive(t *testing.T) {
	base := NewFilters(map[string]any{"status": "active", "role": "admin"})
	merged := base.Merge(Filters{"status": "inactive", "team": 7, "page": 9})

	assert.Equal(t, Filters{"status": "inactive", "role": "admin", "team": 7}, merged)
	assert.Equal(t, "active", base["status"], "merge must not mutate the receiver")
}

func TestState_Validate(t *testing.T) {
	require.NoError(t, NewState().Validate())
	require.NoError(t, NewState(WithSort("name", SortAsc)).Validate())

	err := State{SortField: "name"}.Validate()
	assert.True(t, errors.Is(err, ecode.ErrSortInvariant))

	err = State{SortDirection: SortAsc}.Validate()
	assert.True(t, errors.Is(err, ecode.ErrSortInvariant))
}

func TestWithSort_NoneClearsField(t *testing.T) {
	s := NewState(WithSort("name", SortNone))
	assert.Equal(t, "", s.SortField)
	assert.False(t, s.Sorted())
}

func TestParseUpdate(t *testing.T) {
	u, err := ParseUpdate(map[string]any{
		"search":         "bob",
		"sort_by":        "email",
		"sort_direction": "desc",
		"page":           "3",
		"date_range":     map[string]any{"from": "2024-01-05"},
		"status":         "active",
		"unknown_key":    []string{"a", "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, Some("bob"), u.Search)
	assert.Equal(t, Some("email"), u.SortBy)
	assert.Equal(t, Some(SortDesc), u.SortDirection)
	assert.Equal(t, Some(3), u.Page)
	require.True(t, u.DateRange.Set)
	require.NotNil(t, u.DateRange.Value.From)
	assert.Equal(t, "2024-01-05", u.DateRange.Value.From.Format(DateLayout))
	assert.Nil(t, u.DateRange.Value.To)
	assert.Equal(t, []string{"status", "unknown_key"}, u.Extra.Keys())
}

func TestParseUpdate_NullDateRangeClears(t *testing.T) {
	u, err := ParseUpdate(map[string]any{"date_range": nil})
	require.NoError(t, err)
	assert.True(t, u.DateRange.Set)
	assert.Nil(t, u.DateRange.Value)
	assert.Nil(t, u.Extra)
}

func TestParseUpdate_Errors(t *testing.T) {
	_, err := ParseUpdate(map[string]any{"page": 0})
	assert.ErrorIs(t, err, ecode.ErrInvalidQuery)

	_, err = ParseUpdate(map[string]any{"date_range": map[string]any{"from": "05/01/2024"}})
	assert.ErrorIs(t, err, ecode.ErrInvalidDate)

	_, err = ParseUpdate(map[string]any{"search": 42})
	assert.ErrorIs(t, err, ecode.ErrInvalidQuery)

	_, err = ParseUpdate(map[string]any{"page": 2.7})
	assert.ErrorIs(t, err, ecode.ErrInvalidQuery)

	_, err = ParseUpdate(map[string]any{"start_date": "2024-01-01"})
	assert.ErrorIs(t, err, ecode.ErrInvalidQuery)
}

func TestParseUpdate_IntegralFloatPage(t *testing.T) {
	u, err := ParseUpdate(map[string]any{"page": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, Some(3), u.Page)
}

func TestUpdate_Classification(t *testing.T) {
	assert.True(t, Update{}.IsEmpty())
	assert.True(t, Update{Page: Some(2)}.IsPageOnly())
	assert.False(t, Update{Page: Some(2), Search: Some("a")}.IsPageOnly())
	assert.True(t, Update{Extra: Filters{"status": "x"}}.ResetsPage())
}

func TestStore_ReplaceOnlyMutation(t *testing.T) {
	from := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	store := NewStore(NewState(WithFilters(Filters{"status": "active"})))

	cur := store.Current()
	cur.Extra["status"] = "changed"
	cur.DateRange = &DateRange{From: &from}
	assert.Equal(t, "active", store.Current().Extra["status"], "reads must not alias the held state")
	assert.Nil(t, store.Current().DateRange)

	store.Replace(cur)
	assert.Equal(t, "changed", store.Current().Extra["status"])
	require.NotNil(t, store.Current().DateRange)

	*cur.DateRange.From = from.AddDate(1, 0, 0)
	assert.Equal(t, from, *store.Current().DateRange.From)
}
