package payload

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"time"

	"github.com/google/go-querystring/query"
	q "github.com/ncobase/datatable/query"
)

// Wire keys of the dedicated fields.
const (
	KeySearch        = q.KeySearch
	KeySortBy        = q.KeySortBy
	KeySortDirection = q.KeySortDirection
	KeyPage          = q.KeyPage
	KeyStartDate     = q.KeyStartDate
	KeyEndDate       = q.KeyEndDate
)

// Payload is the flat request payload of one server request.
type Payload struct {
	Search        string           `url:"search"`
	SortBy        *string          `url:"sort_by,omitempty"`
	SortDirection *q.SortDirection `url:"sort_direction,omitempty"`
	Page          int              `url:"page"`
	StartDate     *string          `url:"start_date,omitempty"`
	EndDate       *string          `url:"end_date,omitempty"`
	Extra         map[string]any   `url:"-"`
	// RangeSet is true when a date range was tracked, even with both
	// endpoints absent.
	RangeSet bool `url:"-"`
}

// Serialize converts s into its payload. A state whose sort field and
// direction disagree is refused.
func Serialize(s q.State) (Payload, error) {
	if err := s.Validate(); err != nil {
		return Payload{}, fmt.Errorf("serialize: %w", err)
	}

	p := Payload{
		Search: s.Search,
		Page:   max(s.Page, 1),
		Extra:  make(map[string]any, len(s.Extra)),
	}

	if s.SortDirection != q.SortNone {
		field, dir := s.SortField, s.SortDirection
		p.SortBy = &field
		p.SortDirection = &dir
	}

	if s.DateRange != nil {
		p.RangeSet = true
		p.StartDate = formatDate(s.DateRange.From)
		p.EndDate = formatDate(s.DateRange.To)
	}

	for k, v := range s.Extra {
		if q.IsReserved(k) {
			continue
		}
		p.Extra[k] = v
	}

	return p, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(q.DateLayout)
	return &s
}

// Map returns the flat mapping sent to the server. The six dedicated keys
// are always present, nil when absent.
func (p Payload) Map() map[string]any {
	m := make(map[string]any, len(p.Extra)+6)
	maps.Copy(m, p.Extra)

	m[KeySearch] = p.Search
	m[KeyPage] = p.Page
	m[KeySortBy] = nil
	m[KeySortDirection] = nil
	m[KeyStartDate] = nil
	m[KeyEndDate] = nil
	if p.SortBy != nil {
		m[KeySortBy] = *p.SortBy
	}
	if p.SortDirection != nil {
		m[KeySortDirection] = string(*p.SortDirection)
	}
	if p.StartDate != nil {
		m[KeyStartDate] = *p.StartDate
	}
	if p.EndDate != nil {
		m[KeyEndDate] = *p.EndDate
	}
	return m
}

// MarshalJSON encodes the flat mapping.
func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

// Values returns the query string form. Absent values are omitted and
// slice extras repeat their key.
func (p Payload) Values() (url.Values, error) {
	v, err := query.Values(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	for k, x := range p.Extra {
		if x == nil {
			continue
		}
		rv := reflect.ValueOf(x)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
			for i := range rv.Len() {
				v.Add(k, fmt.Sprint(rv.Index(i).Interface()))
			}
			continue
		}
		v.Set(k, fmt.Sprint(x))
	}
	return v, nil
}

// Encode returns the URL-encoded query string.
func (p Payload) Encode() (string, error) {
	v, err := p.Values()
	if err != nil {
		return "", err
	}
	return v.Encode(), nil
}

// Equal reports whether two payloads would produce the same request.
func (p Payload) Equal(o Payload) bool {
	return reflect.DeepEqual(p.Map(), o.Map())
}
