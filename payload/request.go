package payload

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/datatable/ecode"
	q "github.com/ncobase/datatable/query"
	"github.com/ncobase/datatable/validator"
)

// KeyPerPage is a server-side page size hint. It is not part of the
// payload a table sends but endpoints accept it.
const KeyPerPage = "per_page"

// Request is an incoming payload after validation.
type Request struct {
	Search        string `url:"search" validate:"max=255"`
	SortBy        string `url:"sort_by" validate:"required_with=SortDirection,max=64"`
	SortDirection string `url:"sort_direction" validate:"omitempty,oneof=asc desc"`
	Page          int    `url:"page" validate:"gte=1"`
	PerPage       int    `url:"per_page" validate:"omitempty,gte=1,lte=500"`
	StartDate     string `url:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string `url:"end_date" validate:"omitempty,datetime=2006-01-02"`
	// Extra holds every non-dedicated key.
	Extra url.Values `url:"-"`
}

// ValidationError lists the offending fields of a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ecode.ErrInvalidQuery.Error(), strings.Join(msgs, " "))
}

// Unwrap makes errors.Is match ecode.ErrInvalidQuery.
func (e *ValidationError) Unwrap() error {
	return ecode.ErrInvalidQuery
}

// Parse reads and validates a payload from a query string. A missing page
// defaults to 1 and a sort field without direction sorts ascending.
func Parse(values url.Values) (Request, error) {
	r := Request{Page: 1, Extra: url.Values{}}
	fields := map[string]string{}

	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		v := strings.TrimSpace(vs[len(vs)-1])
		switch k {
		case KeySearch:
			r.Search = v
		case KeySortBy:
			r.SortBy = v
		case KeySortDirection:
			r.SortDirection = strings.ToLower(v)
		case KeyPage:
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				fields[KeyPage] = ecode.FieldIsInvalid(KeyPage)
				continue
			}
			r.Page = n
		case KeyPerPage:
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				fields[KeyPerPage] = ecode.FieldIsInvalid(KeyPerPage)
				continue
			}
			r.PerPage = n
		case KeyStartDate:
			r.StartDate = v
		case KeyEndDate:
			r.EndDate = v
		default:
			r.Extra[k] = slices.Clone(vs)
		}
	}

	if r.SortBy != "" && r.SortDirection == "" {
		r.SortDirection = string(q.SortAsc)
	}

	for k, msg := range validator.ValidateStruct(&r) {
		if _, ok := fields[k]; !ok {
			fields[k] = msg
		}
	}
	if len(fields) > 0 {
		return Request{}, &ValidationError{Fields: fields}
	}
	return r, nil
}

// Direction returns the typed sort direction.
func (r Request) Direction() q.SortDirection {
	d, _ := q.ParseSortDirection(r.SortDirection)
	return d
}

// DateRange returns the requested range, nil when neither endpoint is set.
// Dates are interpreted in loc, UTC when loc is nil.
func (r Request) DateRange(loc *time.Location) *q.DateRange {
	if r.StartDate == "" && r.EndDate == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	dr := &q.DateRange{}
	if t, err := time.ParseInLocation(q.DateLayout, r.StartDate, loc); err == nil {
		dr.From = &t
	}
	if t, err := time.ParseInLocation(q.DateLayout, r.EndDate, loc); err == nil {
		dr.To = &t
	}
	return dr
}

// Payload returns the request as a payload, the inverse of Values.
func (r Request) Payload() Payload {
	p := Payload{Search: r.Search, Page: r.Page, Extra: map[string]any{}}
	if r.SortBy != "" {
		field, dir := r.SortBy, r.Direction()
		p.SortBy, p.SortDirection = &field, &dir
	}
	if r.StartDate != "" {
		s := r.StartDate
		p.StartDate = &s
	}
	if r.EndDate != "" {
		s := r.EndDate
		p.EndDate = &s
	}
	p.RangeSet = p.StartDate != nil || p.EndDate != nil
	for k, vs := range r.Extra {
		if len(vs) == 1 {
			p.Extra[k] = vs[0]
			continue
		}
		p.Extra[k] = slices.Clone(vs)
	}
	return p
}
