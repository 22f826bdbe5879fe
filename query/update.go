package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/datatable/ecode"
)

// DateLayout is the wire layout of dates.
const DateLayout = "2006-01-02"

// Update is a sparse change to a State.
type Update struct {
	Search        Opt[string]
	SortBy        Opt[string]
	SortDirection Opt[SortDirection]
	Page          Opt[int]
	// DateRange set to nil clears the tracked range.
	DateRange Opt[*DateRange]
	Extra     Filters
}

// IsPageOnly reports whether the update changes nothing but the page.
func (u Update) IsPageOnly() bool {
	return u.Page.Set && !u.ResetsPage()
}

// ResetsPage reports whether the update touches a field that invalidates the
// current page position.
func (u Update) ResetsPage() bool {
	return u.Search.Set || u.SortBy.Set || u.SortDirection.Set || u.DateRange.Set || len(u.Extra) > 0
}

// IsEmpty reports whether the update carries nothing.
func (u Update) IsEmpty() bool {
	return !u.Page.Set && !u.ResetsPage()
}

// ParseUpdate builds an Update from a filter component's map. Reserved keys
// land in their dedicated fields; every other key is kept as an extra.
// start_date and end_date are refused: the range is set through date_range.
func ParseUpdate(m map[string]any) (Update, error) {
	u := Update{Extra: Filters{}}
	for k, v := range m {
		switch k {
		case KeySearch:
			s, err := asString(k, v)
			if err != nil {
				return Update{}, err
			}
			u.Search = Some(s)
		case KeySortBy:
			s, err := asString(k, v)
			if err != nil {
				return Update{}, err
			}
			u.SortBy = Some(s)
		case KeySortDirection:
			d, err := asDirection(v)
			if err != nil {
				return Update{}, err
			}
			u.SortDirection = Some(d)
		case KeyPage:
			p, err := asPage(v)
			if err != nil {
				return Update{}, err
			}
			u.Page = Some(p)
		case KeyDateRange:
			r, err := asDateRange(v)
			if err != nil {
				return Update{}, err
			}
			u.DateRange = Some(r)
		case KeyStartDate, KeyEndDate:
			// endpoints travel inside date_range
			return Update{}, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsReserved(k))
		default:
			u.Extra.Set(k, v)
		}
	}
	if len(u.Extra) == 0 {
		u.Extra = nil
	}
	return u, nil
}

func asString(key string, v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	}
	return "", fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsInvalid(key))
}

func asDirection(v any) (SortDirection, error) {
	switch d := v.(type) {
	case nil:
		return SortNone, nil
	case SortDirection:
		if !d.Valid() {
			return SortNone, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsInvalid(KeySortDirection))
		}
		return d, nil
	case string:
		return ParseSortDirection(d)
	}
	return SortNone, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsInvalid(KeySortDirection))
}

func asPage(v any) (int, error) {
	var p int
	switch n := v.(type) {
	case int:
		p = n
	case int64:
		p = int(n)
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsInvalid(KeyPage))
		}
		p = int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsInvalid(KeyPage))
		}
		p = parsed
	default:
		return 0, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.FieldIsInvalid(KeyPage))
	}
	if p < 1 {
		return 0, fmt.Errorf("%w: %s", ecode.ErrInvalidQuery, ecode.OutOfRange(KeyPage))
	}
	return p, nil
}

func asDateRange(v any) (*DateRange, error) {
	switch r := v.(type) {
	case nil:
		return nil, nil
	case *DateRange:
		return r.Clone(), nil
	case DateRange:
		return r.Clone(), nil
	case map[string]any:
		from, err := asDate(r["from"])
		if err != nil {
			return nil, err
		}
		to, err := asDate(r["to"])
		if err != nil {
			return nil, err
		}
		return &DateRange{From: from, To: to}, nil
	}
	return nil, fmt.Errorf("%w: %s", ecode.ErrInvalidDate, ecode.FieldIsInvalid(KeyDateRange))
}

func asDate(v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case *time.Time:
		return t, nil
	case string:
		if t == "" {
			return nil, nil
		}
		parsed, err := time.Parse(DateLayout, t)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ecode.ErrInvalidDate, t)
		}
		return &parsed, nil
	}
	return nil, fmt.Errorf("%w: %v", ecode.ErrInvalidDate, v)
}
