// Package payload converts query state into the flat request payload a
// paginated endpoint receives, and parses that payload back on the server.
//
// The wire field names are a compatibility contract:
//
//	search, sort_by, sort_direction, page, start_date, end_date
//
// plus every extra filter under its own key. Absent values are nil in Map
// and omitted from the query string; they are never sent as "".
package payload
