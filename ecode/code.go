package ecode

import (
	"errors"
	"net/http"
	"sync"
)

// Codes
const (
	OK = 0

	InvalidQuery = -200
	InvalidDate  = -201

	InvalidMeta = -300

	SortInvariant   = -400
	DuplicateColumn = -401
	Closed          = -402

	NavigationErr = -500
	ServerErr     = -501
)

// Sentinel errors, one per code.
var (
	ErrInvalidQuery    = newError(InvalidQuery)
	ErrInvalidDate     = newError(InvalidDate)
	ErrInvalidMeta     = newError(InvalidMeta)
	ErrSortInvariant   = newError(SortInvariant)
	ErrDuplicateColumn = newError(DuplicateColumn)
	ErrClosed          = newError(Closed)
	ErrNavigation      = newError(NavigationErr)
)

var (
	mu    sync.RWMutex
	texts = map[int]string{
		OK:              "ok",
		InvalidQuery:    "Invalid query parameters",
		InvalidDate:     "Invalid date",
		InvalidMeta:     "Invalid page metadata",
		SortInvariant:   "Sort field and sort direction disagree",
		DuplicateColumn: "Duplicate column id",
		Closed:          "Table is closed",
		NavigationErr:   "Navigation failed",
		ServerErr:       "Internal server error",
	}
	statuses = map[int]int{
		OK:              http.StatusOK,
		InvalidQuery:    http.StatusBadRequest,
		InvalidDate:     http.StatusBadRequest,
		InvalidMeta:     http.StatusUnprocessableEntity,
		SortInvariant:   http.StatusUnprocessableEntity,
		DuplicateColumn: http.StatusUnprocessableEntity,
		Closed:          http.StatusGone,
		NavigationErr:   http.StatusBadGateway,
		ServerErr:       http.StatusInternalServerError,
	}
)

// Error is an error carrying a code.
type Error struct {
	Code int
}

func newError(code int) *Error {
	return &Error{Code: code}
}

// Error returns the registered text of the code.
func (e *Error) Error() string {
	return Text(e.Code)
}

// Text returns the message registered for code.
func Text(code int) string {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := texts[code]; ok {
		return t
	}
	return texts[ServerErr]
}

// Register registers or overrides the message of code.
func Register(code int, text string) {
	mu.Lock()
	defer mu.Unlock()
	texts[code] = text
}

// ToHTTPStatus maps a code to an HTTP status.
func ToHTTPStatus(code int) int {
	mu.RLock()
	defer mu.RUnlock()
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// CodeOf extracts the code of err, ServerErr when err carries none.
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ServerErr
}
