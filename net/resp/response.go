package resp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ncobase/datatable/ecode"
	"github.com/ncobase/datatable/payload"
)

// Exception represents a failure response.
type Exception struct {
	Status  int    `json:"-"`                 // HTTP status
	Code    int    `json:"code"`              // Business code
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Validation errors
}

func (e *Exception) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func newException(status, code int, format string, args ...any) *Exception {
	msg := ecode.Text(code)
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &Exception{Status: status, Code: code, Message: msg}
}

// BadRequest returns a 400 exception with optional field errors.
func BadRequest(message string, errs ...any) *Exception {
	e := newException(http.StatusBadRequest, ecode.InvalidQuery, "%s", message)
	if len(errs) > 0 {
		e.Errors = errs[0]
	}
	return e
}

// NotFound returns a 404 exception.
func NotFound(format string, args ...any) *Exception {
	return newException(http.StatusNotFound, ecode.InvalidQuery, format, args...)
}

// InternalServer returns a 500 exception.
func InternalServer(format string, args ...any) *Exception {
	return newException(http.StatusInternalServerError, ecode.ServerErr, format, args...)
}

// FromError maps err to an exception through its ecode code. Validation
// errors keep their field details.
func FromError(err error) *Exception {
	var ex *Exception
	if errors.As(err, &ex) {
		return ex
	}
	code := ecode.CodeOf(err)
	e := &Exception{
		Status:  ecode.ToHTTPStatus(code),
		Code:    code,
		Message: err.Error(),
	}
	var verr *payload.ValidationError
	if errors.As(err, &verr) {
		e.Message = ecode.Text(code)
		e.Errors = verr.Fields
	}
	if code == ecode.ServerErr {
		// internal details stay in the logs
		e.Message = ecode.Text(code)
	}
	return e
}

// Success writes data with status 200.
func Success(w http.ResponseWriter, data any) {
	WithStatusCode(w, http.StatusOK, data)
}

// WithStatusCode writes data with statusCode. A string is wrapped as a
// message.
func WithStatusCode(w http.ResponseWriter, statusCode int, data any) {
	switch v := data.(type) {
	case nil:
		data = map[string]any{"message": "ok"}
	case string:
		data = map[string]any{"message": v}
	}
	writeJSON(w, statusCode, data)
}

// Fail writes the failure response of r; nil is an internal error.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = InternalServer("")
	}
	status := r.Status
	if status == 0 {
		status = http.StatusBadRequest
	}
	if r.Code == ecode.OK {
		r.Code = ecode.ServerErr
	}
	if r.Message == "" {
		r.Message = ecode.Text(r.Code)
	}
	writeJSON(w, status, r)
}

func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
