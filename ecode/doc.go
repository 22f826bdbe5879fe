// Package ecode defines the error codes and sentinel errors shared by the
// datatable packages, plus small helpers for building field-level messages.
//
// # Error Code Convention
//
// Error codes follow a standardized numbering scheme:
//   - 0: Success (OK)
//   - -200 to -299: Request validation errors
//   - -300 to -399: Page data errors
//   - -400 to -499: Table state errors
//   - -500+: Navigation and server errors
//
// # Sentinel Errors
//
// Every code has a sentinel error that callers can match with errors.Is:
//
//	if _, err := payload.Serialize(state); errors.Is(err, ecode.ErrSortInvariant) {
//	    // the state carried a sort field without a direction
//	}
//
// # Getting Error Messages
//
//	message := ecode.Text(ecode.InvalidQuery)
//	// Returns: "Invalid query parameters"
//
// # HTTP Status Mapping
//
//	httpStatus := ecode.ToHTTPStatus(ecode.InvalidQuery)
//	// Returns: 400
package ecode
