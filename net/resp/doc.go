// Package resp writes the JSON responses of the paginated endpoints.
//
// Successful responses carry the payload itself, so a page is served as
//
//	{"data": [...], "links": {...}, "meta": {...}}
//
// Failures share one structure:
//
//	{
//	  "code": -200,                        // ecode code
//	  "message": "Invalid query parameters",
//	  "errors": {"page": "..."}            // field details, optional
//	}
//
// Usage:
//
//	resp.Success(w, page)
//	resp.Fail(w, resp.BadRequest("invalid query", fields))
//	resp.Fail(w, resp.FromError(err))
package resp
