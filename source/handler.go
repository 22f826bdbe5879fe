package source

import (
	"net/http"
	"net/url"

	"github.com/ncobase/datatable/logging/logger"
	"github.com/ncobase/datatable/net/resp"
	"github.com/ncobase/datatable/payload"
)

// Handler serves GET requests from a Memory source.
func Handler[T any](m *Memory[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, err := payload.Parse(r.URL.Query())
		if err != nil {
			logger.Warnf(ctx, "%s %s: %v", r.Method, r.URL.Path, err)
			resp.Fail(w, resp.FromError(err))
			return
		}

		page, err := m.Query(req, &url.URL{Path: r.URL.Path})
		if err != nil {
			logger.Warnf(ctx, "%s %s: %v", r.Method, r.URL.Path, err)
			resp.Fail(w, resp.FromError(err))
			return
		}

		logger.Debugf(ctx, "%s %s page=%d/%d total=%d", r.Method, r.URL.Path, page.Meta.CurrentPage, page.Meta.LastPage, page.Meta.Total)
		resp.Success(w, page)
	}
}
