package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/ncobase/datatable/ecode"
	"github.com/ncobase/datatable/logging/logger"
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/reconcile"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader carries the id of every visit request.
const RequestIDHeader = "X-Request-Id"

const tracerName = "github.com/ncobase/datatable/navigation"

// HTTPOption configures an HTTP navigator.
type HTTPOption func(*httpOptions)

type httpOptions struct {
	retryMax int
	timeout  time.Duration
	client   *http.Client
	breaker  *gobreaker.Settings
	log      *logger.Logger
	header   http.Header
}

// WithRetryMax enables automatic retries; 0 by default.
func WithRetryMax(n int) HTTPOption {
	return func(o *httpOptions) { o.retryMax = n }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) HTTPOption {
	return func(o *httpOptions) { o.timeout = d }
}

// WithHTTPClient sets the underlying client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(o *httpOptions) { o.client = c }
}

// WithBreaker guards requests with a circuit breaker.
func WithBreaker(s gobreaker.Settings) HTTPOption {
	return func(o *httpOptions) { o.breaker = &s }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) HTTPOption {
	return func(o *httpOptions) { o.header.Add(key, value) }
}

// WithHTTPLogger sets the logger.
func WithHTTPLogger(l *logger.Logger) HTTPOption {
	return func(o *httpOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// DefaultBreaker returns breaker settings tripping on a 60% failure ratio
// over at least three requests.
func DefaultBreaker(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 100,
		Interval:    5 * time.Second,
		Timeout:     3 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	}
}

// HTTP fetches pages with GET address?payload and hands them to a Sink.
type HTTP[T any] struct {
	base    *url.URL
	client  *retryablehttp.Client
	breaker *gobreaker.CircuitBreaker
	header  http.Header
	log     *logger.Logger
	sink    atomic.Pointer[Sink[T]]
}

// NewHTTP returns a navigator resolving visit addresses against baseURL.
func NewHTTP[T any](baseURL string, opts ...HTTPOption) (*HTTP[T], error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("navigation: base url: %w", err)
	}

	o := &httpOptions{header: http.Header{}, log: logger.StdLogger()}
	for _, opt := range opts {
		opt(o)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = o.retryMax
	rc.Logger = nil
	if o.client != nil {
		rc.HTTPClient = o.client
	}
	if o.timeout > 0 {
		rc.HTTPClient.Timeout = o.timeout
	}
	// hand the last response back instead of a retry error
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	h := &HTTP[T]{
		base:   base,
		client: rc,
		header: o.header,
		log:    o.log,
	}
	if o.breaker != nil {
		h.breaker = gobreaker.NewCircuitBreaker(*o.breaker)
	}
	return h, nil
}

// SetSink sets the receiver of fetched pages.
func (h *HTTP[T]) SetSink(s Sink[T]) {
	h.sink.Store(&s)
}

// Navigate performs v and delivers the page to the sink.
func (h *HTTP[T]) Navigate(ctx context.Context, v reconcile.Visit) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "datatable.visit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.Int64("datatable.seq", int64(v.Seq)),
			attribute.String("datatable.address", v.Address),
			attribute.Int("datatable.page", v.Payload.Page),
		),
	)
	defer span.End()

	page, err := h.fetch(ctx, v)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if sp := h.sink.Load(); sp != nil {
		if !(*sp).Receive(v.Seq, page) {
			span.SetAttributes(attribute.Bool("datatable.stale", true))
		}
	} else {
		h.log.Warnf(ctx, "visit #%d fetched without a sink", v.Seq)
	}
	return nil
}

func (h *HTTP[T]) fetch(ctx context.Context, v reconcile.Visit) (paging.Page[T], error) {
	if h.breaker == nil {
		return h.do(ctx, v)
	}
	res, err := h.breaker.Execute(func() (any, error) {
		return h.do(ctx, v)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return paging.Page[T]{}, fmt.Errorf("%w: %v", ecode.ErrNavigation, err)
		}
		return paging.Page[T]{}, err
	}
	return res.(paging.Page[T]), nil
}

func (h *HTTP[T]) do(ctx context.Context, v reconcile.Visit) (paging.Page[T], error) {
	var page paging.Page[T]

	target, err := h.address(v)
	if err != nil {
		return page, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return page, fmt.Errorf("%w: %v", ecode.ErrNavigation, err)
	}
	for k, vs := range h.header {
		for _, x := range vs {
			req.Header.Add(k, x)
		}
	}
	req.Header.Set("Accept", "application/json")
	id := uuid.NewString()
	req.Header.Set(RequestIDHeader, id)

	start := time.Now()
	res, err := h.client.Do(req)
	if err != nil {
		return page, fmt.Errorf("%w: %v", ecode.ErrNavigation, err)
	}
	defer res.Body.Close()

	h.log.WithContextFields(ctx, logrus.Fields{
		"seq":        v.Seq,
		"request_id": id,
		"status":     res.StatusCode,
		"latency":    time.Since(start).String(),
	}).Debug("visit")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return page, fmt.Errorf("%w: GET %s: %s: %s", ecode.ErrNavigation, target, res.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return page, fmt.Errorf("%w: decode page: %v", ecode.ErrNavigation, err)
	}
	return page, nil
}

// address resolves the visit address and appends the payload query.
func (h *HTTP[T]) address(v reconcile.Visit) (string, error) {
	ref, err := url.Parse(v.Address)
	if err != nil {
		return "", fmt.Errorf("%w: address %q: %v", ecode.ErrNavigation, v.Address, err)
	}
	u := h.base.ResolveReference(ref)

	values, err := v.Payload.Values()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ecode.ErrNavigation, err)
	}
	q := u.Query()
	for k, vs := range values {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
