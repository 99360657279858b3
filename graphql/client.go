package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hupe1980/strapikit/core"
	"github.com/hupe1980/strapikit/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader carries the correlation id of an outbound request.
const RequestIDHeader = "X-Request-ID"

const defaultTracerName = "github.com/hupe1980/strapikit/graphql"

// RequestOptions are the caller supplied parts of a request.
type RequestOptions struct {
	// Method is ignored; requests are always sent as POST.
	Method string
	// Header is merged into the outbound request headers.
	Header http.Header
	// Body is sent verbatim.
	Body []byte
}

// NewQuery builds RequestOptions carrying a JSON encoded GraphQL document and
// its variables.
func NewQuery(query string, variables map[string]any) (RequestOptions, error) {
	payload := struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables,omitempty"`
	}{Query: query, Variables: variables}
	body, err := json.Marshal(payload)
	if err != nil {
		return RequestOptions{}, fmt.Errorf("encode query: %w", err)
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	return RequestOptions{Header: h, Body: body}, nil
}

// WithBearer returns a copy of o with an Authorization bearer header.
func (o RequestOptions) WithBearer(token string) RequestOptions {
	h := o.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set("Authorization", "Bearer "+token)
	o.Header = h
	return o
}

// Options configures a Client.
type Options struct {
	// HTTPClient performs the requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Timeout bounds a single Send including body decoding. Zero means no
	// timeout beyond the caller's context.
	Timeout time.Duration

	// Notifier receives every GraphQL error message. Nil disables
	// notifications.
	Notifier core.Notifier

	// Logger defaults to NoOpLogger if nil.
	Logger logging.Logger

	// Metrics records request outcomes. Nil disables metrics.
	Metrics *Metrics

	// TracerProvider defaults to the global OpenTelemetry provider.
	TracerProvider trace.TracerProvider

	// TracerName is the instrumentation name used for spans.
	TracerName string

	// UserAgent is sent when the caller did not set one.
	UserAgent string
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) func(o *Options) {
	return func(o *Options) { o.HTTPClient = hc }
}

// WithTimeout sets the per request timeout.
func WithTimeout(d time.Duration) func(o *Options) {
	return func(o *Options) { o.Timeout = d }
}

// WithNotifier sets the notifier used for GraphQL error messages.
func WithNotifier(n core.Notifier) func(o *Options) {
	return func(o *Options) { o.Notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *Metrics) func(o *Options) {
	return func(o *Options) { o.Metrics = m }
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) func(o *Options) {
	return func(o *Options) { o.TracerProvider = tp }
}

// WithTracerName sets the instrumentation name used for spans.
func WithTracerName(name string) func(o *Options) {
	return func(o *Options) { o.TracerName = name }
}

// WithUserAgent sets the default User-Agent header.
func WithUserAgent(ua string) func(o *Options) {
	return func(o *Options) { o.UserAgent = ua }
}

// Client sends GraphQL requests. It is safe for concurrent use; concurrent
// calls are independent and never coalesced.
type Client struct {
	opts   Options
	logger logging.Logger
	tracer trace.Tracer
}

// NewClient creates a Client with optional overrides.
func NewClient(optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: http.DefaultClient,
		TracerName: defaultTracerName,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if opts.TracerName == "" {
		opts.TracerName = defaultTracerName
	}
	return &Client{opts: opts, logger: logging.OrNoOp(opts.Logger), tracer: tp.Tracer(opts.TracerName)}
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// Send posts opts to endpoint and returns the raw "data" value of the
// response (nil when the field is absent).
//
// A non-empty "errors" list yields a *ResponseError after each message has
// been passed to the notifier. Every other failure yields a *TransportError.
func (c *Client) Send(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	requestID := opts.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = core.NewID()
	}

	ctx, span := c.tracer.Start(ctx, "graphql.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.endpoint", endpoint),
			attribute.String("graphql.request_id", requestID),
		),
	)
	defer span.End()

	logger := logging.ForRequest(c.logger, requestID, endpoint)

	start := time.Now()
	data, outcome, err := c.send(ctx, logger, endpoint, requestID, opts)
	dur := time.Since(start)

	c.opts.Metrics.observe(outcome, dur)
	span.SetAttributes(attribute.String("graphql.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	logging.LogRequest(logger, endpoint, outcome, dur, err)
	return data, err
}

func (c *Client) send(ctx context.Context, logger logging.Logger, endpoint, requestID string, opts RequestOptions) (json.RawMessage, string, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	if opts.Method != "" && opts.Method != http.MethodPost {
		logger.Debug("Ignoring request method override", "method", opts.Method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(opts.Body))
	if err != nil {
		return nil, OutcomeTransport, transportErr(OpTransport, endpoint, err)
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(RequestIDHeader, requestID)
	if c.opts.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, OutcomeTransport, transportErr(OpTransport, endpoint, err)
	}
	defer resp.Body.Close()

	var env envelope
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&env); err != nil {
		return nil, OutcomeDecode, transportErr(OpDecode, endpoint, err)
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after response value")
		}
		return nil, OutcomeDecode, transportErr(OpDecode, endpoint, fmt.Errorf("trailing data: %w", err))
	}

	var list []Error
	if len(env.Errors) > 0 {
		if err := json.Unmarshal(env.Errors, &list); err != nil {
			return nil, OutcomeDecode, transportErr(OpDecode, endpoint, fmt.Errorf("errors field: %w", err))
		}
	}
	if len(list) == 0 {
		return env.Data, OutcomeSuccess, nil
	}

	logger.Debug("GraphQL response carried errors",
		"status", resp.StatusCode,
		"errors", string(env.Errors),
	)

	if n := c.opts.Notifier; n != nil {
		for _, ge := range list {
			if err := n.Notify(ctx, ge.Message); err != nil {
				return nil, OutcomeNotify, transportErr(OpNotify, endpoint, err)
			}
			c.opts.Metrics.notified()
		}
	}

	return nil, OutcomeGraphQLErrors, &ResponseError{Errors: list, Raw: env.Errors}
}

func transportErr(op, endpoint string, err error) error {
	return &TransportError{Op: op, Endpoint: endpoint, Err: err}
}

// Do sends opts and decodes the "data" value into T. An absent or null data
// value leaves T at its zero value.
func Do[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (T, error) {
	var out T
	data, err := c.Send(ctx, endpoint, opts)
	if err != nil {
		return out, err
	}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &TransportError{Op: OpDecode, Endpoint: endpoint, Err: err}
	}
	return out, nil
}
