package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is a snapshot of a request received by GraphQLServer.
type RecordedRequest struct {
	Method string
	Header http.Header
	Body   []byte
}

// GraphQLServerBuilder provides a fluent helper for starting a fake GraphQL
// endpoint in tests.
// Example:
//
//	srv := NewGraphQLServer(t).Data(`{"posts":[]}`).Start()
//	defer srv.Close()
//
// Chain only the parts you need; with no configuration the server answers
// `{"data":null}` with status 200.
type GraphQLServerBuilder struct {
	t       testing.TB
	status  int
	data    json.RawMessage
	errors  []map[string]any
	rawBody []byte
}

// NewGraphQLServer creates a builder bound to t.
func NewGraphQLServer(t testing.TB) *GraphQLServerBuilder {
	return &GraphQLServerBuilder{t: t, status: http.StatusOK}
}

// Status sets the HTTP status code of every response (chainable).
func (b *GraphQLServerBuilder) Status(code int) *GraphQLServerBuilder { b.status = code; return b }

// Data sets the raw JSON value of the "data" field (chainable).
func (b *GraphQLServerBuilder) Data(raw string) *GraphQLServerBuilder {
	b.data = json.RawMessage(raw)
	return b
}

// Errors appends one GraphQL error per message (chainable).
func (b *GraphQLServerBuilder) Errors(messages ...string) *GraphQLServerBuilder {
	for _, m := range messages {
		b.errors = append(b.errors, map[string]any{"message": m})
	}
	return b
}

// RawBody replaces the whole response body, bypassing data/errors (chainable).
func (b *GraphQLServerBuilder) RawBody(body string) *GraphQLServerBuilder {
	b.rawBody = []byte(body)
	return b
}

// Start launches the server. It is closed automatically when the test ends.
func (b *GraphQLServerBuilder) Start() *GraphQLServer {
	body := b.rawBody
	if body == nil {
		payload := map[string]any{}
		if b.data != nil {
			payload["data"] = b.data
		}
		if len(b.errors) > 0 {
			payload["errors"] = b.errors
		}
		if len(payload) == 0 {
			payload["data"] = nil
		}
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			b.t.Fatalf("testutil: encode response: %v", err)
		}
	}

	s := &GraphQLServer{}
	status := b.status
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqBody, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{Method: r.Method, Header: r.Header.Clone(), Body: reqBody})
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	b.t.Cleanup(s.Close)
	return s
}

// GraphQLServer is a running fake endpoint.
type GraphQLServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []RecordedRequest
}

// Requests returns a copy of the requests received so far.
func (s *GraphQLServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request or fails the test if none.
func (s *GraphQLServer) LastRequest(t testing.TB) RecordedRequest {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatalf("testutil: no request received")
	}
	return reqs[len(reqs)-1]
}
