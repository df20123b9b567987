// Package httpx provides the typed HTTP request pipeline shared by the
// banking and timesheet gateways: immutable requests, pluggable auth
// strategies, and JSON-typed sends with a uniform error taxonomy.
package httpx

import (
	"fmt"
	"net/http"
	"net/url"
)

// Request is an outbound HTTP request. It is immutable once built; use
// NewRequest to construct one.
type Request struct {
	body    any
	method  string
	url     string
	headers http.Header
}

// Method returns the HTTP method.
func (r Request) Method() string { return r.method }

// URL returns the absolute target URL.
func (r Request) URL() string { return r.url }

// Header returns the value of a single header, or "" if unset.
func (r Request) Header(name string) string { return r.headers.Get(name) }

// Headers returns a copy of the header set.
func (r Request) Headers() http.Header { return r.headers.Clone() }

// Body returns the JSON-serializable body value, or nil.
func (r Request) Body() any { return r.body }

// Builder assembles a Request.
type Builder struct {
	body    any
	method  string
	url     string
	headers http.Header
}

// NewRequest starts building a request for the given method and absolute URL.
func NewRequest(method, rawURL string) *Builder {
	return &Builder{
		method:  method,
		url:     rawURL,
		headers: make(http.Header),
	}
}

// Header sets a header on the request, replacing any previous value.
func (b *Builder) Header(name, value string) *Builder {
	b.headers.Set(name, value)
	return b
}

// Body attaches a JSON-serializable body value.
func (b *Builder) Body(body any) *Builder {
	b.body = body
	return b
}

// Auth applies an authentication strategy to the request being built.
func (b *Builder) Auth(strategy AuthStrategy) *Builder {
	return strategy(b)
}

// Build validates the builder and returns the immutable request.
func (b *Builder) Build() (Request, error) {
	if b.method == "" {
		return Request{}, fmt.Errorf("request method is required")
	}
	u, err := url.Parse(b.url)
	if err != nil {
		return Request{}, fmt.Errorf("invalid request URL %q: %w", b.url, err)
	}
	if !u.IsAbs() {
		return Request{}, fmt.Errorf("request URL %q must be absolute", b.url)
	}

	return Request{
		method:  b.method,
		url:     b.url,
		headers: b.headers.Clone(),
		body:    b.body,
	}, nil
}
