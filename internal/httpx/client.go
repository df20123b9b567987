package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ledgerline/invoiceflow/internal/common"
)

// DefaultTimeout bounds connect/read/write for one call. It is generous
// because some vendor endpoints trigger slow third-party processing.
const DefaultTimeout = 600 * time.Second

// Unit is the expected type for calls whose response body is irrelevant.
// SendTyped with Unit never reads the body, even if the server returns one.
type Unit struct{}

// Validator lets a response type reject decoded payloads that are missing
// required fields.
type Validator interface {
	Validate() error
}

// Config holds the HTTP client configuration.
type Config struct {
	// Transport overrides the underlying round tripper; nil means
	// http.DefaultTransport. Used by tests.
	Transport http.RoundTripper
	// Timeout bounds one full call; zero means DefaultTimeout.
	Timeout time.Duration
}

// Client issues outbound requests. It holds no mutable state between calls
// besides the shared connection pool, so a single instance is safe to share
// across concurrent callers.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client from the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: cfg.Transport,
		},
		logger: slog.Default().With("component", "httpx"),
	}
}

// Response is the outcome of one successful exchange. The body has been read
// in full and the connection released.
type Response struct {
	Header http.Header
	Body   []byte
	Status int
}

// Send issues the request and returns the response with its body fully read.
// Non-2xx statuses are returned as *common.APIError.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	httpResp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &common.TransportError{Method: req.Method(), URL: req.URL(), Err: err}
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   body,
	}, nil
}

// SendTyped issues the request and decodes the JSON response body into T.
// Unknown fields are ignored; if T implements Validator, missing required
// fields surface as *common.DecodeError.
func SendTyped[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T

	// Unit means the caller does not care about the body; skip reading it.
	if _, ok := any(out).(Unit); ok {
		httpResp, err := c.do(ctx, req)
		if err != nil {
			return out, err
		}
		_ = httpResp.Body.Close()
		return out, nil
	}

	resp, err := c.Send(ctx, req)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, &common.DecodeError{Method: req.Method(), URL: req.URL(), Err: err}
	}
	if v, ok := any(out).(Validator); ok {
		if err := v.Validate(); err != nil {
			return out, &common.DecodeError{Method: req.Method(), URL: req.URL(), Err: err}
		}
	}

	return out, nil
}

// do performs the exchange and classifies failures. The response body is
// unread; non-2xx bodies are consumed into the APIError.
func (c *Client) do(ctx context.Context, req Request) (*http.Response, error) {
	var bodyReader io.Reader
	if req.Body() != nil {
		encoded, err := json.Marshal(req.Body())
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), req.URL(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for name, values := range req.Headers() {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}
	if req.Body() != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("Sending request", "method", req.Method(), "url", req.URL())

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &common.TransportError{Method: req.Method(), URL: req.URL(), Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		body, _ := io.ReadAll(httpResp.Body)
		_ = httpResp.Body.Close()
		return nil, &common.APIError{
			Method: req.Method(),
			URL:    req.URL(),
			Status: httpResp.StatusCode,
			Body:   string(body),
		}
	}

	return httpResp, nil
}
