// Package crossover is a thin typed gateway over the Crossover identity and
// payments API.
package crossover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ledgerline/invoiceflow/internal/httpx"
	"github.com/ledgerline/invoiceflow/internal/model"
	"github.com/ledgerline/invoiceflow/internal/service"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.crossover.com"

// authTokenHeader is the vendor-specific header carrying the session token on
// payment queries.
const authTokenHeader = "X-Auth-Token"

// Config holds the gateway configuration.
type Config struct {
	// HTTPClient is the shared typed client; required.
	HTTPClient *httpx.Client
	// BaseURL overrides DefaultBaseURL, e.g. for tests.
	BaseURL string
	// WrappedPayments selects the payments response shape. Older API
	// revisions return a bare list, newer ones wrap it in an object.
	WrappedPayments bool
}

// Client calls the timesheet API. Tokens are opaque strings owned by the
// caller and passed in explicitly on every call.
type Client struct {
	httpClient *httpx.Client
	logger     *slog.Logger
	baseURL    string
	wrapped    bool
}

// NewClient creates a timesheet gateway from the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.HTTPClient == nil {
		return nil, fmt.Errorf("crossover: HTTP client is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    baseURL,
		wrapped:    cfg.WrappedPayments,
		logger:     slog.Default().With("component", "crossover"),
	}, nil
}

// tokenResponse is the wire shape of a successful authentication.
type tokenResponse struct {
	Token string `json:"token"`
}

func (r tokenResponse) Validate() error {
	if r.Token == "" {
		return errors.New("authentication response is missing token")
	}
	return nil
}

// paymentsEnvelope is the wrapped payments response shape.
type paymentsEnvelope struct {
	Payments []model.TimesheetPayment `json:"payments"`
}

// Authenticate exchanges credentials for a session token. Bad credentials
// surface as an *common.APIError with the propagated status code.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	req, err := httpx.NewRequest(http.MethodPost, c.baseURL+"/api/identity/authentication").
		Auth(httpx.Basic(username, password)).
		Build()
	if err != nil {
		return "", err
	}

	resp, err := httpx.SendTyped[tokenResponse](ctx, c.httpClient, req)
	if err != nil {
		return "", err
	}

	return resp.Token, nil
}

// CheckCredentials is a lenient probe: it performs the same call as
// Authenticate but converts every failure mode into false. Its only job is to
// light a status indicator; nothing downstream depends on the token.
func (c *Client) CheckCredentials(ctx context.Context, username, password string) bool {
	req, err := httpx.NewRequest(http.MethodPost, c.baseURL+"/api/identity/authentication").
		Auth(httpx.Basic(username, password)).
		Build()
	if err != nil {
		return false
	}

	if _, err := httpx.SendTyped[httpx.Unit](ctx, c.httpClient, req); err != nil {
		c.logger.Debug("Credential probe failed", "error", err)
		return false
	}

	return true
}

// ListPayments fetches payment records for the inclusive date range. Results
// are returned unfiltered; matching a payment to a bank operation by period
// start date is the caller's responsibility.
func (c *Client) ListPayments(ctx context.Context, token string, from, to time.Time) ([]model.TimesheetPayment, error) {
	query := url.Values{}
	query.Set("from", from.Format("2006-01-02"))
	query.Set("to", to.Format("2006-01-02"))

	req, err := httpx.NewRequest(http.MethodGet, c.baseURL+"/api/identity/users/current/payments?"+query.Encode()).
		Auth(httpx.HeaderToken(authTokenHeader, token)).
		Build()
	if err != nil {
		return nil, err
	}

	if c.wrapped {
		envelope, err := httpx.SendTyped[paymentsEnvelope](ctx, c.httpClient, req)
		if err != nil {
			return nil, err
		}
		return envelope.Payments, nil
	}

	payments, err := httpx.SendTyped[[]model.TimesheetPayment](ctx, c.httpClient, req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched payments", "count", len(payments))

	return payments, nil
}

// Ensure Client implements the TimesheetGateway interface.
var _ service.TimesheetGateway = (*Client)(nil)
