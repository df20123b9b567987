// Package modulebank is a thin typed gateway over the Modulbank REST API.
package modulebank

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ledgerline/invoiceflow/internal/httpx"
	"github.com/ledgerline/invoiceflow/internal/model"
	"github.com/ledgerline/invoiceflow/internal/service"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.modulbank.ru/v1"

// Operation history is fetched one page at a time with a fixed policy: the
// invoicing flow only ever needs the most recent debit operations. There is
// deliberately no pagination.
const operationPageSize = 50

// Config holds the gateway configuration.
type Config struct {
	// HTTPClient is the shared typed client; required.
	HTTPClient *httpx.Client
	// BaseURL overrides DefaultBaseURL, e.g. for tests.
	BaseURL string
}

// Client calls the banking API. The bearer token is supplied by the caller on
// every call; the client holds no session state.
type Client struct {
	httpClient *httpx.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates a banking gateway from the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.HTTPClient == nil {
		return nil, fmt.Errorf("modulebank: HTTP client is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    baseURL,
		logger:     slog.Default().With("component", "modulebank"),
	}, nil
}

// companyRecord is the wire shape of one company with its nested accounts.
type companyRecord struct {
	CompanyID    string              `json:"companyId"`
	CompanyName  string              `json:"companyName"`
	BankAccounts []model.BankAccount `json:"bankAccounts"`
}

// operationsRequest is the wire shape of an operation-history query.
type operationsRequest struct {
	From     *model.Date             `json:"from,omitempty"`
	Till     *model.Date             `json:"till,omitempty"`
	Skip     *int                    `json:"skip,omitempty"`
	Category model.OperationCategory `json:"category"`
	Records  int                     `json:"records"`
}

// ListAccounts fetches every account the token can see, flattening the
// nested company records in company-then-account order.
func (c *Client) ListAccounts(ctx context.Context, token string) ([]model.BankAccount, error) {
	req, err := httpx.NewRequest(http.MethodPost, c.baseURL+"/account-info").
		Auth(httpx.Bearer(token)).
		Build()
	if err != nil {
		return nil, err
	}

	companies, err := httpx.SendTyped[[]companyRecord](ctx, c.httpClient, req)
	if err != nil {
		return nil, err
	}

	var accounts []model.BankAccount
	for _, company := range companies {
		accounts = append(accounts, company.BankAccounts...)
	}

	c.logger.Debug("Fetched accounts", "companies", len(companies), "accounts", len(accounts))

	return accounts, nil
}

// ListOperations fetches the most recent page of debit operations for the
// given account.
func (c *Client) ListOperations(ctx context.Context, token, accountID string) ([]model.BankOperation, error) {
	req, err := httpx.NewRequest(http.MethodPost, c.baseURL+"/operation-history/"+accountID).
		Auth(httpx.Bearer(token)).
		Body(operationsRequest{
			Category: model.OperationCategoryDebit,
			Records:  operationPageSize,
		}).
		Build()
	if err != nil {
		return nil, err
	}

	operations, err := httpx.SendTyped[[]model.BankOperation](ctx, c.httpClient, req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched operations", "account", accountID, "count", len(operations))

	return operations, nil
}

// Ensure Client implements the BankGateway interface.
var _ service.BankGateway = (*Client)(nil)
