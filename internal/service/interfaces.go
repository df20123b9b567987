// Package service defines the interfaces the composition root wires the
// gateways and stores through.
package service

import (
	"context"
	"time"

	"github.com/ledgerline/invoiceflow/internal/model"
)

// BankGateway lists accounts and operations from the banking API. The bearer
// token is owned by the caller and passed in on every call.
type BankGateway interface {
	ListAccounts(ctx context.Context, token string) ([]model.BankAccount, error)
	ListOperations(ctx context.Context, token, accountID string) ([]model.BankOperation, error)
}

// TimesheetGateway authenticates against and queries the timesheet platform.
type TimesheetGateway interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	// CheckCredentials is a lenient probe: every failure mode becomes false.
	CheckCredentials(ctx context.Context, username, password string) bool
	ListPayments(ctx context.Context, token string, from, to time.Time) ([]model.TimesheetPayment, error)
}

// Settings persists workflow state between runs.
type Settings interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	NextInvoiceNumber(ctx context.Context) (int, error)
	Close() error
}
