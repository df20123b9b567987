// Package model defines the domain values exchanged with the external APIs.
// Every value here is a read-only snapshot of a server response at fetch time;
// nothing mutates them after construction.
package model

import "github.com/shopspring/decimal"

// AccountCategory classifies a bank account.
type AccountCategory string

// Account categories as reported by the banking API.
const (
	AccountCategoryChecking AccountCategory = "CheckingAccount"
	AccountCategoryTransit  AccountCategory = "TransitAccount"
)

// BankAccount is a single account inside a company record.
type BankAccount struct {
	ID       string          `json:"id"`
	Name     string          `json:"accountName"`
	Number   string          `json:"number"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Category AccountCategory `json:"category"`
}
