package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationCategory distinguishes debit from credit operations. The banking
// API spells debit "Debet"; the wire value is kept as-is.
type OperationCategory string

// Operation categories as reported by the banking API.
const (
	OperationCategoryDebit  OperationCategory = "Debet"
	OperationCategoryCredit OperationCategory = "Credit"
)

// OperationStatus is the processing status of a bank operation.
type OperationStatus string

// OperationStatusReceived marks a fully executed operation.
const OperationStatusReceived OperationStatus = "Received"

// BankOperation is a single entry from an account's operation history.
type BankOperation struct {
	Executed         time.Time         `json:"executed"`
	ID               string            `json:"id"`
	CompanyID        string            `json:"companyId"`
	Status           OperationStatus   `json:"status"`
	Category         OperationCategory `json:"category"`
	Currency         string            `json:"currency"`
	CounterpartyName string            `json:"contragentName"`
	Purpose          string            `json:"paymentPurpose"`
	Amount           decimal.Decimal   `json:"amount"`
}
