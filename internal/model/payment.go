package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a timesheet payment.
type PaymentStatus string

// Payment statuses as reported by the timesheet API.
const (
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusProcessed  PaymentStatus = "PROCESSED"
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusCurrent    PaymentStatus = "CURRENT"
)

// Date is a calendar date serialized as 2006-01-02, the format both REST APIs
// use for day-granularity fields.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a 2006-01-02 string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Company identifies the paying company on the timesheet platform.
type Company struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// Team identifies the contractor's team within a company.
type Team struct {
	Name    string  `json:"name"`
	Company Company `json:"company"`
	ID      int64   `json:"id"`
}

// Timesheet is the billed period attached to a payment.
type Timesheet struct {
	StartDate       Date  `json:"start_date"`
	EndDate         Date  `json:"end_date"`
	BilledMinutes   int64 `json:"billed_minutes"`
	OvertimeMinutes int64 `json:"overtime_minutes"`
}

// TimesheetPayment is one payment record from the timesheet platform.
type TimesheetPayment struct {
	Platform         string          `json:"platform"`
	Status           PaymentStatus   `json:"status"`
	Team             Team            `json:"team"`
	Timesheet        Timesheet       `json:"timeSheet"`
	Amount           decimal.Decimal `json:"amount"`
	WeeklyLimitHours int64           `json:"weeklyLimitHours"`
}
