package invoice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ledgerline/invoiceflow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDetails() Details {
	return Details{
		InvoiceNumber: 42,
		Account: model.BankAccount{
			ID:       "a1",
			Number:   "40702810001234567890",
			Currency: "RUB",
		},
		Operation: model.BankOperation{
			ID:       "op-1",
			Currency: "RUB",
			Amount:   decimal.RequireFromString("123456.78"),
			Executed: time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC),
		},
		Payment: model.TimesheetPayment{
			Timesheet: model.Timesheet{
				// A Wednesday; the invoice period still spans Mon-Sun.
				StartDate: model.NewDate(2024, time.January, 3),
				EndDate:   model.NewDate(2024, time.January, 7),
			},
		},
	}
}

func TestTemplateData(t *testing.T) {
	service := NewService(TextRenderer{}, nil)

	data := service.TemplateData(testDetails())

	assert.Equal(t, map[string]string{
		"accountNumber": "40702810001234567890",
		"invoiceNumber": "42",
		"documentDate":  "10.01.2024",
		"sum":           "123 456.78",
		"longSum":       "123 456.78",
		"fromDate":      "01.01.2024",
		"toDate":        "07.01.2024",
		"currency":      "RUB",
	}, data)
}

type stubSpeller struct{}

func (stubSpeller) Spell(m Money) string {
	return "spelled " + m.Currency
}

func TestTemplateDataUsesSpeller(t *testing.T) {
	service := NewService(TextRenderer{}, stubSpeller{})

	data := service.TemplateData(testDetails())
	assert.Equal(t, "spelled RUB", data["longSum"])
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "invoice.tmpl")
	outputPath := filepath.Join(dir, "invoice.txt")

	require.NoError(t, os.WriteFile(templatePath,
		[]byte("Invoice #{{.invoiceNumber}} for {{.sum}} {{.currency}} ({{.fromDate}}-{{.toDate}})"), 0o600))

	service := NewService(TextRenderer{}, nil)
	require.NoError(t, service.Generate(templatePath, outputPath, testDetails()))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "Invoice #42 for 123 456.78 RUB (01.01.2024-07.01.2024)", string(content))
}

func TestGenerateMissingTemplate(t *testing.T) {
	service := NewService(TextRenderer{}, nil)
	err := service.Generate(filepath.Join(t.TempDir(), "absent.tmpl"), "out.txt", testDetails())
	require.Error(t, err)
}

func TestMatchPayment(t *testing.T) {
	payments := []model.TimesheetPayment{
		{Timesheet: model.Timesheet{StartDate: model.NewDate(2024, time.January, 1)}},
		{Timesheet: model.Timesheet{StartDate: model.NewDate(2024, time.January, 8)}, Platform: "crossover"},
	}

	match, ok := MatchPayment(payments, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "crossover", match.Platform)

	_, ok = MatchPayment(payments, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		from string
		to   string
	}{
		{
			name: "midweek",
			day:  time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			from: "2024-01-01",
			to:   "2024-01-07",
		},
		{
			name: "monday",
			day:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			from: "2024-01-01",
			to:   "2024-01-07",
		},
		{
			name: "sunday",
			day:  time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
			from: "2024-01-01",
			to:   "2024-01-07",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.from, StartOfWeek(tt.day).Format("2006-01-02"))
			assert.Equal(t, tt.to, EndOfWeek(tt.day).Format("2006-01-02"))
		})
	}
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"0", "0.00"},
		{"7.5", "7.50"},
		{"1234.5", "1 234.50"},
		{"123456.78", "123 456.78"},
		{"1234567", "1 234 567.00"},
		{"-1234.5", "-1 234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			m := Money{Value: decimal.RequireFromString(tt.value), Currency: "RUB"}
			assert.Equal(t, tt.want, m.Format())
		})
	}
}
