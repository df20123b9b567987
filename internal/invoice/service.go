package invoice

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/template"
	"time"

	"github.com/ledgerline/invoiceflow/internal/model"
)

// documentDateLayout is the date format the invoice template expects.
const documentDateLayout = "02.01.2006"

// Renderer merges template data into a document. The real document engine is
// an external collaborator behind this interface; TextRenderer is the
// built-in plain-text implementation.
type Renderer interface {
	Render(templatePath string, data map[string]string, output io.Writer) error
}

// TextRenderer renders text/template files.
type TextRenderer struct{}

// Render implements Renderer.
func (TextRenderer) Render(templatePath string, data map[string]string, output io.Writer) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	return tmpl.Execute(output, data)
}

// Details are the selections the invoice is generated from: one account, one
// debit operation, and the timesheet payment covering the billed week.
type Details struct {
	Account       model.BankAccount
	Operation     model.BankOperation
	Payment       model.TimesheetPayment
	InvoiceNumber int
}

// Service builds invoice documents from selected details.
type Service struct {
	renderer Renderer
	speller  Speller
	logger   *slog.Logger
}

// NewService creates an invoice service. A nil speller falls back to the
// numeric format for the spelled-out amount.
func NewService(renderer Renderer, speller Speller) *Service {
	return &Service{
		renderer: renderer,
		speller:  speller,
		logger:   slog.Default().With("component", "invoice"),
	}
}

// TemplateData builds the key/value mapping consumed by the document
// template.
func (s *Service) TemplateData(d Details) map[string]string {
	money := Money{Value: d.Operation.Amount, Currency: d.Operation.Currency}

	longSum := money.Format()
	if s.speller != nil {
		longSum = s.speller.Spell(money)
	}

	weekDate := d.Payment.Timesheet.StartDate.Time
	from := StartOfWeek(weekDate)
	to := EndOfWeek(weekDate)

	return map[string]string{
		"accountNumber": d.Account.Number,
		"invoiceNumber": strconv.Itoa(d.InvoiceNumber),
		"documentDate":  d.Operation.Executed.Format(documentDateLayout),
		"sum":           money.Format(),
		"longSum":       longSum,
		"fromDate":      from.Format(documentDateLayout),
		"toDate":        to.Format(documentDateLayout),
		"currency":      d.Operation.Currency,
	}
}

// Generate renders the invoice for the given details into outputPath.
func (s *Service) Generate(templatePath, outputPath string, d Details) error {
	if _, err := os.Stat(templatePath); err != nil {
		return fmt.Errorf("template file: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() { _ = out.Close() }()

	data := s.TemplateData(d)
	if err := s.renderer.Render(templatePath, data, out); err != nil {
		return fmt.Errorf("rendering invoice: %w", err)
	}

	s.logger.Info("Invoice generated", "output", outputPath, "invoice_number", d.InvoiceNumber)

	return nil
}

// MatchPayment finds the payment whose billing period starts on the given
// week date. Payment/operation alignment is by period start date only; the
// APIs share no common identifier.
func MatchPayment(payments []model.TimesheetPayment, weekStart time.Time) (model.TimesheetPayment, bool) {
	target := weekStart.Format("2006-01-02")
	for _, payment := range payments {
		if payment.Timesheet.StartDate.Format("2006-01-02") == target {
			return payment, true
		}
	}
	return model.TimesheetPayment{}, false
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, 1-weekday)
}

// EndOfWeek returns the Sunday of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}
