package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ledgerline/invoiceflow/internal/browser"
	"github.com/ledgerline/invoiceflow/internal/cli"
	"github.com/ledgerline/invoiceflow/internal/common"
	"github.com/ledgerline/invoiceflow/internal/invoice"
	"github.com/ledgerline/invoiceflow/internal/model"
	"github.com/spf13/cobra"
)

// lastAccountKey remembers the account used for the previous invoice.
const lastAccountKey = "invoice.last_account"

func invoiceCmd() *cobra.Command {
	var (
		accountFlag    string
		operationFlag  string
		weekFlag       string
		templateFlag   string
		docOutputFlag  string
		shotOutputFlag string
	)

	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Generate the weekly invoice document and timesheet screenshot",
		Long: `Generates both invoice artifacts for one billed week: the invoice document
rendered from a template, and a screenshot of the timesheet dashboard. The
two run concurrently and report success or failure independently.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInvoice(cmd.Context(), invoiceOptions{
				accountID:   accountFlag,
				operationID: operationFlag,
				week:        weekFlag,
				template:    templateFlag,
				docOutput:   docOutputFlag,
				shotOutput:  shotOutputFlag,
			})
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "bank account id (default: account used last time)")
	cmd.Flags().StringVar(&operationFlag, "operation", "", "bank operation id of the incoming payment")
	cmd.Flags().StringVar(&weekFlag, "week", "", "billed week (2006-01-02, default: this week's Monday)")
	cmd.Flags().StringVar(&templateFlag, "template", "", "invoice template file")
	cmd.Flags().StringVar(&docOutputFlag, "output-doc", "invoice.txt", "invoice document output file")
	cmd.Flags().StringVar(&shotOutputFlag, "output-screenshot", "timesheet.png", "screenshot output file")
	_ = cmd.MarkFlagRequired("operation")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

type invoiceOptions struct {
	accountID   string
	operationID string
	week        string
	template    string
	docOutput   string
	shotOutput  string
}

func runInvoice(ctx context.Context, opts invoiceOptions) error {
	token, err := bankToken()
	if err != nil {
		return err
	}
	username, password, err := timesheetCredentials()
	if err != nil {
		return err
	}
	week, err := parseWeekFlag(opts.week)
	if err != nil {
		return err
	}

	settings, err := openSettings()
	if err != nil {
		return err
	}
	defer func() { _ = settings.Close() }()

	accountID := opts.accountID
	if accountID == "" {
		accountID, err = settings.Get(ctx, lastAccountKey)
		if err != nil {
			return fmt.Errorf("no --account given and none remembered: %w", err)
		}
	}

	httpClient := newHTTPClient()
	bank, err := newBankGateway(httpClient)
	if err != nil {
		return err
	}
	timesheets, err := newTimesheetGateway(httpClient)
	if err != nil {
		return err
	}

	// Gather the selections the document is built from.
	accounts, err := bank.ListAccounts(ctx, token)
	if err != nil {
		return err
	}
	account, err := findAccount(accounts, accountID)
	if err != nil {
		return err
	}

	operations, err := bank.ListOperations(ctx, token, account.ID)
	if err != nil {
		return err
	}
	operation, err := findOperation(operations, opts.operationID)
	if err != nil {
		return err
	}

	sessionToken, err := timesheets.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	payments, err := timesheets.ListPayments(ctx, sessionToken, week.AddDate(0, -1, 0), week.AddDate(0, 0, 7))
	if err != nil {
		return err
	}
	payment, ok := invoice.MatchPayment(payments, invoice.StartOfWeek(week))
	if !ok {
		return fmt.Errorf("no timesheet payment starts on %s", invoice.StartOfWeek(week).Format("2006-01-02"))
	}

	invoiceNumber, err := settings.NextInvoiceNumber(ctx)
	if err != nil {
		return err
	}

	details := invoice.Details{
		InvoiceNumber: invoiceNumber,
		Account:       account,
		Operation:     operation,
		Payment:       payment,
	}

	// The document and the screenshot are independent artifacts; generate
	// them concurrently and report each on its own.
	var wg sync.WaitGroup
	var docErr, shotErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		service := invoice.NewService(invoice.TextRenderer{}, nil)
		docErr = service.Generate(opts.template, opts.docOutput, details)
	}()
	go func() {
		defer wg.Done()
		session := newCaptureSession()
		creds := browser.Credentials{Username: username, Password: password}
		shotErr = session.Capture(ctx, creds, week, opts.shotOutput)
	}()
	wg.Wait()

	if docErr != nil {
		fmt.Println(cli.FormatError("invoice document failed: " + docErr.Error()))
	} else {
		fmt.Println(cli.FormatSuccess("invoice document saved to " + opts.docOutput))
	}
	if shotErr != nil {
		fmt.Println(cli.FormatError("timesheet screenshot failed: " + shotErr.Error()))
	} else {
		fmt.Println(cli.FormatSuccess("timesheet screenshot saved to " + opts.shotOutput))
	}

	if docErr == nil && shotErr == nil {
		if err := settings.Set(ctx, lastAccountKey, account.ID); err != nil {
			return err
		}
		return nil
	}

	return errors.Join(docErr, shotErr)
}

func findAccount(accounts []model.BankAccount, id string) (model.BankAccount, error) {
	for _, account := range accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return model.BankAccount{}, fmt.Errorf("account %q: %w", id, common.ErrNotFound)
}

func findOperation(operations []model.BankOperation, id string) (model.BankOperation, error) {
	for _, operation := range operations {
		if operation.ID == id {
			return operation, nil
		}
	}
	return model.BankOperation{}, fmt.Errorf("operation %q: %w", id, common.ErrNotFound)
}
