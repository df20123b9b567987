package main

import (
	"fmt"
	"time"

	"github.com/ledgerline/invoiceflow/internal/cli"
	"github.com/spf13/cobra"
)

func paymentsCmd() *cobra.Command {
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List timesheet payments in a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := timesheetCredentials()
			if err != nil {
				return err
			}

			to := time.Now()
			if toFlag != "" {
				if to, err = time.Parse("2006-01-02", toFlag); err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
			}
			from := to.AddDate(0, -3, 0)
			if fromFlag != "" {
				if from, err = time.Parse("2006-01-02", fromFlag); err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
			}

			timesheets, err := newTimesheetGateway(newHTTPClient())
			if err != nil {
				return err
			}

			token, err := timesheets.Authenticate(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			payments, err := timesheets.ListPayments(cmd.Context(), token, from, to)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Timesheet payments"))
			for _, payment := range payments {
				fmt.Printf("%s - %s  %s  %s  %dm billed  %s\n",
					payment.Timesheet.StartDate,
					payment.Timesheet.EndDate,
					payment.Amount.StringFixed(2),
					payment.Team.Company.Name,
					payment.Timesheet.BilledMinutes,
					cli.SubtleStyle.Render(string(payment.Status)))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "range start (2006-01-02, default: 3 months ago)")
	cmd.Flags().StringVar(&toFlag, "to", "", "range end (2006-01-02, default: today)")

	return cmd
}
