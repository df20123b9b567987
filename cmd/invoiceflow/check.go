package main

import (
	"fmt"

	"github.com/ledgerline/invoiceflow/internal/cli"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe the configured timesheet credentials",
		Long: `Probes the timesheet platform with the configured credentials. This is a
lenient check: any failure, from bad credentials to an unreachable API,
reports as not connected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := timesheetCredentials()
			if err != nil {
				return err
			}

			timesheets, err := newTimesheetGateway(newHTTPClient())
			if err != nil {
				return err
			}

			if timesheets.CheckCredentials(cmd.Context(), username, password) {
				fmt.Println(cli.FormatSuccess("timesheet credentials accepted"))
			} else {
				fmt.Println(cli.FormatError("timesheet credentials rejected or service unreachable"))
			}

			return nil
		},
	}
}
