package main

import (
	"fmt"
	"time"

	"github.com/ledgerline/invoiceflow/internal/browser"
	"github.com/ledgerline/invoiceflow/internal/cli"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func timesheetCmd() *cobra.Command {
	var weekFlag, outputFlag string

	cmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Capture a screenshot of the weekly timesheet dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := timesheetCredentials()
			if err != nil {
				return err
			}

			week, err := parseWeekFlag(weekFlag)
			if err != nil {
				return err
			}

			output := outputFlag
			if output == "" {
				output = week.Format("2006-01-02") + ".png"
			}

			session := newCaptureSession()
			creds := browser.Credentials{Username: username, Password: password}

			done := make(chan error, 1)
			go func() {
				done <- session.Capture(cmd.Context(), creds, week, output)
			}()

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("capturing timesheet"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionClearOnFinish(),
			)

			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case err := <-done:
					_ = bar.Finish()
					if err != nil {
						fmt.Println(cli.FormatError("screenshot capture failed"))
						return err
					}
					fmt.Println(cli.FormatSuccess("screenshot saved to " + output))
					return nil
				case <-ticker.C:
					_ = bar.Add(1)
				}
			}
		},
	}

	cmd.Flags().StringVar(&weekFlag, "week", "", "week date (2006-01-02, default: this week's Monday)")
	cmd.Flags().StringVar(&outputFlag, "output", "", "output file (default: <week>.png)")

	return cmd
}
