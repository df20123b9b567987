package main

import (
	"fmt"

	"github.com/ledgerline/invoiceflow/internal/cli"
	"github.com/spf13/cobra"
)

func operationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations <account-id>",
		Short: "List recent debit operations for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := bankToken()
			if err != nil {
				return err
			}

			bank, err := newBankGateway(newHTTPClient())
			if err != nil {
				return err
			}

			operations, err := bank.ListOperations(cmd.Context(), token, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Debit operations"))
			for _, op := range operations {
				fmt.Printf("%s  %s  %s %s  %s  %s\n",
					op.ID,
					op.Executed.Format("2006-01-02"),
					op.Amount.StringFixed(2),
					op.Currency,
					op.CounterpartyName,
					cli.SubtleStyle.Render(op.Purpose))
			}

			return nil
		},
	}
}
