package main

import (
	"fmt"

	"github.com/ledgerline/invoiceflow/internal/cli"
	"github.com/spf13/cobra"
)

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List bank accounts visible to the configured token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := bankToken()
			if err != nil {
				return err
			}

			bank, err := newBankGateway(newHTTPClient())
			if err != nil {
				return err
			}

			accounts, err := bank.ListAccounts(cmd.Context(), token)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Bank accounts"))
			for _, account := range accounts {
				fmt.Printf("%s  %s  %s %s  %s\n",
					account.ID,
					account.Number,
					account.Balance.StringFixed(2),
					account.Currency,
					cli.SubtleStyle.Render(string(account.Category)))
			}

			return nil
		},
	}
}
