package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ledgerline/invoiceflow/internal/cli"
	"github.com/ledgerline/invoiceflow/internal/mailexport"
	"github.com/spf13/cobra"
)

func mailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mail <input> <output>",
		Short: "Decode a payment-notification mail export",
		Long: `Decodes the base64 body of an exported payment-notification mail and
strips its encoding artifacts. Pass "-" as input to read from stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			var raw []byte
			var err error
			if input == "-" {
				raw, err = io.ReadAll(os.Stdin)
			} else {
				raw, err = os.ReadFile(input)
			}
			if err != nil {
				return fmt.Errorf("reading mail export: %w", err)
			}

			if err := mailexport.DecodeToFile(string(raw), output); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("decoded mail saved to " + output))
			return nil
		},
	}
}
