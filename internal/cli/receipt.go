package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReceiptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "receipt PAYMENT_ID",
		Short: "Print the receipt of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 0)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid payment ID %q", args[0])
			}

			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			text, err := l.Services.Payments.Receipt(cmd.Context(), uint(id))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
