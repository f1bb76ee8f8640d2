package cli

import (
	"github.com/spf13/cobra"

	"tenant-ledger/internal/models"
)

func newTenantsCmd(opts *rootOptions) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			svc := l.Services.Tenants
			list := svc.List
			if activeOnly {
				list = svc.ListActive
			}
			tenants, err := list(cmd.Context())
			if err != nil {
				return err
			}

			symbol := l.Config.CurrencySymbol
			tw := newTable(cmd.OutOrStdout())
			header(tw, "ID\tNAME\tPHONE\tRENT\tDEPOSIT\tMOVE IN\tSTATUS")
			for i := range tenants {
				t := &tenants[i]
				deposit := models.FormatCurrency(symbol, t.SecurityDeposit)
				if t.DepositRefunded {
					deposit += " (refunded)"
				}
				printf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.FullName, t.Phone,
					models.FormatCurrency(symbol, t.RentAmount), deposit,
					models.FormatDate(&t.MoveInDate, ""), t.Status())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only list active tenants")
	return cmd
}
