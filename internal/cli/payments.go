package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tenant-ledger/internal/models"
)

func newPaymentsCmd(opts *rootOptions) *cobra.Command {
	var tenantID uint

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List rent payments, newest first",
		Long: `List rent payments, newest first. With --tenant, list one tenant's
payment history followed by its totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			ctx := cmd.Context()
			svc := l.Services.Payments
			out := cmd.OutOrStdout()

			if tenantID == 0 {
				payments, err := svc.List(ctx)
				if err != nil {
					return err
				}
				return printPayments(out, svc.Currency(), payments)
			}

			history, err := svc.History(ctx, tenantID)
			if err != nil {
				return err
			}
			if err := printPayments(out, svc.Currency(), history.Payments); err != nil {
				return err
			}
			s := history.Summary
			fmt.Fprintf(out, "\n%s: %d payments, rent %s, late fees %s, total %s\n",
				history.Tenant.FullName, s.Count,
				models.FormatCurrency(svc.Currency(), s.TotalRent),
				models.FormatCurrency(svc.Currency(), s.TotalLateFee),
				models.FormatCurrency(svc.Currency(), s.Total()))
			return nil
		},
	}

	cmd.Flags().UintVar(&tenantID, "tenant", 0, "Only list payments of this tenant ID")
	return cmd
}

func printPayments(w io.Writer, symbol string, payments []models.Payment) error {
	tw := newTable(w)
	header(tw, "ID\tDATE\tTENANT\tMONTH\tMETHOD\tAMOUNT\tLATE FEE\tTOTAL\tRECEIPT")
	for i := range payments {
		p := &payments[i]
		tenant := fmt.Sprintf("#%d", p.TenantID)
		if p.Tenant != nil {
			tenant = p.Tenant.FullName
		}
		printf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, models.FormatDate(&p.PaymentDate, ""), tenant, p.MonthYear, p.Method,
			models.FormatCurrency(symbol, p.Amount),
			models.FormatCurrency(symbol, p.LateFee),
			models.FormatCurrency(symbol, p.Total()),
			p.ReceiptNo)
	}
	return tw.Flush()
}
