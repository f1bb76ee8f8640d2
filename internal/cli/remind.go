package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tenant-ledger/internal/models"
)

func newRemindCmd(opts *rootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Show expired and soon-to-expire tenant documents",
		Long: `Show documents of active tenants that have expired or expire within the
reminder window (reminders.window_days, or --days).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			svc := l.Services.Reminders
			if days < 0 {
				days = svc.WindowDays()
			}

			now := time.Now()
			r, err := svc.CheckWithin(cmd.Context(), now, days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if r.Empty() {
				okLabel.Fprintln(out, "No documents are expired or expiring soon.")
				return nil
			}

			for i := range r.Expired {
				d := &r.Expired[i]
				errorLabel.Fprintf(out, "EXPIRED   %s - %s (expired %s)\n",
					documentOwner(d), d.DocType, models.FormatDate(d.ExpiryDate, ""))
			}
			for i := range r.ExpiringSoon {
				d := &r.ExpiringSoon[i]
				warnLabel.Fprintf(out, "EXPIRING  %s - %s (%s, %d days left)\n",
					documentOwner(d), d.DocType, models.FormatDate(d.ExpiryDate, ""), d.DaysUntilExpiry(now))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", -1, "Reminder window in days (default from configuration)")
	return cmd
}

func documentOwner(d *models.Document) string {
	if d.Tenant != nil {
		return d.Tenant.FullName
	}
	return fmt.Sprintf("Tenant #%d", d.TenantID)
}
