package cli

import (
	"github.com/spf13/cobra"

	"tenant-ledger/internal/storage"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and data directories",
		Long: `Create the database, apply pending migrations and create the photo and
document directories. Running it again on an existing ledger is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			applied, err := l.DB.Migrator().Applied()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := newTable(out)
			header(tw, "VERSION\tNAME\tSTATUS")
			for _, m := range storage.LedgerMigrations() {
				status := "Pending"
				if applied[m.Version] {
					status = "Applied"
				}
				printf(tw, "%s\t%s\t%s\n", m.Version, m.Name, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			okLabel.Fprintf(out, "Ledger ready at %s\n", l.Config.DBPath())
			return nil
		},
	}
}
