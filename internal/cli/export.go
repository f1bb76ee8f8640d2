package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a YAML backup of the whole ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.open()
			if err != nil {
				return err
			}
			defer l.Close()

			if outFile == "" || outFile == "-" {
				return l.Services.Exporter.Export(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(outFile)
			if err != nil {
				return errors.Wrap(err, "create backup file")
			}
			if err := l.Services.Exporter.Export(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, "close backup file")
			}

			okLabel.Fprintf(cmd.ErrOrStderr(), "Backup written to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file (default stdout)")
	return cmd
}
