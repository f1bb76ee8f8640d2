// Package cli is the tenant-ledger command line. Without a sub-command it
// opens the desktop application; the sub-commands work on the same database
// without a display.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tenant-ledger/internal/apperrors"
	"tenant-ledger/internal/config"
	"tenant-ledger/internal/ledger"
	"tenant-ledger/internal/logger"
	"tenant-ledger/internal/shutdown"
)

// GUIFunc runs the desktop application on an opened ledger.
type GUIFunc func(l *ledger.Ledger) error

var (
	okLabel    = color.New(color.FgGreen)
	warnLabel  = color.New(color.FgYellow)
	errorLabel = color.New(color.FgRed)
)

// ErrNoGUI is returned by the gui command when the binary was built without one.
var ErrNoGUI = errors.New("this build has no graphical interface")

type rootOptions struct {
	configFile string
	dataDir    string
	dbFile     string
	logLevel   string
	gui        GUIFunc
}

// NewRootCommand builds the command tree. gui runs when no sub-command is
// given and for the gui sub-command.
func NewRootCommand(gui GUIFunc) *cobra.Command {
	opts := &rootOptions{gui: gui}

	cmd := &cobra.Command{
		Use:   "tenant-ledger",
		Short: "Track tenants, rent payments and documents",
		Long: `Tenant Ledger keeps a landlord's tenants, rent payments and tenant documents
in a local SQLite database.

Run without a command to open the desktop application.

Examples:
  # Create the database and data directories
  tenant-ledger init

  # List tenants
  tenant-ledger tenants

  # Show documents expiring in the next two weeks
  tenant-ledger remind --days 14

  # Back up the ledger
  tenant-ledger export --out backup.yaml`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          opts.runGUI,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a TOML configuration file (default "+config.DefaultConfigFile+" when present)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory holding the database and attachments")
	flags.StringVar(&opts.dbFile, "db", "", "SQLite database file, or :memory:")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warning or error")

	cmd.AddCommand(
		newGUICmd(opts),
		newInitCmd(opts),
		newTenantsCmd(opts),
		newPaymentsCmd(opts),
		newRemindCmd(opts),
		newReceiptCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(gui GUIFunc) int {
	if err := NewRootCommand(gui).Execute(); err != nil {
		errorLabel.Fprintf(os.Stderr, "Error: %s\n", apperrors.Detail(err))
		return 1
	}
	return 0
}

func newGUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop application",
		Args:  cobra.NoArgs,
		RunE:  opts.runGUI,
	}
}

func (o *rootOptions) runGUI(cmd *cobra.Command, args []string) error {
	if o.gui == nil {
		return ErrNoGUI
	}
	l, err := o.open()
	if err != nil {
		return err
	}
	defer l.Close()
	return o.gui(l)
}

// loadConfig applies .env, the configuration file and the command line
// flags, in that order.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	config.LoadDotEnv()

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.dbFile != "" {
		cfg.DBFile = o.dbFile
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, cfg.Validate()
}

// open loads the configuration and opens the ledger. The caller closes it.
func (o *rootOptions) open() (*ledger.Ledger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	log, closer, err := logger.New(logger.Options{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		File:  cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	sm := shutdown.NewManager(log)
	sm.Register("log", shutdown.Closer("log", closer, log))

	l, err := ledger.Open(cfg, log, sm)
	if err != nil {
		sm.Shutdown()
		return nil, err
	}
	return l, nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func header(w io.Writer, cols string) {
	fmt.Fprintln(w, cols)
}

func printf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}
