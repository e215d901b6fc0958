package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/audit"
	"github.com/TABARC-Code/wp-options-table-auditor/internal/transient"
)

// TransientsOptions holds flags for the transients command.
type TransientsOptions struct {
	*RootOptions
	Database string
	Table    string
	Limit    int
}

// NewTransientsCommand creates the transients command.
func NewTransientsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransientsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "transients",
		Short: "List expired transients that were never purged",
		Long: `Run only the transient expiry scan: find timeout rows whose expiry
epoch is in the past, pair each with its value row, and report exact
per-family counts plus a bounded sample.

Examples:
  wpopt-audit transients --db ./snapshot.db
  wpopt-audit transients --db ./snapshot.db --limit 200 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransients(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite options-table snapshot (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Table, "table", "", "options table name (default wp_options)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, fmt.Sprintf("max expired transients to sample per family (default %d)", audit.DefaultTransientLimit))

	return cmd
}

func runTransients(opts *TransientsOptions, cmd *cobra.Command) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = audit.DefaultTransientLimit
	}

	st, err := openStore(&SnapshotOptions{Database: opts.Database, Table: opts.Table})
	if err != nil {
		return err
	}
	defer st.Close()

	report, err := transient.Scan(cmd.Context(), st, time.Now(), limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "transient scan failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(report, func(w io.Writer) error {
		writeTransientFamily(w, report.Plain)
		writeTransientFamily(w, report.Network)
		return nil
	})
}
