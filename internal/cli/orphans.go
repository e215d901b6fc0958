package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/audit"
	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
	"github.com/TABARC-Code/wp-options-table-auditor/internal/orphan"
)

// OrphansOptions holds flags for the orphans command.
type OrphansOptions struct {
	*RootOptions
	SnapshotOptions
	Limit int
}

// NewOrphansCommand creates the orphans command.
func NewOrphansCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrphansOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List options likely left behind by uninstalled plugins",
		Long: `Run only the orphan heuristic: guess each large option's owning
component from its key prefix and flag rows whose guess matches nothing
installed.

The heuristic is lexical and accepts both false positives and false
negatives; treat the output as leads to investigate, not a deletion list.

Examples:
  wpopt-audit orphans --db ./snapshot.db --plugins-dir ./wp-content/plugins
  wpopt-audit orphans --db ./snapshot.db --manifest plugins.yaml --limit 20`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrphans(opts, cmd)
		},
	}

	addSnapshotFlags(cmd, &opts.SnapshotOptions)
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, fmt.Sprintf("max rows to flag (default %d)", audit.DefaultOrphanLimit))

	return cmd
}

func runOrphans(opts *OrphansOptions, cmd *cobra.Command) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = audit.DefaultOrphanLimit
	}

	st, err := openStore(&opts.SnapshotOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	reg, err := buildRegistry(&opts.SnapshotOptions)
	if err != nil {
		return err
	}

	candidates, err := st.CandidateRows(cmd.Context(),
		options.OrphanExcludedPrefixes(),
		[]string{options.CronKey},
		orphan.CandidateMultiplier*limit,
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to query orphan candidates", err)
	}
	flagged := orphan.NewEngine(reg).Flag(candidates, limit)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(flagged, func(w io.Writer) error {
		writeOrphans(w, flagged)
		return nil
	})
}
