package cli

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/audit"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	SnapshotOptions
	Site       string
	ConfigFile string
	Tunables   audit.Config
}

// ReportEnvelope is what the report command emits: the audit report plus
// run metadata. The metadata lives here, not in the core: the engine knows
// nothing about sites or run identity.
type ReportEnvelope struct {
	RunID       string        `json:"run_id"`
	GeneratedAt string        `json:"generated_at"`
	Site        string        `json:"site,omitempty"`
	Report      *audit.Report `json:"report"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a full audit pass and print the report",
		Long: `Run one complete audit pass over the snapshot: summary counts, the
autoload and overall size rankings, the big-autoload offenders, likely
orphans, and expired transients.

Limits and the size threshold can come from flags or a YAML config file;
flags win. Out-of-range values are clamped to safe defaults, never
rejected.

Examples:
  wpopt-audit report --db ./snapshot.db --plugins-dir ./wp-content/plugins
  wpopt-audit report --db ./snapshot.db --manifest plugins.yaml --threshold 131072
  wpopt-audit report --db ./snapshot.db --table wp_2_options --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	addSnapshotFlags(cmd, &opts.SnapshotOptions)
	cmd.Flags().StringVar(&opts.Site, "site", "", "site label to attach to the report")
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to a YAML config file of tunables")
	addTunableFlags(cmd, &opts.Tunables)

	return cmd
}

// addTunableFlags registers the five audit tunables. Zero means "use the
// config file value, or the default".
func addTunableFlags(cmd *cobra.Command, cfg *audit.Config) {
	cmd.Flags().IntVar(&cfg.AutoloadTopLimit, "autoload-top", 0, "max autoloaded rows to rank")
	cmd.Flags().IntVar(&cfg.LargestLimit, "largest", 0, "max rows in the overall ranking")
	cmd.Flags().IntVar(&cfg.OrphanLimit, "orphan-limit", 0, "max orphan rows to flag")
	cmd.Flags().IntVar(&cfg.TransientLimit, "transient-limit", 0, "max expired transients to sample per family")
	cmd.Flags().Int64Var(&cfg.BigOptionThresholdBytes, "threshold", 0, "big-autoload size threshold in bytes")
}

// resolveConfig layers flag values over the config file. A tunable set on
// the command line (non-zero) wins over the file.
func resolveConfig(configFile string, flags audit.Config) (audit.Config, error) {
	cfg := flags
	if configFile == "" {
		return cfg, nil
	}
	fileCfg, err := audit.LoadConfig(configFile)
	if err != nil {
		return audit.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if cfg.AutoloadTopLimit == 0 {
		cfg.AutoloadTopLimit = fileCfg.AutoloadTopLimit
	}
	if cfg.LargestLimit == 0 {
		cfg.LargestLimit = fileCfg.LargestLimit
	}
	if cfg.OrphanLimit == 0 {
		cfg.OrphanLimit = fileCfg.OrphanLimit
	}
	if cfg.TransientLimit == 0 {
		cfg.TransientLimit = fileCfg.TransientLimit
	}
	if cfg.BigOptionThresholdBytes == 0 {
		cfg.BigOptionThresholdBytes = fileCfg.BigOptionThresholdBytes
	}
	return cfg, nil
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	cfg, err := resolveConfig(opts.ConfigFile, opts.Tunables)
	if err != nil {
		return err
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

	report, err := audit.New(st, reg).Run(cmd.Context(), cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "audit failed", err)
	}

	envelope := &ReportEnvelope{
		RunID:       uuid.Must(uuid.NewV7()).String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Site:        opts.Site,
		Report:      report,
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(envelope, renderReport(envelope))
}
