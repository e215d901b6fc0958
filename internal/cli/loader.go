package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/registry"
	"github.com/TABARC-Code/wp-options-table-auditor/internal/store"
)

// SnapshotOptions are the flags shared by every command that opens a
// snapshot and needs to know what is installed.
type SnapshotOptions struct {
	Database   string
	Table      string
	PluginsDir string
	Manifest   string
}

// addSnapshotFlags registers the shared flags on a command.
func addSnapshotFlags(cmd *cobra.Command, opts *SnapshotOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite options-table snapshot (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Table, "table", "", "options table name (default wp_options)")
	cmd.Flags().StringVar(&opts.PluginsDir, "plugins-dir", "", "path to the installed plugins directory")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "path to a YAML manifest of installed plugins")
}

// openStore opens the snapshot read-only.
func openStore(opts *SnapshotOptions) (*store.Store, error) {
	s, err := store.Open(opts.Database, opts.Table)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open snapshot", err)
	}
	return s, nil
}

// buildRegistry assembles the installed-component markers from whichever
// sources were given. No source at all is allowed; the orphan heuristic
// then degrades to flagging everything classifiable, and we warn so the
// operator knows why the orphan list is noisy.
func buildRegistry(opts *SnapshotOptions) (*registry.Registry, error) {
	reg := registry.New()
	if opts.PluginsDir != "" {
		if err := reg.ScanPluginsDir(opts.PluginsDir); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to scan plugins directory", err)
		}
	}
	if opts.Manifest != "" {
		if err := reg.LoadManifest(opts.Manifest); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load plugin manifest", err)
		}
	}
	if reg.Len() == 0 {
		slog.Warn("no installed-plugin markers; every classifiable prefix will be flagged as orphaned",
			"hint", "pass --plugins-dir or --manifest")
	}
	return reg, nil
}
