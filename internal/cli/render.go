package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
	"github.com/TABARC-Code/wp-options-table-auditor/internal/transient"
)

// renderReport returns the text rendering of a full report envelope.
func renderReport(env *ReportEnvelope) func(io.Writer) error {
	return func(w io.Writer) error {
		header := color.New(color.FgCyan, color.Bold).SprintFunc()
		warn := color.New(color.FgYellow).SprintFunc()

		r := env.Report

		fmt.Fprintf(w, "%s\n", header("Options Table Audit"))
		fmt.Fprintf(w, "  run:       %s\n", env.RunID)
		fmt.Fprintf(w, "  generated: %s\n", env.GeneratedAt)
		if env.Site != "" {
			fmt.Fprintf(w, "  site:      %s\n", env.Site)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "%s\n", header("Summary"))
		fmt.Fprintf(w, "  total rows:       %d\n", r.TotalRows)
		fmt.Fprintf(w, "  autoloaded rows:  %d\n", r.AutoloadRows)
		fmt.Fprintf(w, "  autoloaded bytes: %s\n", formatBytes(r.AutoloadBytes))
		fmt.Fprintln(w)

		fmt.Fprintf(w, "%s\n", header(fmt.Sprintf(
			"Autoloaded options at or over %s", formatBytes(r.Config.BigOptionThresholdBytes))))
		if len(r.BigAutoload) == 0 {
			fmt.Fprintln(w, "  none")
		} else {
			fmt.Fprintf(w, "  %s\n", warn(fmt.Sprintf("%d offender(s)", len(r.BigAutoload))))
			writeRows(w, r.BigAutoload)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "%s\n", header(fmt.Sprintf("Top autoloaded options (limit %d)", r.Config.AutoloadTopLimit)))
		writeRows(w, r.AutoloadTop)
		fmt.Fprintln(w)

		fmt.Fprintf(w, "%s\n", header(fmt.Sprintf("Largest options overall (limit %d)", r.Config.LargestLimit)))
		writeRows(w, r.LargestOverall)
		fmt.Fprintln(w)

		fmt.Fprintf(w, "%s\n", header(fmt.Sprintf("Likely orphaned options (limit %d)", r.Config.OrphanLimit)))
		writeOrphans(w, r.Orphans)
		fmt.Fprintln(w)

		fmt.Fprintf(w, "%s\n", header(fmt.Sprintf("Expired transients (sample limit %d per family)", r.Config.TransientLimit)))
		writeTransientFamily(w, r.Transients.Plain)
		writeTransientFamily(w, r.Transients.Network)
		return nil
	}
}

func writeRows(w io.Writer, rows []options.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %10s  %-3s  %s\n", formatBytes(r.SizeBytes), r.Autoload, r.Name)
	}
}

func writeOrphans(w io.Writer, orphans []options.OrphanCandidate) {
	if len(orphans) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for _, o := range orphans {
		fmt.Fprintf(w, "  %10s  %-3s  %s (guessed owner: %s)\n",
			formatBytes(o.SizeBytes), o.Autoload, o.Name, o.PrefixGuess)
	}
}

func writeTransientFamily(w io.Writer, fr transient.FamilyReport) {
	fmt.Fprintf(w, "  %s: %d expired\n", fr.Family, fr.ExpiredCount)
	for _, e := range fr.Sample {
		value := e.ValueName
		if value == "" {
			value = "(value row missing)"
		}
		fmt.Fprintf(w, "    %10s  expired %s  %s\n", formatBytes(e.SizeBytes), e.ExpiredAtUTC, value)
	}
}

// formatBytes renders a byte count with a binary unit, one decimal place
// past the KB boundary.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
