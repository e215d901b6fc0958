package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
	"github.com/TABARC-Code/wp-options-table-auditor/internal/orphan"
	"github.com/TABARC-Code/wp-options-table-auditor/internal/transient"
)

// RowQuerier is the read-only row-store capability the audit consumes.
// Implemented by the SQLite adapter in internal/store.
type RowQuerier interface {
	TopBySize(ctx context.Context, autoloadOnly bool, limit int) ([]options.Row, error)
	CountRows(ctx context.Context) (int64, error)
	AutoloadStats(ctx context.Context) (count, totalBytes int64, err error)
	CandidateRows(ctx context.Context, excludePrefixes, excludeNames []string, limit int) ([]options.Row, error)
	transient.Querier
}

// Report is the complete outcome of one audit pass. It is a plain value:
// constructed fresh per run, serializable as-is, and never mutated after
// assembly.
type Report struct {
	// Config echoes the effective (normalized) tunables the pass used.
	Config Config `json:"config"`

	// Summary aggregates. Exact, never derived from truncated samples.
	TotalRows     int64 `json:"total_rows"`
	AutoloadRows  int64 `json:"autoload_rows"`
	AutoloadBytes int64 `json:"autoload_bytes"`

	// AutoloadTop is the size ranking of autoloaded rows.
	AutoloadTop []options.Row `json:"autoload_top"`

	// BigAutoload is the subset of AutoloadTop at or above the threshold.
	BigAutoload []options.Row `json:"big_autoload"`

	// LargestOverall is the size ranking regardless of autoload flag.
	LargestOverall []options.Row `json:"largest_overall"`

	// Orphans lists rows whose guessed owner matches nothing installed.
	Orphans []options.OrphanCandidate `json:"orphans"`

	// Transients is the expired-transient scan for both families.
	Transients transient.Report `json:"transients"`
}

// Auditor runs audit passes against injected collaborators.
type Auditor struct {
	rows    RowQuerier
	markers orphan.MarkerSource

	// now is the clock used for transient expiry. Overridable in tests.
	now func() time.Time
}

// New creates an Auditor over a row store and a component registry.
func New(rows RowQuerier, markers orphan.MarkerSource) *Auditor {
	return &Auditor{
		rows:    rows,
		markers: markers,
		now:     time.Now,
	}
}

// Run performs exactly one audit pass with the given tunables and returns
// the assembled report. cfg is normalized first; the report echoes the
// values actually used.
func (a *Auditor) Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg = cfg.Normalized()
	report := &Report{Config: cfg}

	totalRows, err := a.rows.CountRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}
	report.TotalRows = totalRows

	autoCount, autoBytes, err := a.rows.AutoloadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("autoload stats: %w", err)
	}
	report.AutoloadRows = autoCount
	report.AutoloadBytes = autoBytes

	report.AutoloadTop, err = a.rows.TopBySize(ctx, true, cfg.AutoloadTopLimit)
	if err != nil {
		return nil, fmt.Errorf("rank autoloaded rows: %w", err)
	}
	report.BigAutoload = filterBySize(report.AutoloadTop, cfg.BigOptionThresholdBytes)

	report.LargestOverall, err = a.rows.TopBySize(ctx, false, cfg.LargestLimit)
	if err != nil {
		return nil, fmt.Errorf("rank all rows: %w", err)
	}

	report.Orphans, err = a.findOrphans(ctx, cfg.OrphanLimit)
	if err != nil {
		return nil, err
	}

	report.Transients, err = transient.Scan(ctx, a.rows, a.now(), cfg.TransientLimit)
	if err != nil {
		return nil, fmt.Errorf("scan transients: %w", err)
	}

	slog.Debug("audit pass complete",
		"total_rows", report.TotalRows,
		"autoload_rows", report.AutoloadRows,
		"big_autoload", len(report.BigAutoload),
		"orphans", len(report.Orphans),
		"expired_transients", report.Transients.TotalExpired(),
	)
	return report, nil
}

// findOrphans queries the bounded candidate pool and runs the heuristic.
func (a *Auditor) findOrphans(ctx context.Context, limit int) ([]options.OrphanCandidate, error) {
	candidates, err := a.rows.CandidateRows(ctx,
		options.OrphanExcludedPrefixes(),
		[]string{options.CronKey},
		orphan.CandidateMultiplier*limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query orphan candidates: %w", err)
	}
	return orphan.NewEngine(a.markers).Flag(candidates, limit), nil
}

// filterBySize is the threshold classifier: a pure filter over the already
// fetched ranking, no re-query. An empty result is a valid "zero offenders"
// outcome.
func filterBySize(rows []options.Row, threshold int64) []options.Row {
	out := []options.Row{}
	for _, r := range rows {
		if r.SizeBytes >= threshold {
			out = append(out, r)
		}
	}
	return out
}
