package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
)

// sizeExpr measures the raw stored value in bytes. CAST to BLOB first so
// LENGTH counts bytes, not UTF-8 characters.
const sizeExpr = "LENGTH(CAST(option_value AS BLOB))"

// TopBySize returns up to limit rows ordered by descending byte size.
// When autoloadOnly is set, only rows flagged autoload = 'yes' are ranked.
// Ties break on option_name so results are stable across runs.
func (s *Store) TopBySize(ctx context.Context, autoloadOnly bool, limit int) ([]options.Row, error) {
	where := ""
	params := []any{}
	if autoloadOnly {
		where = " WHERE autoload = ?"
		params = append(params, options.AutoloadYes)
	}
	params = append(params, limit)

	query := fmt.Sprintf(`
		SELECT option_name, %s AS size_bytes, autoload
		FROM %s%s
		ORDER BY size_bytes DESC, option_name ASC
		LIMIT ?
	`, sizeExpr, s.table, where)

	return s.queryRows(ctx, query, params...)
}

// CountRows returns the total number of rows in the table.
func (s *Store) CountRows(ctx context.Context) (int64, error) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

// AutoloadStats returns the exact count and total byte weight of autoloaded
// rows. These are aggregate queries, never derived from a truncated sample.
func (s *Store) AutoloadStats(ctx context.Context) (count, totalBytes int64, err error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(%s), 0)
		FROM %s
		WHERE autoload = ?
	`, sizeExpr, s.table)

	if err := s.db.QueryRowContext(ctx, query, options.AutoloadYes).Scan(&count, &totalBytes); err != nil {
		return 0, 0, fmt.Errorf("autoload stats: %w", err)
	}
	return count, totalBytes, nil
}

// CandidateRows returns up to limit rows ordered by descending size,
// skipping any row whose name starts with one of excludePrefixes or equals
// one of excludeNames. This feeds the orphan heuristic, which wants the
// heaviest non-transient, non-scheduler rows first.
func (s *Store) CandidateRows(ctx context.Context, excludePrefixes, excludeNames []string, limit int) ([]options.Row, error) {
	var conds []string
	var params []any
	for _, p := range excludePrefixes {
		conds = append(conds, `option_name NOT LIKE ? ESCAPE '\'`)
		params = append(params, escapeLike(p)+"%")
	}
	for _, n := range excludeNames {
		conds = append(conds, "option_name <> ?")
		params = append(params, n)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	params = append(params, limit)

	query := fmt.Sprintf(`
		SELECT option_name, %s AS size_bytes, autoload
		FROM %s%s
		ORDER BY size_bytes DESC, option_name ASC
		LIMIT ?
	`, sizeExpr, s.table, where)

	return s.queryRows(ctx, query, params...)
}

// ExpiredTransients returns up to limit expired timeout/value pairs for one
// family, soonest-expired first. The value row is joined by the derived
// value key; a dangling timeout row (value already deleted) still comes
// back, with empty value name and zero size.
func (s *Store) ExpiredTransients(ctx context.Context, family options.Family, now time.Time, limit int) ([]options.TransientPair, error) {
	timeoutPrefix := family.TimeoutPrefix()
	valuePrefix := family.ValuePrefix()

	query := fmt.Sprintf(`
		SELECT
			t.option_name,
			CAST(t.option_value AS INTEGER) AS expires_epoch,
			COALESCE(v.option_name, ''),
			COALESCE(LENGTH(CAST(v.option_value AS BLOB)), 0)
		FROM %[1]s t
		LEFT JOIN %[1]s v ON v.option_name = ? || substr(t.option_name, ?)
		WHERE t.option_name LIKE ? ESCAPE '\'
		  AND CAST(t.option_value AS INTEGER) > 0
		  AND CAST(t.option_value AS INTEGER) < ?
		ORDER BY expires_epoch ASC, t.option_name ASC
		LIMIT ?
	`, s.table)

	rows, err := s.db.QueryContext(ctx, query,
		valuePrefix,
		len(timeoutPrefix)+1,
		escapeLike(timeoutPrefix)+"%",
		now.Unix(),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query expired transients (%s): %w", family, err)
	}
	defer rows.Close()

	var pairs []options.TransientPair
	for rows.Next() {
		var p options.TransientPair
		if err := rows.Scan(&p.TimeoutName, &p.ExpiresEpoch, &p.ValueName, &p.SizeBytes); err != nil {
			return nil, fmt.Errorf("scan expired transient: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired transients: %w", err)
	}

	if pairs == nil {
		pairs = []options.TransientPair{}
	}
	return pairs, nil
}

// CountExpiredTransients returns the exact number of expired timeout rows
// for one family, independent of any sample limit.
func (s *Store) CountExpiredTransients(ctx context.Context, family options.Family, now time.Time) (int64, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE option_name LIKE ? ESCAPE '\'
		  AND CAST(option_value AS INTEGER) > 0
		  AND CAST(option_value AS INTEGER) < ?
	`, s.table)

	var n int64
	err := s.db.QueryRowContext(ctx, query, escapeLike(family.TimeoutPrefix())+"%", now.Unix()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count expired transients (%s): %w", family, err)
	}
	return n, nil
}

func (s *Store) queryRows(ctx context.Context, query string, params ...any) ([]options.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var out []options.Row
	for rows.Next() {
		var r options.Row
		if err := rows.Scan(&r.Name, &r.SizeBytes, &r.Autoload); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	// Return empty slice instead of nil
	if out == nil {
		out = []options.Row{}
	}
	return out, nil
}

// escapeLike escapes LIKE wildcards so option-name prefixes match
// literally. Transient prefixes are full of underscores, which LIKE would
// otherwise treat as single-character wildcards.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
