package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
)

// newSnapshot creates a snapshot file with the standard table layout and
// the given rows, then opens it through the read-only adapter.
func newSnapshot(t *testing.T, rows map[string]struct {
	value    string
	autoload string
}) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("create fixture db: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE wp_options (
		option_id INTEGER PRIMARY KEY AUTOINCREMENT,
		option_name TEXT NOT NULL UNIQUE,
		option_value TEXT NOT NULL,
		autoload TEXT NOT NULL DEFAULT 'yes'
	)`)
	if err != nil {
		t.Fatalf("create fixture table: %v", err)
	}
	for name, r := range rows {
		if _, err := db.Exec(
			"INSERT INTO wp_options (option_name, option_value, autoload) VALUES (?, ?, ?)",
			name, r.value, r.autoload,
		); err != nil {
			t.Fatalf("insert fixture row %q: %v", name, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close fixture db: %v", err)
	}

	s, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type fixtureRow = struct {
	value    string
	autoload string
}

func TestOpen_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("create fixture db: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE unrelated (x INTEGER)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	db.Close()

	if _, err := Open(path, ""); err == nil {
		t.Error("Open() should fail when the options table is absent")
	}
}

func TestOpen_RejectsBadTableName(t *testing.T) {
	if _, err := Open("ignored.db", "wp_options; DROP TABLE x"); err == nil {
		t.Error("Open() should reject non-identifier table names")
	}
}

func TestOpen_ReadOnly(t *testing.T) {
	s := newSnapshot(t, map[string]fixtureRow{
		"siteurl": {"https://example.test", "yes"},
	})

	// The audit never writes; the connection must not allow it either.
	_, err := s.db.Exec("INSERT INTO wp_options (option_name, option_value) VALUES ('x', 'y')")
	if err == nil {
		t.Error("write through read-only store should fail")
	}
}

func TestTopBySize(t *testing.T) {
	s := newSnapshot(t, map[string]fixtureRow{
		"big_autoload":   {strings.Repeat("a", 500), "yes"},
		"small_autoload": {strings.Repeat("b", 10), "yes"},
		"huge_lazy":      {strings.Repeat("c", 900), "no"},
	})
	ctx := context.Background()

	all, err := s.TopBySize(ctx, false, 10)
	if err != nil {
		t.Fatalf("TopBySize(all) failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 rows, got %d", len(all))
	}
	if all[0].Name != "huge_lazy" || all[0].SizeBytes != 900 {
		t.Errorf("largest overall = %+v, want huge_lazy/900", all[0])
	}

	auto, err := s.TopBySize(ctx, true, 10)
	if err != nil {
		t.Fatalf("TopBySize(autoload) failed: %v", err)
	}
	if len(auto) != 2 {
		t.Fatalf("want 2 autoloaded rows, got %d", len(auto))
	}
	if auto[0].Name != "big_autoload" {
		t.Errorf("largest autoloaded = %q, want big_autoload", auto[0].Name)
	}

	limited, err := s.TopBySize(ctx, false, 1)
	if err != nil {
		t.Fatalf("TopBySize(limit 1) failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit not applied: got %d rows", len(limited))
	}
}

func TestSizeIsMeasuredInBytes(t *testing.T) {
	// Multi-byte runes count as their encoded byte length, not rune count.
	s := newSnapshot(t, map[string]fixtureRow{
		"unicode_value": {"éé", "yes"}, // 2 runes, 4 bytes
	})

	rows, err := s.TopBySize(context.Background(), false, 1)
	if err != nil {
		t.Fatalf("TopBySize failed: %v", err)
	}
	if rows[0].SizeBytes != 4 {
		t.Errorf("SizeBytes = %d, want 4 (byte length)", rows[0].SizeBytes)
	}
}

func TestAutoloadStats(t *testing.T) {
	s := newSnapshot(t, map[string]fixtureRow{
		"a": {strings.Repeat("x", 100), "yes"},
		"b": {strings.Repeat("x", 50), "yes"},
		"c": {strings.Repeat("x", 999), "no"},
	})

	count, total, err := s.AutoloadStats(context.Background())
	if err != nil {
		t.Fatalf("AutoloadStats failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if total != 150 {
		t.Errorf("total = %d, want 150", total)
	}
}

func TestAutoloadStats_EmptyTable(t *testing.T) {
	s := newSnapshot(t, nil)

	count, total, err := s.AutoloadStats(context.Background())
	if err != nil {
		t.Fatalf("AutoloadStats failed: %v", err)
	}
	if count != 0 || total != 0 {
		t.Errorf("empty table: count=%d total=%d, want zeros", count, total)
	}

	n, err := s.CountRows(context.Background())
	if err != nil {
		t.Fatalf("CountRows failed: %v", err)
	}
	if n != 0 {
		t.Errorf("CountRows = %d, want 0", n)
	}
}

func TestCandidateRows_Exclusions(t *testing.T) {
	s := newSnapshot(t, map[string]fixtureRow{
		"myplugin_settings":          {strings.Repeat("x", 400), "yes"},
		"cron":                       {strings.Repeat("x", 800), "yes"},
		"_transient_feed":            {strings.Repeat("x", 700), "no"},
		"_transient_timeout_feed":    {"1700000000", "no"},
		"_site_transient_update":     {strings.Repeat("x", 600), "no"},
		"other_plugin_cache":         {strings.Repeat("x", 300), "no"},
		"transient_lookalike_option": {strings.Repeat("x", 200), "no"},
	})

	rows, err := s.CandidateRows(
		context.Background(),
		options.OrphanExcludedPrefixes(),
		[]string{options.CronKey},
		10,
	)
	if err != nil {
		t.Fatalf("CandidateRows failed: %v", err)
	}

	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Name)
	}
	want := []string{"myplugin_settings", "other_plugin_cache", "transient_lookalike_option"}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpiredTransients(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newSnapshot(t, map[string]fixtureRow{
		"_transient_timeout_old":      {"500", "no"},
		"_transient_old":              {strings.Repeat("x", 123), "no"},
		"_transient_timeout_older":    {"400", "no"},
		"_transient_older":            {strings.Repeat("x", 50), "no"},
		"_transient_timeout_fresh":    {"2000", "no"},
		"_transient_fresh":            {"still valid", "no"},
		"_transient_timeout_forever":  {"0", "no"},
		"_transient_forever":          {"never expires", "no"},
		"_transient_timeout_dangling": {"300", "no"},
		// no _transient_dangling value row
		"_site_transient_timeout_net": {"100", "no"},
		"_site_transient_net":         {"net value", "no"},
	})
	ctx := context.Background()

	pairs, err := s.ExpiredTransients(ctx, options.FamilyPlain, now, 10)
	if err != nil {
		t.Fatalf("ExpiredTransients(plain) failed: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("plain expired = %d pairs, want 3", len(pairs))
	}
	// Soonest-expired first.
	if pairs[0].TimeoutName != "_transient_timeout_dangling" || pairs[0].ExpiresEpoch != 300 {
		t.Errorf("pairs[0] = %+v, want dangling/300", pairs[0])
	}
	// Dangling value row degrades to empty name / zero size.
	if pairs[0].ValueName != "" || pairs[0].SizeBytes != 0 {
		t.Errorf("dangling pair not degraded: %+v", pairs[0])
	}
	if pairs[1].ValueName != "_transient_older" || pairs[1].SizeBytes != 50 {
		t.Errorf("pairs[1] = %+v, want _transient_older/50", pairs[1])
	}
	if pairs[2].ValueName != "_transient_old" || pairs[2].SizeBytes != 123 {
		t.Errorf("pairs[2] = %+v, want _transient_old/123", pairs[2])
	}

	netPairs, err := s.ExpiredTransients(ctx, options.FamilyNetwork, now, 10)
	if err != nil {
		t.Fatalf("ExpiredTransients(network) failed: %v", err)
	}
	if len(netPairs) != 1 || netPairs[0].ValueName != "_site_transient_net" {
		t.Errorf("network pairs = %+v, want one pair for _site_transient_net", netPairs)
	}

	n, err := s.CountExpiredTransients(ctx, options.FamilyPlain, now)
	if err != nil {
		t.Fatalf("CountExpiredTransients failed: %v", err)
	}
	if n != 3 {
		t.Errorf("plain expired count = %d, want 3", n)
	}

	// Count is exact even when the sample is truncated.
	sample, err := s.ExpiredTransients(ctx, options.FamilyPlain, now, 1)
	if err != nil {
		t.Fatalf("ExpiredTransients(limit 1) failed: %v", err)
	}
	if len(sample) != 1 {
		t.Errorf("sample = %d pairs, want 1", len(sample))
	}
}
