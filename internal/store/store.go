package store

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTable is the standard single-site options table name.
const DefaultTable = "wp_options"

// identRe constrains the table name to a bare SQL identifier. The table
// name is the only piece of SQL text that cannot be parameterized.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store executes read-only audit queries against an options-table snapshot.
type Store struct {
	db    *sql.DB
	table string
}

// Open opens a SQLite snapshot at the given path in read-only mode.
// table may be empty, in which case DefaultTable is used.
//
// The connection is configured with:
//   - mode=ro + PRAGMA query_only: writes fail at the driver level
//   - 5-second busy timeout, in case the snapshot is still being written
//     to by whatever exported it
//   - a single connection, since the audit is a sequential pass
func Open(path, table string) (*Store, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	dsn := "file:" + path + "?mode=ro&_busy_timeout=5000&_query_only=true"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to snapshot: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// Fail fast if the table is missing rather than erroring on the first
	// audit query.
	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
	if err == sql.ErrNoRows {
		db.Close()
		return nil, fmt.Errorf("table %q not found in snapshot", table)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to inspect snapshot schema: %w", err)
	}

	return &Store{db: db, table: table}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Table returns the audited table name.
func (s *Store) Table() string {
	return s.table
}
