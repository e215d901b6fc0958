// Package store provides the read-only SQLite adapter over an options-table
// snapshot.
//
// The audit never mutates the table, and the adapter enforces that at the
// connection level: the database is opened in read-only mode with
// PRAGMA query_only active, so a bug elsewhere cannot turn into a write.
//
// # Query discipline
//
//   - Every row query carries an explicit ORDER BY with a name tiebreaker,
//     so repeated audits over an unchanged snapshot return identical results.
//   - Every value is parameterized, never interpolated. The one identifier
//     that cannot be parameterized (the table name, because snapshots use
//     arbitrary prefixes like wp_options / wp_2_options) is validated
//     against a strict identifier charset before it enters any SQL text.
//   - Sizes are computed as LENGTH(CAST(option_value AS BLOB)) so they are
//     byte counts, matching how the host platform measures option weight,
//     not UTF-8 character counts.
package store
