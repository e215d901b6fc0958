// Package options defines the domain model for the options-table audit.
//
// The auditor treats the WordPress options table as an immutable snapshot of
// rows: (option_name, size-in-bytes, autoload flag). Everything downstream
// (size ranking, orphan inference, transient expiry) works over these values
// and never writes back.
//
// Key naming families recognized here:
//   - "_transient_timeout_*" / "_transient_*": paired expiring cache entries
//   - "_site_transient_timeout_*" / "_site_transient_*": the network-wide form
//   - "cron": the scheduler blob, excluded from orphan inference
//
// A transient's value row name is derived from its timeout row name by
// removing the "timeout_" infix. That transformation is the only correlation
// between the two rows; there is no foreign key.
package options
