// Package audit orchestrates one read-only diagnostic pass over an options
// table and assembles the result into a single Report.
//
// One call to Auditor.Run performs the whole pass synchronously: summary
// aggregates, the two size rankings, the threshold filter, the orphan
// heuristic and the transient expiry scan. Nothing is cached between
// invocations; two consecutive runs see the table as it is at each call.
//
// The storage and registry collaborators are injected as interfaces, so
// tests substitute in-memory fakes and the CLI wires the SQLite adapter.
package audit
