// Package orphan infers which option rows likely belong to components that
// are no longer installed.
//
// The inference is lexical and intentionally loose. A row's owning component
// is guessed from the leading segment of its key ("woocommerce_version" is
// guessed to belong to "woocommerce"), the guess is normalized, and then
// checked against the set of installed-component markers with an exact test
// and a bidirectional substring test. Rows whose guess survives every check
// are flagged as likely orphans.
//
// Known, accepted weaknesses:
//   - False positives: a generic-looking prefix that happens to match no
//     marker gets flagged even if some installed component owns it under an
//     unrelated name.
//   - False negatives: abbreviated or extended marker forms suppress flags
//     for genuinely orphaned rows ("woo" matches "woocommerce" whether or
//     not the row is actually WooCommerce's).
//   - An empty marker set makes every classifiable prefix pass vacuously,
//     so everything qualifying gets flagged. Callers are expected to feed a
//     populated registry; the engine does not second-guess an empty one.
//
// The engine is deterministic: identical candidates and markers produce an
// identical ordered result.
package orphan
