package orphan

import (
	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
)

// CandidateMultiplier controls how many size-ordered candidate rows are
// fetched per accepted orphan slot. Most candidates are rejected (reserved
// prefix, installed match, unclassifiable), so the pool needs headroom; six
// per slot keeps the query bounded while rarely starving the result.
const CandidateMultiplier = 6

// MarkerSource yields the normalized identity markers of every installed
// component. Implemented by the registry adapter; tests use literal maps.
type MarkerSource interface {
	InstalledMarkers() map[string]struct{}
}

// Engine flags likely-orphaned rows against a fixed marker set.
type Engine struct {
	markers map[string]struct{}
}

// NewEngine captures the current marker set from src. The engine holds a
// snapshot; registry changes after construction are not observed.
func NewEngine(src MarkerSource) *Engine {
	markers := map[string]struct{}{}
	if src != nil {
		for m := range src.InstalledMarkers() {
			if m != "" {
				markers[m] = struct{}{}
			}
		}
	}
	return &Engine{markers: markers}
}

// Flag walks candidates in the given order and collects rows whose guessed
// prefix fails every installed-match check, stopping once limit rows are
// accepted. Candidates are expected pre-sorted by descending size; the
// engine preserves their order and never re-sorts.
//
// The result is always non-nil. An empty result means "nothing flagged",
// not failure.
func (e *Engine) Flag(candidates []options.Row, limit int) []options.OrphanCandidate {
	out := []options.OrphanCandidate{}
	if limit <= 0 {
		return out
	}

	for _, row := range candidates {
		if len(out) >= limit {
			break
		}

		prefix := GuessPrefix(row.Name)
		if prefix == "" {
			continue // cannot classify
		}
		if isReserved(prefix) {
			continue
		}
		if e.matchesInstalled(prefix) {
			continue
		}

		out = append(out, options.OrphanCandidate{
			Name:        row.Name,
			PrefixGuess: prefix,
			SizeBytes:   row.SizeBytes,
			Autoload:    row.Autoload,
		})
	}
	return out
}

// matchesInstalled runs the exact and fuzzy checks against every marker.
func (e *Engine) matchesInstalled(prefix string) bool {
	for marker := range e.markers {
		if markerMatch(prefix, marker) {
			return true
		}
	}
	return false
}
