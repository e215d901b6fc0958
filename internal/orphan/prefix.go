package orphan

import (
	"strings"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
)

// prefixDelimiters are the characters that end the ownership segment of an
// option key. The earliest occurrence of any of them wins.
const prefixDelimiters = "_-.:"

// minPrefixLen is the shortest normalized prefix worth an opinion. Anything
// shorter matches half the dictionary and would flood the result with noise.
const minPrefixLen = 3

// GuessPrefix extracts the normalized ownership prefix from an option key.
// It returns "" when the key carries no delimiter or the normalized prefix
// is shorter than three characters; "" means "cannot classify", and such
// keys are never flagged.
func GuessPrefix(key string) string {
	idx := strings.IndexAny(key, prefixDelimiters)
	if idx < 0 {
		return ""
	}
	guess := options.Normalize(key[:idx])
	if len(guess) < minPrefixLen {
		return ""
	}
	return guess
}

// markerMatch reports whether a normalized prefix should be attributed to a
// normalized installed-component marker. Exact equality matches, and so
// does containment in either direction: "woo" vs "woocommerce" must not be
// false-flagged, at the cost of under-flagging.
func markerMatch(prefix, marker string) bool {
	if prefix == marker {
		return true
	}
	return strings.Contains(marker, prefix) || strings.Contains(prefix, marker)
}
