package options

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize reduces a component identity string or key prefix to the
// canonical marker charset: NFC-normalized, lower-cased, stripped to
// [a-z0-9]. Both sides of every orphan-match comparison pass through here,
// so "WP Super Cache", "wp-super-cache" and "wp_super_cache" all collapse
// to "wpsupercache".
func Normalize(s string) string {
	// NFC normalize before case folding so decomposed accents fold the
	// same way as precomposed ones.
	normalized := norm.NFC.String(s)
	lowered := strings.ToLower(normalized)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
