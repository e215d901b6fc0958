package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_CollapsesNamingVariants(t *testing.T) {
	// All common spellings of one plugin identity collapse to one marker.
	assert.Equal(t, "wpsupercache", Normalize("WP Super Cache"))
	assert.Equal(t, "wpsupercache", Normalize("wp-super-cache"))
	assert.Equal(t, "wpsupercache", Normalize("wp_super_cache"))
}

func TestNormalize_StripsNonIdentifierRunes(t *testing.T) {
	assert.Equal(t, "woocommerce", Normalize("WooCommerce!"))
	assert.Equal(t, "seo2024", Normalize("SEO/2024"))
	assert.Equal(t, "", Normalize("___"))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalize_UnicodeNFC(t *testing.T) {
	// Decomposed and precomposed forms normalize identically before the
	// charset strip, so neither leaks combining marks.
	precomposed := "café"        // café
	decomposed := "café"        // cafe + combining acute
	assert.Equal(t, Normalize(precomposed), Normalize(decomposed))
	assert.Equal(t, "caf", Normalize(precomposed))
}

func TestTimeoutToValueKey(t *testing.T) {
	assert.Equal(t, "_transient_feed_abc", TimeoutToValueKey("_transient_timeout_feed_abc"))
	assert.Equal(t, "_site_transient_update_core", TimeoutToValueKey("_site_transient_timeout_update_core"))
	// Non-timeout names pass through untouched.
	assert.Equal(t, "_transient_feed_abc", TimeoutToValueKey("_transient_feed_abc"))
}

func TestFamilyPrefixes(t *testing.T) {
	assert.Equal(t, "_transient_timeout_", FamilyPlain.TimeoutPrefix())
	assert.Equal(t, "_transient_", FamilyPlain.ValuePrefix())
	assert.Equal(t, "_site_transient_timeout_", FamilyNetwork.TimeoutPrefix())
	assert.Equal(t, "_site_transient_", FamilyNetwork.ValuePrefix())
	assert.Equal(t, "plain", FamilyPlain.String())
	assert.Equal(t, "network", FamilyNetwork.String())
}
