package orphan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
)

type staticMarkers map[string]struct{}

func (m staticMarkers) InstalledMarkers() map[string]struct{} { return m }

func markers(names ...string) staticMarkers {
	m := staticMarkers{}
	for _, n := range names {
		m[options.Normalize(n)] = struct{}{}
	}
	return m
}

func TestEngine_FlagsUnmatchedPrefixes(t *testing.T) {
	eng := NewEngine(markers("woocommerce", "jetpack"))

	candidates := []options.Row{
		{Name: "woocommerce_version", SizeBytes: 900, Autoload: "yes"},  // installed, exact
		{Name: "woo_cart_cache", SizeBytes: 800, Autoload: "no"},        // installed, abbreviation
		{Name: "oldplugin_settings", SizeBytes: 700, Autoload: "yes"},   // orphan
		{Name: "widget_archives", SizeBytes: 600, Autoload: "yes"},      // reserved prefix
		{Name: "nodelimiter", SizeBytes: 500, Autoload: "no"},           // unclassifiable
		{Name: "deadthing-cache", SizeBytes: 400, Autoload: "no"},       // orphan
	}

	got := eng.Flag(candidates, 10)
	require.Len(t, got, 2)

	assert.Equal(t, "oldplugin_settings", got[0].Name)
	assert.Equal(t, "oldplugin", got[0].PrefixGuess)
	assert.Equal(t, int64(700), got[0].SizeBytes)
	assert.Equal(t, "yes", got[0].Autoload)

	assert.Equal(t, "deadthing-cache", got[1].Name)
	assert.Equal(t, "deadthing", got[1].PrefixGuess)
}

func TestEngine_StopsAtLimit(t *testing.T) {
	eng := NewEngine(markers())

	candidates := []options.Row{
		{Name: "first_orphan", SizeBytes: 300},
		{Name: "second_orphan", SizeBytes: 200},
		{Name: "third_orphan", SizeBytes: 100},
	}

	got := eng.Flag(candidates, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "first_orphan", got[0].Name)
	assert.Equal(t, "second_orphan", got[1].Name)
}

func TestEngine_Idempotent(t *testing.T) {
	eng := NewEngine(markers("woocommerce"))

	candidates := []options.Row{
		{Name: "zeta_cache", SizeBytes: 300},
		{Name: "alpha_cache", SizeBytes: 200},
		{Name: "midway_cache", SizeBytes: 100},
	}

	first := eng.Flag(candidates, 10)
	second := eng.Flag(candidates, 10)
	assert.Equal(t, first, second, "same inputs must yield the same ordered result")
}

func TestEngine_EmptyRegistryFlagsEverythingClassifiable(t *testing.T) {
	// Documented degradation: with no markers, the installed checks pass
	// vacuously and every qualifying prefix is flagged.
	eng := NewEngine(markers())

	candidates := []options.Row{
		{Name: "someplugin_data", SizeBytes: 100},
		{Name: "widget_list", SizeBytes: 90}, // still reserved
		{Name: "unsplittable", SizeBytes: 80},
	}

	got := eng.Flag(candidates, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "someplugin_data", got[0].Name)
}

func TestEngine_NilSourceAndZeroLimit(t *testing.T) {
	eng := NewEngine(nil)

	got := eng.Flag([]options.Row{{Name: "x_y", SizeBytes: 1}}, 0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
