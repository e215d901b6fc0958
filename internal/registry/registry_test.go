package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlugin_AllFourIdentitySources(t *testing.T) {
	r := New()
	r.AddPlugin(Plugin{
		Directory:  "wp-super-cache",
		MainFile:   "wp-cache.php",
		TextDomain: "wp-super-cache",
		Name:       "WP Super Cache",
	})

	markers := r.InstalledMarkers()
	assert.Contains(t, markers, "wpsupercache")
	assert.Contains(t, markers, "wpcache")
	// Directory, text domain and display name collapse to one marker.
	assert.Equal(t, 2, r.Len())
}

func TestAdd_DropsEmptyMarkers(t *testing.T) {
	r := New()
	r.Add("___")
	r.Add("")
	assert.Zero(t, r.Len())
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`plugins:
  - directory: woocommerce
    main_file: woocommerce.php
    text_domain: woocommerce
    name: WooCommerce
  - directory: akismet
    main_file: akismet.php
    name: Akismet Anti-spam
`), 0o644))

	r := New()
	require.NoError(t, r.LoadManifest(path))

	markers := r.InstalledMarkers()
	assert.Contains(t, markers, "woocommerce")
	assert.Contains(t, markers, "akismet")
	assert.Contains(t, markers, "akismetantispam")
}

func TestLoadManifest_MissingFile(t *testing.T) {
	r := New()
	assert.Error(t, r.LoadManifest(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestScanPluginsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "jetpack"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "contact-form-7"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.php"), []byte("<?php"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.php"), []byte("<?php"), 0o644))

	r := New()
	require.NoError(t, r.ScanPluginsDir(dir))

	markers := r.InstalledMarkers()
	assert.Contains(t, markers, "jetpack")
	assert.Contains(t, markers, "contactform7")
	assert.Contains(t, markers, "hello")
	assert.Equal(t, 3, r.Len())
}

func TestMergeManifestAndScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "jetpack"), 0o755))

	manifestPath := filepath.Join(t.TempDir(), "plugins.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`plugins:
  - directory: jetpack
    name: Jetpack
`), 0o644))

	r := New()
	require.NoError(t, r.ScanPluginsDir(dir))
	require.NoError(t, r.LoadManifest(manifestPath))

	// Duplicates across sources collapse.
	assert.Equal(t, 1, r.Len())
	assert.Contains(t, r.InstalledMarkers(), "jetpack")
}
