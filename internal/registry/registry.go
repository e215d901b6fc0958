// Package registry builds the set of installed-component identity markers
// the orphan heuristic matches against.
//
// Each installed plugin contributes up to four independent identity
// sources: its directory name, its main file's base name, its declared
// text domain and its display name. All four are normalized and collapsed
// into one marker set; multiplicity carries no meaning. Casting a wide net
// here is deliberate: the more marker spellings we know, the fewer
// installed components get false-flagged as orphans.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
)

// Plugin is one installed component as declared in a manifest.
type Plugin struct {
	Directory  string `yaml:"directory"`
	MainFile   string `yaml:"main_file"`
	TextDomain string `yaml:"text_domain"`
	Name       string `yaml:"name"`
}

// manifest is the YAML file layout.
type manifest struct {
	Plugins []Plugin `yaml:"plugins"`
}

// Registry is a normalized marker set. The zero value is usable and empty;
// an empty registry degrades orphan precision (everything classifiable
// gets flagged) but is not an error.
type Registry struct {
	markers map[string]struct{}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{markers: map[string]struct{}{}}
}

// Add normalizes raw and adds it to the marker set. Strings that normalize
// to empty are dropped.
func (r *Registry) Add(raw string) {
	m := options.Normalize(raw)
	if m == "" {
		return
	}
	r.markers[m] = struct{}{}
}

// AddPlugin adds all four identity sources of one plugin.
func (r *Registry) AddPlugin(p Plugin) {
	r.Add(p.Directory)
	r.Add(strings.TrimSuffix(filepath.Base(p.MainFile), filepath.Ext(p.MainFile)))
	r.Add(p.TextDomain)
	r.Add(p.Name)
}

// InstalledMarkers returns the marker set. The map is shared, not copied;
// callers treat it as read-only.
func (r *Registry) InstalledMarkers() map[string]struct{} {
	return r.markers
}

// Len returns the number of distinct markers.
func (r *Registry) Len() int {
	return len(r.markers)
}

// LoadManifest merges the plugins declared in a YAML manifest file.
func (r *Registry) LoadManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest %s: %w", path, err)
	}
	for _, p := range m.Plugins {
		r.AddPlugin(p)
	}
	return nil
}

// ScanPluginsDir merges markers from a plugins directory: each subdirectory
// name, and the base name of each top-level .php file (single-file plugins
// live directly in the plugins directory).
func (r *Registry) ScanPluginsDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read plugins dir: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			r.Add(name)
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".php") {
			r.Add(strings.TrimSuffix(name, filepath.Ext(name)))
		}
	}
	return nil
}
