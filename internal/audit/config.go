package audit

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults and the threshold floor. A threshold below the floor would flag
// essentially every autoloaded row, which helps no one.
const (
	DefaultAutoloadTopLimit = 50
	DefaultLargestLimit     = 50
	DefaultOrphanLimit      = 80
	DefaultTransientLimit   = 80

	DefaultBigOptionThresholdBytes = 262144 // 256 KiB
	MinBigOptionThresholdBytes     = 1024
)

// Config carries the five audit tunables. The zero value means "all
// defaults". Out-of-range values are clamped, never rejected: the audit is
// a diagnostic surface and should not refuse to run over a bad flag.
type Config struct {
	// AutoloadTopLimit bounds the autoload-only size ranking.
	AutoloadTopLimit int `yaml:"autoload_top_limit" json:"autoload_top_limit"`

	// LargestLimit bounds the overall size ranking.
	LargestLimit int `yaml:"largest_limit" json:"largest_limit"`

	// OrphanLimit bounds accepted orphan flags. The candidate pool is
	// queried at six times this value.
	OrphanLimit int `yaml:"orphan_limit" json:"orphan_limit"`

	// TransientLimit bounds each family's expired-transient sample.
	TransientLimit int `yaml:"transient_limit" json:"transient_limit"`

	// BigOptionThresholdBytes is the cutoff for the big-autoload subset.
	BigOptionThresholdBytes int64 `yaml:"big_option_threshold_bytes" json:"big_option_threshold_bytes"`
}

// Normalized returns a copy with every tunable forced into its valid range:
// limits at or below zero take their default, an unset threshold takes its
// default, and a set-but-tiny threshold is raised to the floor.
func (c Config) Normalized() Config {
	if c.AutoloadTopLimit <= 0 {
		c.AutoloadTopLimit = DefaultAutoloadTopLimit
	}
	if c.LargestLimit <= 0 {
		c.LargestLimit = DefaultLargestLimit
	}
	if c.OrphanLimit <= 0 {
		c.OrphanLimit = DefaultOrphanLimit
	}
	if c.TransientLimit <= 0 {
		c.TransientLimit = DefaultTransientLimit
	}
	if c.BigOptionThresholdBytes <= 0 {
		c.BigOptionThresholdBytes = DefaultBigOptionThresholdBytes
	} else if c.BigOptionThresholdBytes < MinBigOptionThresholdBytes {
		c.BigOptionThresholdBytes = MinBigOptionThresholdBytes
	}
	return c
}

// LoadConfig reads a YAML config file. Unknown fields are rejected so a
// typoed tunable name fails loudly instead of silently using a default.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
