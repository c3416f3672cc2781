// Package config loads the tunables and the cold-start ordering hint
// that drive one packing run. The on-disk format is YAML.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dexpack/interdex/capacity"
)

// Config is the deserialized form of an interdexctl configuration
// file.
type Config struct {
	// ColdStart is the ordered list of fully-qualified class names
	// describing the cold-start launch order. Entries may name
	// classes absent from the input, or contain the DexEndMarker
	// sentinel.
	ColdStart []string `yaml:"coldstart_classes"`

	// EmitCanaries toggles canary synthesis.
	EmitCanaries bool `yaml:"emit_canaries"`

	// StaticPrune toggles the cold-start reachability pruner.
	StaticPrune bool `yaml:"static_prune_classes"`

	// NormalPrimaryDex disables the fixed-primary-container behavior.
	NormalPrimaryDex bool `yaml:"normal_primary_dex"`

	// LegacyLinearAlloc selects the legacy (2,600 KiB) linear-alloc
	// ceiling instead of the modern one.
	LegacyLinearAlloc bool `yaml:"legacy_linear_alloc"`
}

// ColdStartClasses returns the configured cold-start ordering.
func (c Config) ColdStartClasses() []string { return c.ColdStart }

// Profile returns the linear-alloc profile this config selects.
func (c Config) Profile() capacity.Profile {
	if c.LegacyLinearAlloc {
		return capacity.Legacy
	}
	return capacity.Modern
}

// Load reads and parses a YAML config file from path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads and parses a YAML config document from r.
func Parse(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	return cfg, nil
}
