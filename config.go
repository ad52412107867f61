package xmunch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Output selects what the binaries write after munching.
type Output string

const (
	OutputCompressed   Output = "compressed"
	OutputUncompressed Output = "uncompressed"
	OutputWordList     Output = "wordlist"
)

// MarkerOverrides replaces individual grammar markers. A nil field keeps
// the grammar's value; an empty string clears it.
type MarkerOverrides struct {
	StemSeparator *string `yaml:"stem_separator"`
	NameSeparator *string `yaml:"name_separator"`
	VirtualMarker *string `yaml:"virtual_marker"`
}

// Apply returns m with the overridden fields replaced.
func (o MarkerOverrides) Apply(m Markers) Markers {
	if o.StemSeparator != nil {
		m.StemSeparator = *o.StemSeparator
	}
	if o.NameSeparator != nil {
		m.NameSeparator = *o.NameSeparator
	}
	if o.VirtualMarker != nil {
		m.VirtualMarker = *o.VirtualMarker
	}
	return m
}

// Empty reports whether o overrides nothing.
func (o MarkerOverrides) Empty() bool {
	return o.StemSeparator == nil && o.NameSeparator == nil && o.VirtualMarker == nil
}

// Config holds the settings of the xmunch binaries.
type Config struct {
	Output    Output          `yaml:"output"`
	Normalize TextForm        `yaml:"normalize"`
	Dump      bool            `yaml:"dump"`
	Stats     bool            `yaml:"stats"`
	Markers   MarkerOverrides `yaml:"markers"`
}

// DefaultConfig returns compressed output without normalization.
func DefaultConfig() Config {
	return Config{Output: OutputCompressed, Normalize: FormNone}
}

// LoadConfig reads a YAML configuration file. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("open %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields and canonicalizes Normalize.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputCompressed, OutputUncompressed, OutputWordList:
	case "":
		c.Output = OutputCompressed
	default:
		return fmt.Errorf("unknown output %q", c.Output)
	}
	f, err := ParseTextForm(string(c.Normalize))
	if err != nil {
		return err
	}
	c.Normalize = f
	return nil
}
