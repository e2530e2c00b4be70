// Package config loads generator settings from a YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"wither-generator/internal/gen"
)

// File names searched for by Find, in order.
var FileNames = []string{".wither.yaml", ".wither.yml", "wither.toml"}

// DefaultMaxCombinationFields caps the power-set generator unless configured.
const DefaultMaxCombinationFields = 8

// Config holds the generator settings.
type Config struct {
	// Output is the generated file name in each package.
	Output string `yaml:"output" toml:"output"`
	// MaxCombinationFields skips combination generation above this many
	// fields. Zero leaves only the hard limit.
	MaxCombinationFields *int `yaml:"max_combination_fields" toml:"max_combination_fields"`
	// Comments toggles doc comments on generated methods.
	Comments *bool `yaml:"comments" toml:"comments"`
	// Jobs bounds the number of packages processed at once.
	Jobs int `yaml:"jobs" toml:"jobs"`
	// BuildFlags are passed to the package loader, e.g. "-tags=integration".
	BuildFlags []string `yaml:"build_flags" toml:"build_flags"`
	// WarningsAsErrors fails the run on any warning.
	WarningsAsErrors bool `yaml:"warnings_as_errors" toml:"warnings_as_errors"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads a config file, choosing the format by extension.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		parsed, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		cfg = *parsed
	}

	cfg.Path = path
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// Parse parses YAML config data.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Find looks for a config file in startDir and its parents. It reports false
// if none exists up to the filesystem root.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return "", false, nil
}

// Load reads the file at path, or the one Find discovers from startDir when
// path is empty, falling back to Default.
func Load(path, startDir string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	found, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}

	if !ok {
		return Default(), nil
	}

	return LoadFile(found)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Output == "" {
		cfg.Output = gen.DefaultFilename
	}

	if cfg.MaxCombinationFields == nil {
		n := DefaultMaxCombinationFields
		cfg.MaxCombinationFields = &n
	}

	if cfg.Comments == nil {
		on := true
		cfg.Comments = &on
	}

	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if filepath.Base(c.Output) != c.Output || !strings.HasSuffix(c.Output, ".go") {
		return fmt.Errorf("output must be a .go file name without directories, got %q", c.Output)
	}

	if c.MaxCombinationFields != nil && *c.MaxCombinationFields < 0 {
		return fmt.Errorf("max_combination_fields must not be negative, got %d", *c.MaxCombinationFields)
	}

	return nil
}

// SetMaxCombinationFields overrides the combination cap.
func (c *Config) SetMaxCombinationFields(n int) {
	c.MaxCombinationFields = &n
}

// MaxFields returns the combination cap.
func (c *Config) MaxFields() int {
	if c.MaxCombinationFields == nil {
		return DefaultMaxCombinationFields
	}

	return *c.MaxCombinationFields
}

// GenerateComments reports whether doc comments are enabled.
func (c *Config) GenerateComments() bool {
	return c.Comments == nil || *c.Comments
}

// GeneratorConfig converts the settings into emitter configuration.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	g := gen.DefaultGeneratorConfig()
	g.Filename = c.Output
	g.GenerateComments = c.GenerateComments()

	return g
}
