// Package config loads the CLI configuration file (.notemeta.yaml).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notemeta/pkg/core"
)

// FileName is the name looked up by Find.
const FileName = ".notemeta.yaml"

// EnvVar names an explicit config file, taking precedence over Find.
const EnvVar = "NOTEMETA_CONFIG"

// Config holds the defaults the CLI applies when flags are not given.
type Config struct {
	Placement string        `yaml:"placement"`
	Inplace   bool          `yaml:"inplace"`
	Recursive bool          `yaml:"recursive"`
	Include   string        `yaml:"include"`
	Debounce  time.Duration `yaml:"debounce"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Placement: core.PlacementBottom.String(),
		Inplace:   true,
		Recursive: true,
		Include:   "**/*.md",
		Debounce:  50 * time.Millisecond,
	}
}

// PlacementValue parses Placement.
func (c Config) PlacementValue() (core.Placement, error) {
	return core.ParsePlacement(c.Placement)
}

// Load reads the file at path over the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := cfg.PlacementValue(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve picks the config file to use: explicit (a --config flag) first,
// then the EnvVar variable, then Find from startDir. With none of them it
// returns Default.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if env := strings.TrimSpace(os.Getenv(EnvVar)); env != "" {
		return Load(env)
	}
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}
