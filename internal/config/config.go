// Package config loads the optional shinebrew settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lizardbyte/shinebrew/formula"
)

// Config holds defaults for a run. Command-line flags override every field.
type Config struct {
	Formula string `yaml:"formula" validate:"omitempty,oneof=sunshine sunshine-beta"`
	OS      string `yaml:"os" validate:"omitempty,oneof=linux macos darwin mac osx"`
	Arch    string `yaml:"arch"`

	// Prefix is the install prefix. Empty means the Cellar keg under the
	// Homebrew root.
	Prefix         string `yaml:"prefix"`
	HomebrewPrefix string `yaml:"homebrew_prefix"`
	Source         string `yaml:"source"`

	Options map[string]bool   `yaml:"options"`
	Build   formula.BuildInfo `yaml:"build"`

	// PkgConfig, when set, is consulted for libraries missing from the
	// Homebrew root.
	PkgConfig string `yaml:"pkg_config"`

	Quiet bool      `yaml:"quiet"`
	Log   LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Formula: "sunshine",
		Log:     LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over Default. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return c.Build.Validate()
}
