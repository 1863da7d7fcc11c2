// Package config loads game configuration files. TOML files are parsed with
// go-toml; YAML and JSON files are parsed with yaml.v3. Every value that is
// absent or zero falls back to the built-in default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"catidle/internal/pet"
)

// Format is a config file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the encoding from a file extension. JSON is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads the configuration at path. An empty path or a missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (pet.Config, error) {
	if path == "" {
		return pet.DefaultConfig(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pet.DefaultConfig(), nil
		}
		return pet.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(b, FormatFor(path))
	if err != nil {
		return pet.Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes raw config data and fills defaults
func Parse(data []byte, format Format) (pet.Config, error) {
	var cfg pet.Config
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return pet.Config{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return pet.Config{}, err
		}
	}
	return cfg.WithDefaults(), nil
}

// Marshal encodes cfg in the given format
func Marshal(cfg pet.Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	default:
		return yaml.Marshal(cfg)
	}
}
