package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by FromFile for unknown extensions.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// FromFile loads a settings document, choosing the format by extension:
// .yaml, .yml, or .json.
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var parse func([]byte) (Config, error)
	switch ext {
	case ".yaml", ".yml":
		parse = FromYAML
	case ".json":
		parse = FromJSON
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return parse(data)
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}
