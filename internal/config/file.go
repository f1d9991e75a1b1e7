package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// configFileNames are checked, in order, in every directory from the working
// directory up to the filesystem root.
var configFileNames = []string{"app.yaml", "app.yml", "app.json"}

// fileConfig represents the config file structure. JSON files decode through
// the same YAML decoder.
type fileConfig struct {
	Name           string   `yaml:"name"`
	Host           string   `yaml:"host"`
	Port           *int     `yaml:"port"`
	Environment    string   `yaml:"environment"`
	DataDir        string   `yaml:"data_dir"`
	RequestTimeout *string  `yaml:"request_timeout"`
	Tags           []string `yaml:"tags"`
}

// loadFromFile loads configuration from a YAML or JSON file.
func loadFromFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fileCfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", formatOf(path), err)
	}

	return &fileCfg, nil
}

func (f *fileConfig) requestTimeout() (time.Duration, bool, error) {
	if f.RequestTimeout == nil {
		return 0, false, nil
	}
	d, err := time.ParseDuration(*f.RequestTimeout)
	if err != nil {
		return 0, false, fmt.Errorf("invalid request_timeout %q: %w", *f.RequestTimeout, err)
	}
	return d, true, nil
}

func formatOf(path string) string {
	if filepath.Ext(path) == ".json" {
		return "JSON"
	}
	return "YAML"
}

// resolveConfigFile picks the config file: the explicit flag, then APP_CONFIG,
// then the nearest app.{yaml,yml,json} walking up from the working directory.
// An empty result means no file is used.
func resolveConfigFile(explicit, dir string, lookup func(string) (string, bool)) string {
	if explicit != "" {
		return explicit
	}
	if path := lookupTrimmed(lookup, "APP_CONFIG"); path != "" {
		return path
	}
	return findConfigFile(dir)
}

// findConfigFile locates the nearest config file by walking up the directory tree.
func findConfigFile(dir string) string {
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
