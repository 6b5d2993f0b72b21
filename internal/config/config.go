// Package config handles loading and saving user configuration for emo.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration for emo.
type Config struct {
	Locale                string `yaml:"locale"`                  // BCP 47 or POSIX identifier, e.g. "ja_JP"; empty means en or the environment
	ResourceDir           string `yaml:"resource_dir,omitempty"`  // directory with full emoji-test.txt and annotations
	AutoUpdateAnnotations bool   `yaml:"auto_update_annotations"` // follow input locale changes
	ResolveUnqualified    bool   `yaml:"resolve_unqualified"`     // apply annotations of unqualified sequences
	Pinyin                bool   `yaml:"pinyin"`                  // match pinyin of Chinese annotations
	SearchLimit           int    `yaml:"search_limit"`            // 0 means unlimited
}

// Default returns the configuration used when no file exists. The locale is
// left empty so that it can follow the environment.
func Default() *Config {
	return &Config{
		SearchLimit: 50,
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "emo"), nil
}

// Path returns the configuration file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}
