package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileYAML is the canonical config filename.
	DefaultConfigFileYAML = ".ipspectre.yaml"
	// DefaultConfigFileYML is a compatible alternate config filename.
	DefaultConfigFileYML = ".ipspectre.yml"

	appName = "ipspectre"
)

// FileConfig represents values loaded from a .ipspectre.yaml file.
type FileConfig struct {
	Input          string `yaml:"input"`
	SkipHeader     *bool  `yaml:"skip_header"`
	OutputDir      string `yaml:"output_dir"`
	Format         string `yaml:"format"`
	BaseURL        string `yaml:"base_url"`
	MaxAge         string `yaml:"max_age"`
	APIKeyFile     string `yaml:"api_key_file"`
	IncludeReports *bool  `yaml:"include_reports"`
}

// Normalize trims string fields.
func (fc *FileConfig) Normalize() {
	if fc == nil {
		return
	}
	fc.Input = strings.TrimSpace(fc.Input)
	fc.OutputDir = strings.TrimSpace(fc.OutputDir)
	fc.Format = strings.TrimSpace(fc.Format)
	fc.BaseURL = strings.TrimSpace(fc.BaseURL)
	fc.MaxAge = strings.TrimSpace(fc.MaxAge)
	fc.APIKeyFile = strings.TrimSpace(fc.APIKeyFile)
}

// AutoLoadFile discovers and loads the first available config file.
// Search order: working directory, home directory, user config directory.
func AutoLoadFile() (*FileConfig, string, error) {
	candidates := []string{
		DefaultConfigFileYAML,
		DefaultConfigFileYML,
	}

	if homeDir, err := os.UserHomeDir(); err == nil && strings.TrimSpace(homeDir) != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, DefaultConfigFileYAML),
			filepath.Join(homeDir, DefaultConfigFileYML),
		)
	}

	if configDir, err := os.UserConfigDir(); err == nil && strings.TrimSpace(configDir) != "" {
		candidates = append(candidates, filepath.Join(configDir, appName, "config.yaml"))
	}

	return LoadFirstExistingFile(candidates)
}

// LoadFirstExistingFile loads the first config file that exists in paths.
func LoadFirstExistingFile(paths []string) (*FileConfig, string, error) {
	for _, path := range paths {
		candidate := strings.TrimSpace(path)
		if candidate == "" {
			continue
		}

		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to access config file %q: %w", candidate, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("config path %q is a directory, expected a file", candidate)
		}

		cfg, err := LoadFile(candidate)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}

	return nil, "", nil
}

// LoadFile loads config values from a specific YAML file path.
func LoadFile(path string) (*FileConfig, error) {
	filename := strings.TrimSpace(path)
	if filename == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", filename, err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", filename, err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Apply copies file values into cfg. isSet reports whether a flag was given
// on the command line; those values are left alone.
func (fc *FileConfig) Apply(cfg *Config, isSet func(flag string) bool) error {
	if fc == nil || cfg == nil {
		return nil
	}
	if isSet == nil {
		isSet = func(string) bool { return false }
	}

	if fc.Input != "" && !isSet("input") {
		cfg.InputFile = fc.Input
	}
	if fc.SkipHeader != nil && !isSet("skip-header") {
		cfg.SkipHeader = *fc.SkipHeader
	}
	if fc.OutputDir != "" && !isSet("output-dir") {
		cfg.OutputDir = fc.OutputDir
	}
	if fc.Format != "" && !isSet("format") {
		cfg.Format = fc.Format
	}
	if fc.BaseURL != "" && !isSet("base-url") {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.APIKeyFile != "" && !isSet("api-key-file") {
		cfg.APIKeyFile = fc.APIKeyFile
	}
	if fc.IncludeReports != nil && !isSet("include-reports") {
		cfg.IncludeReports = *fc.IncludeReports
	}
	if fc.MaxAge != "" && !isSet("max-age") {
		maxAge, err := ParseDuration(fc.MaxAge)
		if err != nil {
			return fmt.Errorf("invalid max_age in config file: %w", err)
		}
		cfg.MaxAge = maxAge
	}

	return nil
}
