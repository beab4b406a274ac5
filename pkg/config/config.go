package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBaseURL is the AbuseIPDB v2 check endpoint
const DefaultBaseURL = "https://api.abuseipdb.com/api/v2/check"

// maxAgeLimit is the largest lookback the check endpoint accepts
const maxAgeLimit = 365 * 24 * time.Hour

// Supported output formats
const (
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatText = "text"
	FormatAll  = "all"
)

// Config holds all runtime configuration
type Config struct {
	// Input settings
	InputFile  string
	SkipHeader bool

	// Reputation service settings
	APIKey         string
	APIKeyFile     string
	BaseURL        string
	MaxAge         time.Duration
	IncludeReports bool

	// Output settings
	OutputDir string
	Format    string

	// Operational flags
	DryRun bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		InputFile:      "input.xlsx",
		SkipHeader:     true,
		BaseURL:        DefaultBaseURL,
		MaxAge:         0, // service default
		IncludeReports: true,
		OutputDir:      ".",
		Format:         FormatXLSX,
		DryRun:         false,
	}
}

// Validate checks values that flags and config files cannot constrain
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputFile) == "" {
		return fmt.Errorf("input file is required")
	}
	if !IsValidFormat(c.Format) {
		return fmt.Errorf("invalid --format value %q (expected xlsx, json, text or all)", c.Format)
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("--max-age must be positive")
	}
	if c.MaxAge > maxAgeLimit {
		return fmt.Errorf("--max-age must be at most 365d")
	}
	if c.MaxAge > 0 && c.MaxAge < 24*time.Hour {
		return fmt.Errorf("--max-age must be at least 1d")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base URL is required")
	}
	return nil
}

// MaxAgeDays converts MaxAge to whole days for the service query
func (c *Config) MaxAgeDays() int {
	return int(c.MaxAge / (24 * time.Hour))
}

// Formats expands Format into the concrete formats to write
func (c *Config) Formats() []string {
	if c.Format == FormatAll {
		return []string{FormatXLSX, FormatJSON, FormatText}
	}
	return []string{c.Format}
}

// IsValidFormat reports whether format is a supported --format value
func IsValidFormat(format string) bool {
	switch format {
	case FormatXLSX, FormatJSON, FormatText, FormatAll:
		return true
	}
	return false
}
