package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{name: "InputFile", got: cfg.InputFile, want: "input.xlsx"},
		{name: "SkipHeader", got: cfg.SkipHeader, want: true},
		{name: "APIKey", got: cfg.APIKey, want: ""},
		{name: "BaseURL", got: cfg.BaseURL, want: DefaultBaseURL},
		{name: "MaxAge", got: cfg.MaxAge, want: time.Duration(0)},
		{name: "IncludeReports", got: cfg.IncludeReports, want: true},
		{name: "OutputDir", got: cfg.OutputDir, want: "."},
		{name: "Format", got: cfg.Format, want: "xlsx"},
		{name: "DryRun", got: cfg.DryRun, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, tc.got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "max_age_90d", mutate: func(c *Config) { c.MaxAge = 90 * 24 * time.Hour }},
		{name: "format_all", mutate: func(c *Config) { c.Format = "all" }},
		{name: "empty_input", mutate: func(c *Config) { c.InputFile = " " }, wantErr: "input file is required"},
		{name: "bad_format", mutate: func(c *Config) { c.Format = "csv" }, wantErr: "invalid --format value"},
		{name: "max_age_too_long", mutate: func(c *Config) { c.MaxAge = 366 * 24 * time.Hour }, wantErr: "at most 365d"},
		{name: "max_age_too_short", mutate: func(c *Config) { c.MaxAge = time.Hour }, wantErr: "at least 1d"},
		{name: "empty_base_url", mutate: func(c *Config) { c.BaseURL = "" }, wantErr: "base URL is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestMaxAgeDaysAndFormats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAge = 30*24*time.Hour + 5*time.Hour
	if got := cfg.MaxAgeDays(); got != 30 {
		t.Fatalf("expected 30 days, got %d", got)
	}

	if got := cfg.Formats(); len(got) != 1 || got[0] != FormatXLSX {
		t.Fatalf("expected [xlsx], got %v", got)
	}
	cfg.Format = FormatAll
	if got := cfg.Formats(); len(got) != 3 {
		t.Fatalf("expected all formats, got %v", got)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "seconds", input: "30s", want: 30 * time.Second},
		{name: "hours", input: "2h", want: 2 * time.Hour},
		{name: "days", input: "90d", want: 90 * 24 * time.Hour},
		{name: "weeks", input: "2w", want: 14 * 24 * time.Hour},
		{name: "fallback_go_duration", input: "1.5h", want: time.Duration(1.5 * float64(time.Hour))},
		{name: "invalid", input: "5x", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDuration(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
