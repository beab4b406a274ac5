package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveAPIKeyPrecedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	keyFile := filepath.Join(dir, "key.txt")
	if err := os.WriteFile(keyFile, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, DefaultDotEnvFile), []byte(EnvAPIKey+"=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	cases := []struct {
		name       string
		flag       string
		env        string
		keyFile    string
		wantKey    string
		wantSource string
	}{
		{name: "flag_wins", flag: "from-flag", env: "from-env", keyFile: keyFile, wantKey: "from-flag", wantSource: SourceFlag},
		{name: "env_over_file", env: "from-env", keyFile: keyFile, wantKey: "from-env", wantSource: SourceEnv},
		{name: "file_over_dotenv", keyFile: keyFile, wantKey: "from-file", wantSource: SourceFile},
		{name: "dotenv_fallback", wantKey: "from-dotenv", wantSource: SourceDotEnv},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, tc.env)
			cfg := DefaultConfig()
			cfg.APIKey = tc.flag
			cfg.APIKeyFile = tc.keyFile

			key, source, err := ResolveAPIKey(cfg)
			if err != nil {
				t.Fatalf("ResolveAPIKey failed: %v", err)
			}
			if key != tc.wantKey || source != tc.wantSource {
				t.Fatalf("expected %q from %s, got %q from %s", tc.wantKey, tc.wantSource, key, source)
			}
		})
	}
}

func TestResolveAPIKeyMissing(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvAPIKey, "")

	_, _, err := ResolveAPIKey(DefaultConfig())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestResolveAPIKeyEmptyFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("\n"), 0o600); err != nil {
		t.Fatalf("failed to write key file: %v", err)
	}

	cfg := DefaultConfig()
	cfg.APIKeyFile = path
	if _, _, err := ResolveAPIKey(cfg); err == nil {
		t.Fatal("expected error for empty key file")
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey("abcdef123456"); got != "***3456" {
		t.Fatalf("unexpected mask %q", got)
	}
	if got := MaskKey("abc"); got != "***" {
		t.Fatalf("unexpected short mask %q", got)
	}
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir on toolchains that predate it.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
