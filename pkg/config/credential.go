package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// EnvAPIKey is the environment variable holding the AbuseIPDB key
	EnvAPIKey = "ABUSEIPDB_API_KEY"
	// DefaultDotEnvFile is read as a last resort
	DefaultDotEnvFile = ".env"
)

// ErrMissingAPIKey is returned when no source provides a key
var ErrMissingAPIKey = errors.New("API key is required (use --api-key, " + EnvAPIKey + ", api_key_file or .env)")

// Key sources, reported in verbose output
const (
	SourceFlag   = "flag"
	SourceEnv    = "environment"
	SourceFile   = "api key file"
	SourceDotEnv = ".env"
)

// ResolveAPIKey finds the API key. Order: flag, environment, key file, .env.
func ResolveAPIKey(cfg *Config) (key string, source string, err error) {
	if cfg != nil {
		if key := strings.TrimSpace(cfg.APIKey); key != "" {
			return key, SourceFlag, nil
		}
	}

	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, SourceEnv, nil
	}

	if cfg != nil && strings.TrimSpace(cfg.APIKeyFile) != "" {
		data, err := os.ReadFile(strings.TrimSpace(cfg.APIKeyFile))
		if err != nil {
			return "", "", fmt.Errorf("failed to read api key file: %w", err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", "", fmt.Errorf("api key file %q is empty", cfg.APIKeyFile)
		}
		return key, SourceFile, nil
	}

	values, err := godotenv.Read(DefaultDotEnvFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", ErrMissingAPIKey
		}
		return "", "", fmt.Errorf("failed to parse %s: %w", DefaultDotEnvFile, err)
	}
	if key := strings.TrimSpace(values[EnvAPIKey]); key != "" {
		return key, SourceDotEnv, nil
	}

	return "", "", ErrMissingAPIKey
}

// MaskKey hides all but the last four characters of key
func MaskKey(key string) string {
	if len(key) <= 4 {
		return "***"
	}
	return "***" + key[len(key)-4:]
}
