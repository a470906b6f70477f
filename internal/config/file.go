package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const envConfigPath = "TALENTLMS_CONFIG"

// File is the on-disk JSON configuration. Every field is optional.
type File struct {
	Domain      string   `json:"domain,omitempty"`
	APIKey      string   `json:"api_key,omitempty"`
	RateLimit   *float64 `json:"rate_limit,omitempty"`
	RatePercent *float64 `json:"rate_percent,omitempty"`
	// Timeout is a Go duration string such as "30s".
	Timeout    string `json:"timeout,omitempty"`
	RetryCount *int   `json:"retry_count,omitempty"`
	Verbose    *bool  `json:"verbose,omitempty"`
	RedisURL   string `json:"redis_url,omitempty"`
}

// FilePath returns the config file location: TALENTLMS_CONFIG when set,
// otherwise talentlms/config.json under the user config directory.
func FilePath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(envConfigPath)); p != "" {
		return p, nil
	}
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, serviceName, "config.json"), nil
}

// LoadFile reads path. A missing file yields an empty File.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return f, nil
}

// SaveFile writes f to path with owner-only permissions.
func SaveFile(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
