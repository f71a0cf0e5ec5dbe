package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milesync/mscoach/internal/util"
	"gopkg.in/yaml.v3"
)

// Config is the user-editable client configuration.
type Config struct {
	// BaseURL is the backend API root, without the /api suffix.
	BaseURL string `yaml:"base_url"`
	// Transcriber is an external speech-to-text command for voice input.
	// Empty means voice capture is unavailable.
	Transcriber string `yaml:"transcriber"`
	// Theme selects a UI color theme by name.
	Theme string `yaml:"theme"`
}

// Load reads the config file if present and applies environment
// overrides. A missing file is not an error: defaults apply.
func Load() (Config, error) {
	cfg := Config{
		BaseURL: DefaultBaseURL,
		Theme:   "default",
	}

	path := filepath.Join(util.ConfigDir(AppName), ConfigFileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// tokenPath is the cached bearer token location.
func tokenPath() string {
	return filepath.Join(util.DataDir(AppName), TokenFileName)
}

// LoadToken returns the cached bearer token, preferring the
// environment override. Empty string means not logged in.
func LoadToken() string {
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		return v
	}
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveToken persists the bearer token with owner-only permissions.
func SaveToken(token string) error {
	dir := util.DataDir(AppName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(tokenPath(), []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// ClearToken removes the cached token. Missing file is fine.
func ClearToken() error {
	err := os.Remove(tokenPath())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
