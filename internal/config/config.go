package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file kept at the root of a data directory.
const FileName = "rentflow.yaml"

// Config represents the top-level rentflow.yaml configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Assist AssistConfig `yaml:"assist"`
	Git    GitConfig    `yaml:"git"`
	Log    LogConfig    `yaml:"log"`
}

// StoreConfig selects the key-value backend used for persistence.
type StoreConfig struct {
	Backend string `yaml:"backend"` // file, sqlite or memory
	Path    string `yaml:"path"`    // relative to the data directory
}

// AssistConfig controls the hosted text-generation calls.
type AssistConfig struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// GitConfig controls snapshot commits of the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Load reads a rentflow.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads <dir>/rentflow.yaml, returning defaults when the file
// does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    "data",
		},
		Assist: AssistConfig{
			Model:     "gemini-3-flash-preview",
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Rentflow",
			AuthorEmail: "rentflow@localhost",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Store.Backend {
	case BackendFile, BackendSQLite:
		if c.Store.Path == "" {
			problems = append(problems, fmt.Sprintf("store path cannot be empty for %s backend", c.Store.Backend))
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend %q: must be one of %v",
			c.Store.Backend, []string{BackendFile, BackendSQLite, BackendMemory}))
	}

	if c.Assist.Model == "" {
		problems = append(problems, "assist model cannot be empty")
	}

	if c.Git.AutoCommit && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		problems = append(problems, "git author name and email are required when auto_commit is on")
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
