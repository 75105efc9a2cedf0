package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `json:"database"`
	Repo     RepoConfig     `json:"repo"`
	GitHub   GitHubConfig   `json:"github"`
	Web      WebConfig      `json:"web"`
	Filters  FilterConfig   `json:"filters"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path        string `json:"path" env:"ATASK_DB_PATH"`               // SQLite database file
	ArchivePath string `json:"archivePath" env:"ATASK_ARCHIVE_PATH"`   // bolt archive file, empty disables archiving
}

// RepoConfig holds repository access settings.
type RepoConfig struct {
	Path   string `json:"path" env:"ATASK_REPO_PATH"` // local clone to extract history from
	Remote string `json:"remote"`                     // remote name used to resolve owner/project
}

// GitHubConfig holds issue tracker access settings.
type GitHubConfig struct {
	Token string `json:"-" env:"GITHUB_TOKEN"` // never persisted to disk
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// WebConfig holds board server settings.
type WebConfig struct {
	Address        string `json:"address" env:"ATASK_WEB_ADDRESS"`
	Title          string `json:"title"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// Timeout returns the configured read timeout.
func (w WebConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "atask.db",
		},
		Repo: RepoConfig{
			Path:   ".",
			Remote: "origin",
		},
		Web: WebConfig{
			Address:        ":8420",
			Title:          "Task Board",
			TimeoutSeconds: 30,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
// Environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".atask.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".atask.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".atask.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
