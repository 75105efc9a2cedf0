package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Database.Path != "atask.db" {
		t.Errorf("Database.Path = %q, expected %q", cfg.Database.Path, "atask.db")
	}
	if cfg.Repo.Path != "." {
		t.Errorf("Repo.Path = %q, expected %q", cfg.Repo.Path, ".")
	}
	if cfg.Repo.Remote != "origin" {
		t.Errorf("Repo.Remote = %q, expected %q", cfg.Repo.Remote, "origin")
	}
	if cfg.Web.Address != ":8420" {
		t.Errorf("Web.Address = %q, expected %q", cfg.Web.Address, ":8420")
	}
	if cfg.Web.Title != "Task Board" {
		t.Errorf("Web.Title = %q, expected %q", cfg.Web.Title, "Task Board")
	}
	if cfg.Web.Timeout() != 30*time.Second {
		t.Errorf("Web.Timeout() = %v, expected 30s", cfg.Web.Timeout())
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atask.json")
	data := `{
		"database": {"path": "/tmp/custom.db"},
		"repo": {"path": "/src/project", "remote": "upstream"},
		"github": {"owner": "folknology", "repo": "atask"},
		"web": {"address": ":9000", "timeoutSeconds": 5},
		"filters": {"exclude": ["vendor/**"]}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Database.Path != "/tmp/custom.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Repo.Remote != "upstream" {
		t.Errorf("Repo.Remote = %q", cfg.Repo.Remote)
	}
	if cfg.GitHub.Owner != "folknology" || cfg.GitHub.Repo != "atask" {
		t.Errorf("GitHub = %q/%q", cfg.GitHub.Owner, cfg.GitHub.Repo)
	}
	if cfg.Web.Address != ":9000" {
		t.Errorf("Web.Address = %q", cfg.Web.Address)
	}
	if cfg.Web.Timeout() != 5*time.Second {
		t.Errorf("Web.Timeout() = %v", cfg.Web.Timeout())
	}
	if len(cfg.Filters.Exclude) != 1 || cfg.Filters.Exclude[0] != "vendor/**" {
		t.Errorf("Filters.Exclude = %v", cfg.Filters.Exclude)
	}
}

func TestLoadConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "atask.db" {
		t.Errorf("Database.Path = %q, expected default", cfg.Database.Path)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("ATASK_DB_PATH", "/var/lib/atask/main.db")
	t.Setenv("GITHUB_TOKEN", "ghp_testtoken")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "/var/lib/atask/main.db" {
		t.Errorf("Database.Path = %q, expected env override", cfg.Database.Path)
	}
	if cfg.GitHub.Token != "ghp_testtoken" {
		t.Errorf("GitHub.Token not read from environment")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	cfg := DefaultConfig()
	cfg.GitHub.Owner = "folknology"
	cfg.GitHub.Token = "secret"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty config written")
	}
	// Tokens must never hit disk.
	if strings.Contains(string(data), "secret") {
		t.Error("token leaked into saved config")
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.GitHub.Owner != "folknology" {
		t.Errorf("GitHub.Owner = %q after round trip", loaded.GitHub.Owner)
	}
	if loaded.GitHub.Token == "secret" {
		t.Error("token persisted through round trip")
	}
}
