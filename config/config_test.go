package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Repo.Path != "." {
		t.Errorf("Repo.Path = %q, expected %q", cfg.Repo.Path, ".")
	}
	if cfg.Report.Top != 3 {
		t.Errorf("Report.Top = %d, expected 3", cfg.Report.Top)
	}
	if len(cfg.Report.Extensions) == 0 {
		t.Error("Report.Extensions should have defaults")
	}
}

func TestArtifactPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Repo.Path = "/some/repo"
	if got := cfg.ArtifactPath(); got != filepath.Join("/some/repo", DefaultArtifactName) {
		t.Errorf("ArtifactPath() = %q", got)
	}

	cfg.Repo.CachePath = "/tmp/custom.bin"
	if got := cfg.ArtifactPath(); got != "/tmp/custom.bin" {
		t.Errorf("ArtifactPath() = %q, expected override", got)
	}
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Repo.Path != "." {
		t.Errorf("Repo.Path = %q, expected defaults", cfg.Repo.Path)
	}
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"repo": {"path": "/work/repo", "workers": 4}, "report": {"year": 2023}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Repo.Path != "/work/repo" || cfg.Repo.Workers != 4 {
		t.Errorf("Repo = %+v, expected file values", cfg.Repo)
	}
	if cfg.Report.Year != 2023 {
		t.Errorf("Report.Year = %d, expected 2023", cfg.Report.Year)
	}
	// Fields the file omits keep their defaults.
	if cfg.Report.Top != 3 {
		t.Errorf("Report.Top = %d, expected default 3", cfg.Report.Top)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Repo.Path = "/repo"
	cfg.Report.AuthorSubstring = "alice"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Repo.Path != "/repo" || loaded.Report.AuthorSubstring != "alice" {
		t.Errorf("loaded = %+v, expected saved values", loaded)
	}
}
