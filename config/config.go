package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultArtifactName is the cache artifact filename used when the
// configuration does not override it.
const DefaultArtifactName = "commit_data.bin"

// Config is the root configuration structure.
type Config struct {
	Repo   RepoConfig   `json:"repo"`
	Report ReportConfig `json:"report"`
}

// RepoConfig locates the repository and the cache artifact.
type RepoConfig struct {
	Path      string `json:"path"`      // Default: "."
	CachePath string `json:"cachePath"` // Default: commit_data.bin next to the repo path
	Workers   int    `json:"workers"`   // Default: 0 (available parallelism)
}

// ReportConfig holds the report's statistics knobs.
type ReportConfig struct {
	Extensions      []string `json:"extensions"`      // Extension share table
	Filenames       []string `json:"filenames"`       // Per-file touch counts
	Mentions        []string `json:"mentions"`        // Message substring counts
	AuthorSubstring string   `json:"authorSubstring"` // Author set for weekly mean
	Year            int      `json:"year"`            // Default: 0 (current year)
	Top             int      `json:"top"`             // Default: 3
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			Path: ".",
		},
		Report: ReportConfig{
			Extensions: []string{"go", "py", "js", "html", "css", "md"},
			Mentions:   []string{"fix", "refactor", "documentation"},
			Top:        3,
		},
	}
}

// ArtifactPath resolves the cache artifact location.
func (c *Config) ArtifactPath() string {
	if c.Repo.CachePath != "" {
		return c.Repo.CachePath
	}
	return filepath.Join(c.Repo.Path, DefaultArtifactName)
}

// LoadConfig loads configuration from a file, merging with defaults.
// With an empty path the default locations are probed; a missing file is
// not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		candidates := []string{".gitmine.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".gitmine.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
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
