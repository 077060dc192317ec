package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rdo34/notebook/internal/store"
)

const (
	UIMenu = "menu"
	UITUI  = "tui"
)

// Config holds user settings for the notebook.
type Config struct {
	// DataDir is the directory save/load file names are resolved against.
	// "." means the working directory.
	DataDir string `yaml:"data_dir"`

	// DefaultFile is used when the user leaves the file name prompt empty.
	DefaultFile string `yaml:"default_file"`

	// LogLevel is one of debug, info, error.
	LogLevel string `yaml:"log_level"`

	// UI selects the front-end: "menu" (numbered prompt loop) or "tui".
	UI string `yaml:"ui"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:     ".",
		DefaultFile: "notebook.json",
		LogLevel:    "error",
		UI:          UIMenu,
	}
}

// Normalize fills in missing or unknown values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = def.DataDir
	}
	if strings.TrimSpace(c.DefaultFile) == "" {
		c.DefaultFile = def.DefaultFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	switch strings.ToLower(c.UI) {
	case UIMenu, UITUI:
		c.UI = strings.ToLower(c.UI)
	default:
		c.UI = def.UI
	}
}

// ApplyEnv lets NOTEBOOK_UI override the configured front-end.
func (c *Config) ApplyEnv() {
	if ui := os.Getenv("NOTEBOOK_UI"); ui != "" {
		c.UI = ui
		c.Normalize()
	}
}

// DefaultPath returns config.yaml under the resolved data directory.
func DefaultPath() (string, error) {
	dir, err := store.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the YAML config at path. On first run the file does not exist
// yet; a default config is written and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save atomically writes cfg to path with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".notebook-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
