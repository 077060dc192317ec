package store

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// ResolveDataDir returns where the notebook keeps config.yaml. Notebook
// files themselves are saved under the configured data_dir, not here.
// NOTEBOOK_DATA_DIR wins over the per-OS application data location.
func ResolveDataDir() (string, error) {
	if custom := os.Getenv("NOTEBOOK_DATA_DIR"); custom != "" {
		return custom, nil
	}

	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, "notebook"), nil
		}
		return "", errors.New("APPDATA not set")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, "Library", "Application Support", "notebook"), nil
		}
		return "", errors.New("home directory not found")
	default: // linux and others
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, ".local", "share", "notebook"), nil
		}
		return "", errors.New("home directory not found")
	}
}
