package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds the base directories that defaults are derived from.
type Settings struct {
	ConfigDir string
	DataDir   string
}

// DefaultSettings resolves the user's config and data directories,
// honouring XDG_CONFIG_HOME and XDG_DATA_HOME.
func DefaultSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigDir: filepath.Join(configDir, "rolodex"),
		DataDir:   filepath.Join(dataDir, "rolodex"),
	}, nil
}

// ConfigPath returns the default config file path.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, "config.toml")
}
