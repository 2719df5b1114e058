package configs

import (
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/rolodex/internal/codec"
)

// DefaultBackupKeep is how many backups are retained when pruning.
const DefaultBackupKeep = 10

type Config struct {
	Storage StorageConfig `toml:"storage" json:"storage"`
	Keys    KeysConfig    `toml:"keys" json:"keys"`
	Backup  BackupConfig  `toml:"backup" json:"backup"`
	Log     LogConfig     `toml:"log" json:"log"`
}

type StorageConfig struct {
	DataFile string `toml:"data_file" json:"data_file"`
	Format   string `toml:"format" json:"format"`
}

type KeysConfig struct {
	KeyFile string `toml:"key_file" json:"key_file"`
}

type BackupConfig struct {
	Dir  string `toml:"dir" json:"dir"`
	Keep int    `toml:"keep" json:"keep"`
}

type LogConfig struct {
	File      string `toml:"file" json:"file"`
	AuditFile string `toml:"audit_file" json:"audit_file"`
}

// Defaults returns the configuration used when no config file exists.
func Defaults(s *Settings) *Config {
	return &Config{
		Storage: StorageConfig{
			DataFile: filepath.Join(s.DataDir, "contacts.rolodex"),
			Format:   string(codec.FormatJSON),
		},
		Keys: KeysConfig{
			KeyFile: filepath.Join(s.ConfigDir, "key.toml"),
		},
		Backup: BackupConfig{
			Dir:  filepath.Join(s.DataDir, "backups"),
			Keep: DefaultBackupKeep,
		},
		Log: LogConfig{
			File:      filepath.Join(s.DataDir, "rolodex.log"),
			AuditFile: filepath.Join(s.DataDir, "audit.jsonl"),
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// keys missing from the file keep their default values.
func Load(path string, s *Settings) (*Config, error) {
	config := Defaults(s)

	exists, err := fileExists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if !exists {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Save writes the config file at path.
func Save(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Storage.DataFile == "" {
		return fmt.Errorf("storage.data_file must not be empty")
	}
	if _, err := codec.ParseFormat(c.Storage.Format); err != nil {
		return fmt.Errorf("storage.format: %w", err)
	}
	if c.Keys.KeyFile == "" {
		return fmt.Errorf("keys.key_file must not be empty")
	}
	if c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir must not be empty")
	}
	if c.Backup.Keep < 0 {
		return fmt.Errorf("backup.keep must not be negative, got %d", c.Backup.Keep)
	}
	return nil
}

// Format returns the parsed storage format.
func (c *Config) Format() codec.Format {
	f, err := codec.ParseFormat(c.Storage.Format)
	if err != nil {
		return codec.FormatJSON
	}
	return f
}
