package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/rolodex/internal/codec"
)

func testSettings(t *testing.T) *Settings {
	t.Helper()
	dir := t.TempDir()
	return &Settings{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s := testSettings(t)

	config, err := Load(s.ConfigPath(), s)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Storage.DataFile != filepath.Join(s.DataDir, "contacts.rolodex") {
		t.Errorf("Unexpected data file: %s", config.Storage.DataFile)
	}
	if config.Format() != codec.FormatJSON {
		t.Errorf("Expected json format, got %s", config.Format())
	}
	if config.Backup.Keep != DefaultBackupKeep {
		t.Errorf("Expected keep %d, got %d", DefaultBackupKeep, config.Backup.Keep)
	}
	if config.Keys.KeyFile != filepath.Join(s.ConfigDir, "key.toml") {
		t.Errorf("Unexpected key file: %s", config.Keys.KeyFile)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	s := testSettings(t)
	path := s.ConfigPath()

	content := "[storage]\nformat = \"csv\"\n\n[backup]\nkeep = 2\n"
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := Load(path, s)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Format() != codec.FormatCSV {
		t.Errorf("Expected csv format, got %s", config.Storage.Format)
	}
	if config.Backup.Keep != 2 {
		t.Errorf("Expected keep 2, got %d", config.Backup.Keep)
	}
	if config.Storage.DataFile == "" || config.Log.File == "" {
		t.Error("Expected unset keys to keep their defaults")
	}
}

func TestSaveThenLoad(t *testing.T) {
	s := testSettings(t)
	path := s.ConfigPath()

	config := Defaults(s)
	config.Storage.Format = "gob"
	config.Backup.Dir = filepath.Join(s.DataDir, "elsewhere")

	if err := Save(path, config); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path, s)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"BadTOML", "[storage\nformat = ", "failed to load config"},
		{"UnknownFormat", "[storage]\nformat = \"xml\"\n", "storage.format"},
		{"NegativeKeep", "[backup]\nkeep = -1\n", "backup.keep"},
		{"EmptyDataFile", "[storage]\ndata_file = \"\"\n", "storage.data_file"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSettings(t)
			path := s.ConfigPath()
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				t.Fatalf("Failed to create dir: %v", err)
			}
			if err := os.WriteFile(path, []byte(tc.content), 0600); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			_, err := Load(path, s)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errPart) {
				t.Errorf("Expected error containing %q, got %v", tc.errPart, err)
			}
		})
	}
}

func TestDefaultSettingsHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	s, err := DefaultSettings()
	if err != nil {
		t.Fatalf("DefaultSettings failed: %v", err)
	}
	if s.DataDir != filepath.Join(dir, "data", "rolodex") {
		t.Errorf("Unexpected data dir: %s", s.DataDir)
	}
	if !strings.HasSuffix(s.ConfigPath(), filepath.Join("rolodex", "config.toml")) {
		t.Errorf("Unexpected config path: %s", s.ConfigPath())
	}
}
