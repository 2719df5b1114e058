package configs

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/PolarWolf314/rolodex/internal/utils"
)

// SaveTOML atomically saves a struct to a TOML file with 0600 permissions.
func SaveTOML(filePath string, data interface{}) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}
	return utils.AtomicWriteFile(filePath, buf.Bytes(), 0600)
}

// LoadTOML loads a TOML file into a struct.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}

// fileExists reports whether filePath exists; errors other than not-exist
// are returned so callers do not mistake an unreadable file for a missing one.
func fileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
