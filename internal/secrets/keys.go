package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/scrypt"

	"github.com/PolarWolf314/rolodex/internal/configs"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// KeyKind says how the symmetric key is obtained from a key file.
type KeyKind string

const (
	// KeyKindRandom stores a random key in the key file itself.
	KeyKindRandom KeyKind = "random"

	// KeyKindPassphrase stores only a salt; the key is derived from a
	// passphrase each time it is loaded.
	KeyKindPassphrase KeyKind = "passphrase"
)

// scrypt parameters for passphrase-derived keys.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1

	saltSize = 16
)

// PassphraseFunc prompts for a passphrase.
type PassphraseFunc func(prompt string) ([]byte, error)

type keyFile struct {
	Key keyRecord `toml:"key"`
}

type keyRecord struct {
	Kind      KeyKind   `toml:"kind"`
	Material  string    `toml:"material,omitempty"`
	Salt      string    `toml:"salt,omitempty"`
	CreatedAt time.Time `toml:"created_at"`
}

// DeriveKey derives a symmetric key from a passphrase with scrypt.
func DeriveKey(passphrase, salt []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase must not be empty", kerrors.ErrValidation)
	}
	return scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, KeySize)
}

// CreateKeyFile writes a new key file at path. An existing key file is
// only replaced when force is set, because replacing it makes data sealed
// with the old key unreadable. For KeyKindPassphrase, passphrase is called
// once to validate that a passphrase can be read.
func CreateKeyFile(path string, kind KeyKind, passphrase PassphraseFunc, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", kerrors.ErrKeyExists, path)
	}

	record := keyRecord{Kind: kind, CreatedAt: time.Now().UTC()}

	switch kind {
	case KeyKindRandom:
		symKey, err := CreateSymmetricKey()
		if err != nil {
			return fmt.Errorf("failed to generate symmetric key: %w", err)
		}
		record.Material = base64.StdEncoding.EncodeToString(symKey)
	case KeyKindPassphrase:
		if passphrase == nil {
			return fmt.Errorf("%w: passphrase key requires a passphrase prompt", kerrors.ErrValidation)
		}
		salt := make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return fmt.Errorf("failed to generate salt: %w", err)
		}
		secret, err := passphrase("New passphrase: ")
		if err != nil {
			return err
		}
		if _, err := DeriveKey(secret, salt); err != nil {
			return err
		}
		record.Salt = base64.StdEncoding.EncodeToString(salt)
	default:
		return fmt.Errorf("%w: unknown key kind %q", kerrors.ErrInvalidKeyFile, kind)
	}

	if err := configs.SaveTOML(path, keyFile{Key: record}); err != nil {
		return fmt.Errorf("failed to save key file: %w", err)
	}

	return nil
}

// LoadKey reads the key file at path and returns the symmetric key. For
// passphrase key files, passphrase is called to read the passphrase.
func LoadKey(path string, passphrase PassphraseFunc) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, path)
	}

	var file keyFile
	if err := configs.LoadTOML(path, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyFile, err)
	}

	switch file.Key.Kind {
	case KeyKindRandom:
		symKey, err := base64.StdEncoding.DecodeString(file.Key.Material)
		if err != nil {
			return nil, fmt.Errorf("%w: key material: %v", kerrors.ErrInvalidKeyFile, err)
		}
		if len(symKey) != KeySize {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, KeySize, len(symKey))
		}
		return symKey, nil
	case KeyKindPassphrase:
		salt, err := base64.StdEncoding.DecodeString(file.Key.Salt)
		if err != nil || len(salt) == 0 {
			return nil, fmt.Errorf("%w: missing or malformed salt", kerrors.ErrInvalidKeyFile)
		}
		if passphrase == nil {
			return nil, fmt.Errorf("%w: key file needs a passphrase", kerrors.ErrValidation)
		}
		secret, err := passphrase("Passphrase: ")
		if err != nil {
			return nil, err
		}
		return DeriveKey(secret, salt)
	}

	return nil, fmt.Errorf("%w: unknown key kind %q", kerrors.ErrInvalidKeyFile, file.Key.Kind)
}

// KeyFileKind reports the kind of the key file at path without loading the key.
func KeyFileKind(path string) (KeyKind, error) {
	var file keyFile
	if err := configs.LoadTOML(path, &file); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidKeyFile, err)
	}
	return file.Key.Kind, nil
}
