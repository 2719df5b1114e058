package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/rolodex/internal/codec"
	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
	"github.com/PolarWolf314/rolodex/internal/secrets"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

// filePerm is the mode of the persisted contact file.
const filePerm = 0600

// Vault binds a file path, a serialization format and a symmetric key.
type Vault struct {
	Path   string
	Format codec.Format
	Key    []byte
}

// New returns a Vault after checking the format and key length.
func New(path string, format codec.Format, key []byte) (*Vault, error) {
	if _, err := codec.Lookup(format); err != nil {
		return nil, err
	}
	if len(key) != secrets.KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrInvalidKeyLength, secrets.KeySize, len(key))
	}
	return &Vault{Path: path, Format: format, Key: key}, nil
}

// Seal encodes and encrypts a store.
func (v *Vault) Seal(store *contacts.Store) ([]byte, error) {
	plaintext, err := codec.Encode(store, v.Format)
	if err != nil {
		return nil, err
	}
	return secrets.Encrypt(plaintext, v.Key)
}

// Open decrypts and decodes data produced by Seal.
func (v *Vault) Open(data []byte) (*contacts.Store, error) {
	plaintext, err := secrets.Decrypt(data, v.Key)
	if err != nil {
		return nil, err
	}
	return codec.Decode(plaintext, v.Format)
}

// Exists reports whether the persisted file is present.
func (v *Vault) Exists() bool {
	return utils.FileExists(v.Path)
}

// Load reads the persisted store. A missing file is an empty store.
func (v *Vault) Load() (*contacts.Store, error) {
	data, err := os.ReadFile(v.Path)
	if errors.Is(err, os.ErrNotExist) {
		return contacts.NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", kerrors.ErrIO, v.Path, err)
	}

	store, err := v.Open(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", v.Path, err)
	}
	return store, nil
}

// Save seals the store and atomically replaces the persisted file.
func (v *Vault) Save(store *contacts.Store) error {
	data, err := v.Seal(store)
	if err != nil {
		return err
	}
	if err := utils.AtomicWriteFile(v.Path, data, filePerm); err != nil {
		return fmt.Errorf("%w: writing %s: %w", kerrors.ErrIO, v.Path, err)
	}
	return nil
}
