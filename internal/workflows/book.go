package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rolodex/internal/audit"
	"github.com/PolarWolf314/rolodex/internal/backup"
	"github.com/PolarWolf314/rolodex/internal/configs"
	"github.com/PolarWolf314/rolodex/internal/contacts"
	logger "github.com/PolarWolf314/rolodex/internal/logging"
	"github.com/PolarWolf314/rolodex/internal/secrets"
	"github.com/PolarWolf314/rolodex/internal/storage"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

// Book binds the encrypted contact file to its backups and logs. Every
// operation that changes contacts loads the file, applies the change and
// saves it again before returning.
type Book struct {
	Vault   *storage.Vault
	Backups *backup.Manager
	Audit   *audit.Log
	Logger  logger.Logger

	// Keep is how many backups Backup retains. Zero keeps them all.
	Keep int

	// CreatedKey is the key file OpenBook created, if it created one.
	CreatedKey string
}

// OpenOptions configures OpenBook.
type OpenOptions struct {
	// Config supplies file locations and the storage format.
	Config *configs.Config

	// Logger is copied into the Book.
	Logger logger.Logger

	// Passphrase reads the passphrase for passphrase key files.
	Passphrase secrets.PassphraseFunc

	// CreateKey creates a random key file when neither the key file nor
	// the contact file exists yet.
	CreateKey bool
}

// OpenBook loads the key named by the config and returns a Book over the
// configured contact file.
//
// Returns ErrKeyNotFound if no key file exists yet and one was not created.
// A key is only created on first use: if a contact file exists it was
// sealed with a key that is missing, and a new key could not open it.
func OpenBook(ctx context.Context, opts OpenOptions) (*Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := opts.Config
	var created string
	if opts.CreateKey && !utils.FileExists(cfg.Keys.KeyFile) && !utils.FileExists(cfg.Storage.DataFile) {
		opts.Logger.Infof("Creating encryption key at %s", cfg.Keys.KeyFile)
		err := InitKey(ctx, KeyInitOptions{
			Path:      cfg.Keys.KeyFile,
			Kind:      secrets.KeyKindRandom,
			AuditPath: cfg.Log.AuditFile,
		})
		if err != nil {
			return nil, fmt.Errorf("creating key: %w", err)
		}
		created = cfg.Keys.KeyFile
	}

	opts.Logger.Debugf("Loading key from %s", cfg.Keys.KeyFile)
	key, err := secrets.LoadKey(cfg.Keys.KeyFile, opts.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("loading key: %w", err)
	}

	vault, err := storage.New(cfg.Storage.DataFile, cfg.Format(), key)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debugf("Using contact file %s (%s)", vault.Path, vault.Format)

	return &Book{
		Vault:   vault,
		Backups: backup.New(cfg.Backup.Dir, vault),
		Audit:   audit.New(cfg.Log.AuditFile),
		Logger:  opts.Logger,
		Keep:    cfg.Backup.Keep,

		CreatedKey: created,
	}, nil
}

// load reads the current store after checking for cancellation.
func (b *Book) load(ctx context.Context) (*contacts.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	store, err := b.Vault.Load()
	if err != nil {
		return nil, err
	}
	b.Logger.Debugf("Loaded %d contacts from %s", store.Len(), b.Vault.Path)
	return store, nil
}

// mutate loads the store, applies fn and saves the result. Nothing is
// written when fn fails.
func (b *Book) mutate(ctx context.Context, fn func(*contacts.Store) error) (*contacts.Store, error) {
	store, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(store); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.Vault.Save(store); err != nil {
		return nil, err
	}
	b.Logger.Debugf("Saved %d contacts to %s", store.Len(), b.Vault.Path)
	return store, nil
}
