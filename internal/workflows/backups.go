package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/rolodex/internal/audit"
	"github.com/PolarWolf314/rolodex/internal/backup"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// BackupResult contains the outcome of a backup operation.
type BackupResult struct {
	// Path is the new backup file.
	Path string

	// Pruned lists older backups removed to honour Book.Keep.
	Pruned []string
}

// Backup copies the contact file into the backup directory, then prunes
// old backups down to Book.Keep.
//
// Returns ErrIO wrapping os.ErrNotExist if there is no contact file yet.
func (b *Book) Backup(ctx context.Context) (*BackupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := b.Backups.Backup(b.Vault.Path)
	if err != nil {
		return nil, err
	}
	b.Logger.Infof("Backed up %s to %s", b.Vault.Path, path)
	b.Audit.Record(audit.Entry{Operation: audit.OpBackup, Path: path})

	result := &BackupResult{Path: path}
	if b.Keep > 0 {
		pruned, err := b.Backups.Prune(b.Keep)
		if err != nil {
			b.Logger.Warnf("Failed to prune old backups: %v", err)
		}
		result.Pruned = pruned
		for _, p := range pruned {
			b.Logger.Debugf("Pruned backup %s", p)
		}
	}
	return result, nil
}

// RestoreOptions configures the restore workflow.
type RestoreOptions struct {
	// Path is the backup to restore. If empty, the newest backup is used.
	Path string
}

// RestoreResult contains the outcome of a restore operation.
type RestoreResult struct {
	// Path is the backup that was restored.
	Path string

	// Count is the number of contacts restored.
	Count int

	// SafetyBackup is the backup of the replaced contact file, if one existed.
	SafetyBackup string
}

// Restore replaces every stored contact with the contents of a backup.
// The current contact file is backed up first so the replaced state can
// itself be restored.
//
// Returns ErrNoBackups if no path is given and no backups exist, and ErrIO
// if the backup file is missing.
func (b *Book) Restore(ctx context.Context, opts RestoreOptions) (*RestoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := opts.Path
	if path == "" {
		latest, err := b.Backups.Latest()
		if err != nil {
			return nil, err
		}
		path = latest.Path
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: backup %s: %w", kerrors.ErrIO, path, err)
	}

	store, err := b.Backups.Restore(path)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{Path: path, Count: store.Len()}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.Vault.Exists() {
		if result.SafetyBackup, err = b.Backups.Backup(b.Vault.Path); err != nil {
			return nil, fmt.Errorf("backing up before restore: %w", err)
		}
		b.Logger.Infof("Backed up current contacts to %s", result.SafetyBackup)
	}

	if err := b.Vault.Save(store); err != nil {
		return nil, err
	}

	b.Logger.Infof("Restored %d contacts from %s", result.Count, path)
	b.Audit.Record(audit.Entry{Operation: audit.OpRestore, Path: path, Count: result.Count})
	return result, nil
}

// ListBackups lists the available backups, newest first.
func (b *Book) ListBackups(ctx context.Context) ([]backup.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Backups.List()
}

// PruneBackups removes all but the newest keep backups and returns the
// removed paths.
func (b *Book) PruneBackups(ctx context.Context, keep int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	removed, err := b.Backups.Prune(keep)
	if err != nil {
		return removed, err
	}
	if len(removed) > 0 {
		b.Logger.Infof("Pruned %d backups, kept %d", len(removed), keep)
		b.Audit.Record(audit.Entry{Operation: audit.OpPrune, Count: len(removed)})
	}
	return removed, nil
}
