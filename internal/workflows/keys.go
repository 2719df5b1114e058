package workflows

import (
	"context"

	"github.com/PolarWolf314/rolodex/internal/audit"
	"github.com/PolarWolf314/rolodex/internal/secrets"
)

// KeyInitOptions configures the key init workflow.
type KeyInitOptions struct {
	// Path is the key file to create.
	Path string

	// Kind selects a random key or a passphrase-derived key.
	Kind secrets.KeyKind

	// Passphrase reads the passphrase for passphrase keys.
	Passphrase secrets.PassphraseFunc

	// Force replaces an existing key file.
	Force bool

	// AuditPath is the audit log to record the new key in.
	AuditPath string
}

// InitKey creates the key file that seals the contact file.
//
// Returns ErrKeyExists if a key file exists and Force is not set.
func InitKey(ctx context.Context, opts KeyInitOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := secrets.CreateKeyFile(opts.Path, opts.Kind, opts.Passphrase, opts.Force); err != nil {
		return err
	}

	audit.New(opts.AuditPath).Record(audit.Entry{
		Operation: audit.OpKeyInit,
		Path:      opts.Path,
		Mode:      string(opts.Kind),
	})
	return nil
}
