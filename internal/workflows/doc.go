// Package workflows provides high-level orchestration for rolodex commands.
//
// Workflows coordinate the contacts, codec, storage, backup and audit
// packages to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ and shell/ packages should be thin layers that:
//   - Parse command-line flags or shell input
//   - Call the appropriate workflow
//   - Format the result for display
//
// Workflows handle everything else:
//   - Loading and saving the encrypted contact file
//   - Taking backups before destructive operations
//   - Performing the core operation
//   - Recording audit trail entries
//
// # The Book
//
// A Book is built once per command by OpenBook from the loaded config and
// key. Every method that changes contacts loads the contact file, applies
// the change and saves it again before returning, so the file on disk is
// always current:
//
//   - Add, Update, Delete: single contact changes
//   - Get, List, Search: read-only queries
//   - Export, Import: plaintext exchange in json, csv or gob
//   - Backup, Restore, ListBackups, PruneBackups: encrypted snapshots
//
// Log and InitKey do not need a Book.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	_, err := book.Get(ctx, id)
//	if errors.Is(err, kerrors.ErrNotFound) {
//	    // Show user-friendly not found message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter
// and check it for cancellation before touching disk.
package workflows
