// Package errors provides typed error values for the rolodex application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Data errors: bad input or unknown records (ErrValidation, ErrNotFound)
//   - Format errors: serialization failures (ErrUnsupportedFormat, ErrCorruptData)
//   - Crypto errors: key and decryption failures (ErrAuthentication, ErrKeyNotFound)
//   - File errors: file system issues (ErrIO, ErrNoBackups)
//
// # Usage
//
// Return errors from internal packages wrapped with context:
//
//	return contacts.Contact{}, fmt.Errorf("contact %d: %w", id, errors.ErrNotFound)
//
// Handle errors in the CLI layer:
//
//	_, err := book.Delete(ctx, id)
//	if errors.Is(err, kerrors.ErrNotFound) {
//	    // Show user-friendly message
//	}
package errors
