package errors

import "errors"

// Data errors indicate bad input or references to records that do not exist.
var (
	// ErrValidation indicates a contact field failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates no contact exists with the given id.
	ErrNotFound = errors.New("contact not found")
)

// Format errors indicate failures while serializing or parsing contact data.
var (
	// ErrUnsupportedFormat indicates an unknown serialization format tag.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrCorruptData indicates serialized data could not be parsed.
	ErrCorruptData = errors.New("corrupt data")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrAuthentication indicates ciphertext failed authentication: wrong key or tampered data.
	ErrAuthentication = errors.New("authentication failed: wrong key or tampered data")

	// ErrKeyNotFound indicates the encryption key file could not be located.
	ErrKeyNotFound = errors.New("encryption key not found")

	// ErrKeyExists indicates a key file already exists and would be overwritten.
	ErrKeyExists = errors.New("encryption key already exists")

	// ErrInvalidKeyLength indicates the symmetric key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")

	// ErrInvalidKeyFile indicates the key file is malformed or of an unknown kind.
	ErrInvalidKeyFile = errors.New("invalid key file")
)

// File errors indicate issues with file access.
var (
	// ErrIO indicates a file system operation failed.
	ErrIO = errors.New("i/o error")

	// ErrNoBackups indicates the backup directory holds no backups.
	ErrNoBackups = errors.New("no backups found")
)
