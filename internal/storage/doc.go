// Package storage persists a contact store as a single encrypted file.
//
// The file holds Encrypt(Encode(store, format), key). Writes go through
// utils.AtomicWriteFile, so a crash mid-save leaves either the old file or
// the new one, never a partial file.
package storage
