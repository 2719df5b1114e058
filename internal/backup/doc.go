// Package backup keeps timestamped copies of the encrypted contact file.
//
// A backup is a byte copy of the persisted file named
// <base>-YYYYMMDD-HHMMSS.ffffff<ext>, with the timestamp in UTC, so backup
// names sort chronologically. Backups stay encrypted with the same key as
// the contact file.
package backup
