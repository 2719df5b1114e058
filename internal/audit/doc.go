// Package audit provides the audit trail for rolodex operations.
//
// Every change to the contact file (add, update, delete, import, restore)
// and every file it writes elsewhere (export, backup) is recorded in an
// audit log, separate from the human-readable activity log.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line), by
// default at:
//
//	$XDG_DATA_HOME/rolodex/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - OS user and a session id shared by all entries of one process
//   - Operation name
//   - Operation-specific details (contact id and name, format, path, counts)
//
// Contact phone numbers, emails and notes are never written to the log.
//
// # Usage
//
//	log := audit.New(path)
//	log.Record(audit.Entry{Operation: audit.OpAdd, ContactID: 3, ContactName: "Ann"})
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries to parse the audit log for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
