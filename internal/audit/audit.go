package audit

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/rolodex/internal/utils"
)

// TimestampLayout is the layout of Entry.Timestamp: RFC3339 with
// microseconds, always UTC.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Operation names recorded in the audit log.
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpExport  = "export"
	OpImport  = "import"
	OpBackup  = "backup"
	OpRestore = "restore"
	OpPrune   = "prune"
	OpKeyInit = "key-init"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	User      string `json:"user"`    // OS user running the command.
	Session   string `json:"session"` // Random id shared by one process.
	Operation string `json:"op"`

	// Optional fields depending on operation.
	ContactID   uint64 `json:"contact_id,omitempty"`   // For add/update/delete.
	ContactName string `json:"contact_name,omitempty"` // For add/update/delete.
	Format      string `json:"format,omitempty"`       // For export/import.
	Path        string `json:"path,omitempty"`         // For export/import/backup/restore.
	Count       int    `json:"count,omitempty"`        // Contacts or backups affected.
	Mode        string `json:"mode,omitempty"`         // For import (merge/replace).
}

// Time parses the entry timestamp.
func (e Entry) Time() (time.Time, error) {
	t, err := time.Parse(TimestampLayout, e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, e.Timestamp)
	}
	return t, err
}

// Log appends entries to a JSON Lines file.
type Log struct {
	Path    string
	User    string
	Session string

	// Now defaults to time.Now.
	Now func() time.Time
}

// New returns a Log writing to path, stamped with the current OS user and
// a fresh session id.
func New(path string) *Log {
	user, err := utils.GetUsername()
	if err != nil {
		user = "unknown"
	}
	return &Log{
		Path:    path,
		User:    user,
		Session: uuid.NewString(),
	}
}

// Record appends an entry to the audit log, filling in the timestamp, user
// and session. Failures are ignored: an operation never fails because its
// audit entry could not be written. A nil Log or empty path records nothing.
func (l *Log) Record(entry Entry) {
	if l == nil || l.Path == "" {
		return
	}

	if entry.Timestamp == "" {
		now := time.Now
		if l.Now != nil {
			now = l.Now
		}
		entry.Timestamp = now().UTC().Format(TimestampLayout)
	}
	if entry.User == "" {
		entry.User = l.User
	}
	if entry.Session == "" {
		entry.Session = l.Session
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Partial writes leave malformed lines.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
