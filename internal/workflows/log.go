package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/rolodex/internal/audit"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Path is the audit log file.
	Path string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// ContactID filters entries to one contact. 0 means all contacts.
	ContactID uint64

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log. A missing log has no entries.
//
// Returns ErrValidation if a date filter is malformed.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading audit log: %w", kerrors.ErrIO, err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	filtered := entries

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if opts.ContactID != 0 {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return e.ContactID == opts.ContactID
		})
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrValidation)
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, err := e.Time()
			return err == nil && !t.Before(sinceTime)
		})
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrValidation)
		}
		// Include the entire day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, err := e.Time()
			return err == nil && !t.After(untilTime)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// filterByOperations filters entries by operation types.
func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	return filterEntries(entries, func(e audit.Entry) bool {
		return opSet[strings.ToLower(e.Operation)]
	})
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(e audit.Entry) string {
	t, err := e.Time()
	if err != nil {
		if len(e.Timestamp) >= 10 {
			return e.Timestamp[:10]
		}
		return e.Timestamp
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(e audit.Entry) string {
	t, err := e.Time()
	if err != nil {
		if len(e.Timestamp) >= 19 {
			return e.Timestamp[:19]
		}
		return e.Timestamp
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpAdd, audit.OpUpdate, audit.OpDelete:
		return fmt.Sprintf("#%d %s", e.ContactID, e.ContactName)
	case audit.OpExport:
		return fmt.Sprintf("%d contacts to %s (%s)", e.Count, e.Path, e.Format)
	case audit.OpImport:
		return fmt.Sprintf("%d contacts from %s (%s, %s)", e.Count, sourceName(e.Path), e.Format, e.Mode)
	case audit.OpBackup:
		return e.Path
	case audit.OpRestore:
		return fmt.Sprintf("%d contacts from %s", e.Count, e.Path)
	case audit.OpPrune:
		return fmt.Sprintf("%d backups removed", e.Count)
	case audit.OpKeyInit:
		return fmt.Sprintf("%s key at %s", e.Mode, e.Path)
	default:
		return ""
	}
}
