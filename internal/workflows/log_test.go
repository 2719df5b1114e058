package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/rolodex/internal/audit"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

func writeAuditLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	data := `{"ts":"2024-01-10T09:00:00.000000Z","user":"ann","session":"s1","op":"add","contact_id":1,"contact_name":"Bob"}
{"ts":"2024-01-15T10:00:00.000000Z","user":"ann","session":"s1","op":"update","contact_id":1,"contact_name":"Bob"}
{"ts":"2024-01-20T11:00:00.000000Z","user":"ann","session":"s2","op":"add","contact_id":2,"contact_name":"Cy"}
{"ts":"2024-02-01T12:00:00.000000Z","user":"ann","session":"s2","op":"export","format":"csv","path":"/tmp/x.csv","count":2}
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLogFilters(t *testing.T) {
	path := writeAuditLog(t)

	tests := []struct {
		name    string
		opts    LogOptions
		wantOps []string
	}{
		{"all", LogOptions{}, []string{"add", "update", "add", "export"}},
		{"operation", LogOptions{Operations: "add, EXPORT"}, []string{"add", "add", "export"}},
		{"contact", LogOptions{ContactID: 1}, []string{"add", "update"}},
		{"since", LogOptions{Since: "2024-01-15"}, []string{"update", "add", "export"}},
		{"until includes whole day", LogOptions{Until: "2024-01-20"}, []string{"add", "update", "add"}},
		{"limit keeps most recent", LogOptions{Limit: 2}, []string{"add", "export"}},
		{"reverse with limit", LogOptions{Reverse: true, Limit: 2}, []string{"export", "add"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Path = path
			result, err := Log(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if result.TotalEntriesBeforeFilter != 4 {
				t.Errorf("expected 4 entries before filtering, got %d", result.TotalEntriesBeforeFilter)
			}
			var ops []string
			for _, e := range result.Entries {
				ops = append(ops, e.Operation)
			}
			if len(ops) != len(tt.wantOps) {
				t.Fatalf("expected ops %v, got %v", tt.wantOps, ops)
			}
			for i := range ops {
				if ops[i] != tt.wantOps[i] {
					t.Errorf("expected ops %v, got %v", tt.wantOps, ops)
					break
				}
			}
		})
	}
}

func TestLogInvalidDate(t *testing.T) {
	path := writeAuditLog(t)

	for _, opts := range []LogOptions{{Path: path, Since: "15/01/2024"}, {Path: path, Until: "yesterday"}} {
		if _, err := Log(context.Background(), opts); !errors.Is(err, kerrors.ErrValidation) {
			t.Errorf("expected ErrValidation for %+v, got %v", opts, err)
		}
	}
}

func TestLogMissingFile(t *testing.T) {
	result, err := Log(context.Background(), LogOptions{Path: filepath.Join(t.TempDir(), "none.jsonl")})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 0 || result.TotalEntriesBeforeFilter != 0 {
		t.Errorf("expected no entries, got %+v", result)
	}
}

func TestFormatDetails(t *testing.T) {
	tests := []struct {
		entry audit.Entry
		want  string
	}{
		{audit.Entry{Operation: audit.OpAdd, ContactID: 3, ContactName: "Ann"}, "#3 Ann"},
		{audit.Entry{Operation: audit.OpExport, Count: 2, Path: "/x.csv", Format: "csv"}, "2 contacts to /x.csv (csv)"},
		{audit.Entry{Operation: audit.OpImport, Count: 1, Format: "json", Mode: "merge"}, "1 contacts from stdin (json, merge)"},
		{audit.Entry{Operation: audit.OpPrune, Count: 4}, "4 backups removed"},
		{audit.Entry{Operation: "unknown"}, ""},
	}
	for _, tt := range tests {
		if got := FormatDetails(tt.entry); got != tt.want {
			t.Errorf("FormatDetails(%+v) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	e := audit.Entry{Timestamp: "2024-01-15T10:30:00.123456Z"}
	if got := FormatDateTime(e); got != "2024-01-15 10:30:00" {
		t.Errorf("FormatDateTime = %q", got)
	}
	if got := FormatDate(e); got != "2024-01-15" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(audit.Entry{Timestamp: "garbage"}); got != "garbage" {
		t.Errorf("FormatDate on garbage = %q", got)
	}
}
