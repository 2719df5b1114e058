package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PolarWolf314/rolodex/internal/audit"
)

// TestLogCommand contains integration tests for the `rolodex contacts log` command.
func TestLogCommand(t *testing.T) {
	t.Run("NoEntries", func(t *testing.T) {
		setupTestEnvironment(t)

		output := mustRun(t, "contacts", "log")
		if !strings.Contains(output, "No audit log entries found.") {
			t.Errorf("Unexpected output: %s", output)
		}
	})

	t.Run("RecordsOperations", func(t *testing.T) {
		setupTestEnvironment(t)
		initializeKey(t)
		mustRun(t, "contacts", "add", "Ann Lee")
		mustRun(t, "contacts", "add", "Bob Stone")
		mustRun(t, "contacts", "update", "2", "--phone", "555-0000")
		mustRun(t, "contacts", "delete", "1")
		mustRun(t, "contacts", "backup")

		var entries []audit.Entry
		output := mustRun(t, "contacts", "log", "--json")
		if err := json.Unmarshal([]byte(output), &entries); err != nil {
			t.Fatalf("Failed to parse log JSON: %v\n%s", err, output)
		}

		var ops []string
		for _, e := range entries {
			ops = append(ops, e.Operation)
		}
		want := []string{audit.OpKeyInit, audit.OpAdd, audit.OpAdd, audit.OpUpdate, audit.OpDelete, audit.OpBackup}
		if strings.Join(ops, ",") != strings.Join(want, ",") {
			t.Errorf("Expected operations %v, got %v", want, ops)
		}
	})

	t.Run("Filters", func(t *testing.T) {
		setupTestEnvironment(t)
		initializeKey(t)
		mustRun(t, "contacts", "add", "Ann Lee")
		mustRun(t, "contacts", "add", "Bob Stone")
		mustRun(t, "contacts", "delete", "2")

		output := mustRun(t, "contacts", "log", "--operation", "delete", "--oneline")
		if !strings.Contains(output, "delete") || strings.Contains(output, " add ") {
			t.Errorf("Expected only delete entries: %s", output)
		}

		output = mustRun(t, "contacts", "log", "--contact", "1", "--oneline")
		if !strings.Contains(output, "Ann Lee") || strings.Contains(output, "Bob Stone") {
			t.Errorf("Expected only entries for contact 1: %s", output)
		}

		output = mustRun(t, "contacts", "log", "-n", "1", "--reverse", "--oneline")
		if lines := strings.Split(strings.TrimSpace(output), "\n"); len(lines) != 1 || !strings.Contains(lines[0], "delete") {
			t.Errorf("Expected only the newest entry: %s", output)
		}

		output = mustRun(t, "contacts", "log", "--since", "2000-01-01", "--until", "2000-12-31")
		if !strings.Contains(output, "matching the filters") {
			t.Errorf("Expected no entries in 2000: %s", output)
		}
	})

	t.Run("BadDate", func(t *testing.T) {
		setupTestEnvironment(t)
		initializeKey(t)

		output, err := runCLI(t, "contacts", "log", "--since", "yesterday")
		if err != nil {
			t.Errorf("Expected bad date to be reported, not returned: %v", err)
		}
		if !strings.Contains(output, "✗") {
			t.Errorf("Expected error marker: %s", output)
		}
	})
}
