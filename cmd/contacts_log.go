package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/internal/audit"
	"github.com/PolarWolf314/rolodex/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logContact   uint64
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().Uint64Var(&logContact, "contact", 0, "filter by contact id")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")

	ContactsCmd.AddCommand(logCmd)
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logContact = 0
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of contact book operations.

Shows what was changed, by whom and when. Contact details other than ids
and names are never logged.

Examples:
  rolodex contacts log                            # View full log
  rolodex contacts log -n 10                      # Last 10 entries
  rolodex contacts log --reverse                  # Most recent first
  rolodex contacts log --contact 3                # One contact's history
  rolodex contacts log --operation add,delete     # Filter by operation
  rolodex contacts log --since 2024-01-01         # Filter by date
  rolodex contacts log --json                     # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	cfg, err := loadedConfig()
	if err != nil {
		return report(cmd, err)
	}

	opts := workflows.LogOptions{
		Path:       cfg.Log.AuditFile,
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		ContactID:  logContact,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(commandContext(cmd), opts)
	if err != nil {
		return report(cmd, err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	out := cmd.OutOrStdout()
	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Fprintln(out, "No audit log entries found.")
		} else {
			fmt.Fprintln(out, "No audit log entries found matching the filters.")
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(out, result.Entries)
	}

	if logOneline {
		outputLogOneline(out, result.Entries)
		return nil
	}

	outputLogDefault(out, result.Entries)
	return nil
}

func outputLogJSON(out io.Writer, entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func outputLogOneline(out io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(out, "%s %s %s %s\n", workflows.FormatDate(e), e.User, e.Operation, workflows.FormatDetails(e))
	}
}

func outputLogDefault(out io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(out, "%-19s  %-12s  %-8s  %s\n", workflows.FormatDateTime(e), e.User, e.Operation, workflows.FormatDetails(e))
	}
}
