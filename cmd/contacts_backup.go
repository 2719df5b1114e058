package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/internal/shell"
	"github.com/PolarWolf314/rolodex/internal/ui"
	"github.com/PolarWolf314/rolodex/internal/utils"
	"github.com/PolarWolf314/rolodex/internal/workflows"
)

var (
	backupsPrune int
	backupsJSON  bool
)

func init() {
	backupsCmd.Flags().IntVar(&backupsPrune, "prune", -1, "remove all but the newest N backups")
	backupsCmd.Flags().BoolVar(&backupsJSON, "json", false, "output as JSON array")

	ContactsCmd.AddCommand(backupCmd)
	ContactsCmd.AddCommand(restoreCmd)
	ContactsCmd.AddCommand(backupsCmd)
}

// resetBackupCommandState resets the backup commands' global state for testing.
func resetBackupCommandState() {
	backupsPrune = -1
	backupsJSON = false
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the encrypted contact file",
	Long: `Copies the encrypted contact file into the backup directory with a
timestamp in its name. Backups beyond [backup] keep in the config are
removed, oldest first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting backup command")
		ctx := commandContext(cmd)

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		spinner, cleanup := startSpinner(cmd, "Backing up contacts...")
		defer cleanup()

		result, err := book.Backup(ctx)
		if err != nil {
			return reportSpinner(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Backed up to " + ui.Path.Sprint(result.Path)
		if len(result.Pruned) > 0 {
			spinner.FinalMSG += "\n" + ui.Muted.Sprintf("removed %d old backups", len(result.Pruned))
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [BACKUP]",
	Short: "Replace all contacts with a backup",
	Long: `Replaces every contact with the contents of BACKUP, or of the newest
backup when BACKUP is omitted. The current contact file is backed up first.

Examples:
  rolodex contacts restore
  rolodex contacts restore ~/.local/share/rolodex/backups/contacts-20240301-120000.000000.rolodex`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting restore command")
		ctx := commandContext(cmd)

		var opts workflows.RestoreOptions
		if len(args) == 1 {
			opts.Path = args[0]
		}

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		spinner, cleanup := startSpinner(cmd, "Restoring contacts...")
		defer cleanup()

		result, err := book.Restore(ctx, opts)
		if err != nil {
			return reportSpinner(spinner, err)
		}

		spinner.FinalMSG = fmt.Sprintf("%s Restored %d contacts from %s", ui.Success.Sprint("✓"), result.Count, ui.Path.Sprint(result.Path))
		if result.SafetyBackup != "" {
			spinner.FinalMSG += "\n" + ui.Info.Sprint("→") + " Previous contacts saved to " + ui.Path.Sprint(result.SafetyBackup)
		}
		return nil
	},
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backups, newest first",
	Long: `Lists the backups in the backup directory, newest first.

Examples:
  rolodex contacts backups
  rolodex contacts backups --prune 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting backups command")
		ctx := commandContext(cmd)
		out := cmd.OutOrStdout()

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		if backupsPrune >= 0 {
			removed, err := book.PruneBackups(ctx, backupsPrune)
			if err != nil {
				return report(cmd, err)
			}
			if len(removed) > 0 {
				fmt.Fprintf(out, "%s Removed %d backups:%s", ui.Success.Sprint("✓"), len(removed), utils.FormatPaths(removed))
			}
		}

		backups, err := book.ListBackups(ctx)
		if err != nil {
			return report(cmd, err)
		}

		if backupsJSON {
			data, err := json.MarshalIndent(backups, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal backups to JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(backups) == 0 {
			fmt.Fprintln(out, "No backups found.")
			return nil
		}
		fmt.Fprint(out, shell.BackupList(backups))
		return nil
	},
}
