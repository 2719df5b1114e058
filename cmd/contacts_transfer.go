package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/internal/codec"
	"github.com/PolarWolf314/rolodex/internal/ui"
	"github.com/PolarWolf314/rolodex/internal/utils"
	"github.com/PolarWolf314/rolodex/internal/workflows"
)

var (
	transferFormat string
	importMode     string
	importDryRun   bool
)

func init() {
	exportCmd.Flags().StringVarP(&transferFormat, "format", "f", "", "output format: json, csv or gob (default from file extension)")
	importCmd.Flags().StringVarP(&transferFormat, "format", "f", "", "input format: json, csv or gob (default from file extension)")
	importCmd.Flags().StringVarP(&importMode, "mode", "m", "merge", "merge (add as new contacts) or replace (discard current contacts)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "show what would be imported without making changes")

	ContactsCmd.AddCommand(exportCmd)
	ContactsCmd.AddCommand(importCmd)
}

// resetTransferCommandState resets the export and import commands' global state for testing.
func resetTransferCommandState() {
	transferFormat = ""
	importMode = "merge"
	importDryRun = false
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export contacts to an unencrypted file",
	Long: `Writes every contact to FILE in json, csv or gob format. The format is
taken from --format or, failing that, from the file extension. Without FILE
the data is written to standard output and --format is required.

The exported file is NOT encrypted.

Examples:
  rolodex contacts export contacts.csv
  rolodex contacts export backup.dat --format gob
  rolodex contacts export --format json > contacts.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		ctx := commandContext(cmd)

		opts := workflows.ExportOptions{Format: codec.Format(transferFormat)}
		if len(args) == 1 {
			opts.Path = args[0]
		}

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		if opts.Path == "" {
			result, err := book.Export(ctx, opts)
			if err != nil {
				return report(cmd, err)
			}
			_, err = cmd.OutOrStdout().Write(result.Data)
			return err
		}

		spinner, cleanup := startSpinner(cmd, "Exporting contacts...")
		defer cleanup()

		result, err := book.Export(ctx, opts)
		if err != nil {
			return reportSpinner(spinner, err)
		}

		spinner.FinalMSG = fmt.Sprintf("%s Exported %d contacts to %s (%s)\n%s",
			ui.Success.Sprint("✓"), result.Count, ui.Path.Sprint(result.Path), result.Format,
			ui.Warning.Sprint("⚠")+" The export is not encrypted")
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [FILE]",
	Short: "Import contacts from a json, csv or gob file",
	Long: `Reads contacts from FILE, or standard input when FILE is omitted.

In merge mode (the default) every imported record is added as a new
contact with a fresh id. In replace mode the current contacts are backed up
and then replaced by the imported ones.

Examples:
  rolodex contacts import contacts.csv
  rolodex contacts import old.json --mode replace
  rolodex contacts import contacts.csv --dry-run
  cat contacts.json | rolodex contacts import --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		ctx := commandContext(cmd)

		mode, err := workflows.ParseImportMode(importMode)
		if err != nil {
			return report(cmd, err)
		}

		opts := workflows.ImportOptions{
			Format: codec.Format(transferFormat),
			Mode:   mode,
			DryRun: importDryRun,
		}
		if len(args) == 1 {
			opts.Path = args[0]
		} else {
			Logger.Debugf("Reading import data from stdin")
			data, err := utils.ReadInput(cmd.InOrStdin())
			if err != nil {
				return report(cmd, err)
			}
			opts.Data = data
		}

		book, err := openBook(ctx)
		if err != nil {
			return report(cmd, err)
		}

		spinner, cleanup := startSpinner(cmd, "Importing contacts...")
		defer cleanup()

		result, err := book.Import(ctx, opts)
		if err != nil {
			return reportSpinner(spinner, err)
		}

		if result.DryRun {
			spinner.FinalMSG = fmt.Sprintf("%s Dry run: would import %d contacts (%s); the book would hold %d",
				ui.Info.Sprint("ℹ"), result.Imported, result.Mode, result.Total)
			if result.Replaced > 0 {
				spinner.FinalMSG += fmt.Sprintf("\n%s %d current contacts would be replaced", ui.Warning.Sprint("⚠"), result.Replaced)
			}
			return nil
		}

		spinner.FinalMSG = fmt.Sprintf("%s Imported %d contacts (%s); the book now holds %d",
			ui.Success.Sprint("✓"), result.Imported, result.Mode, result.Total)
		if result.SafetyBackup != "" {
			spinner.FinalMSG += "\n" + ui.Info.Sprint("→") + " Previous contacts saved to " + ui.Path.Sprint(result.SafetyBackup)
		}
		return nil
	},
}
