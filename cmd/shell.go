package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/internal/shell"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive contact book menu",
	Long: `Starts the interactive menu for adding, viewing, searching, updating and
deleting contacts, and for exporting, importing, backing up and restoring them.

Running rolodex without a command does the same.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting interactive shell")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	book, err := openBook(ctx)
	if err != nil {
		return report(cmd, err)
	}

	out := cmd.OutOrStdout()
	if utils.IsOutputTerminal() && utils.IsTerminal() {
		fmt.Fprint(out, shell.Banner())
	}

	return shell.New(book, Logger).Run(ctx, cmd.InOrStdin(), out)
}
