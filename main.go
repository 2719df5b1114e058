package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "rolodex",
	Short: "Rolodex - an encrypted contact book for the terminal.",
	Long: `Rolodex keeps your contacts in a single encrypted file and lets you
manage them from an interactive menu or with one-off commands.

Features:
  - Add, view, search, update and delete contacts
  - Export and import contacts as json, csv or gob
  - Timestamped backups with restore and pruning
  - An audit log of every change

Usage:
  rolodex              Start the interactive menu
  rolodex <command> [flags]

Available Commands:
  contacts   Manage contacts
  key        Manage the encryption key
  config     Manage configuration

Run 'rolodex help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cmd.Register(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
