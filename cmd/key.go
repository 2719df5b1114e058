package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
	"github.com/PolarWolf314/rolodex/internal/secrets"
	"github.com/PolarWolf314/rolodex/internal/ui"
	"github.com/PolarWolf314/rolodex/internal/workflows"
)

// KeyCmd is the top-level key command.
var KeyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the key that encrypts the contact book",
}

var (
	keyInitPassphrase bool
	keyInitForce      bool
)

func init() {
	keyInitCmd.Flags().BoolVar(&keyInitPassphrase, "passphrase", false, "derive the key from a passphrase instead of storing a random key")
	keyInitCmd.Flags().BoolVar(&keyInitForce, "force", false, "replace an existing key file")
	KeyCmd.AddCommand(keyInitCmd)
}

// resetKeyCommandState resets the key commands' global state for testing.
func resetKeyCommandState() {
	keyInitPassphrase = false
	keyInitForce = false
	resetCobraFlagState(KeyCmd)
}

var keyInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the encryption key file",
	Long: `Creates the key file named by [keys] key_file in the config.

By default a random key is stored in the key file. With --passphrase the
key file only holds a salt and the key is derived from a passphrase that
is asked for every time the contact book is opened.

Replacing the key with --force makes an existing contact file and its
backups unreadable.

Examples:
  rolodex key init
  rolodex key init --passphrase`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting key init command")

		cfg, err := loadedConfig()
		if err != nil {
			return report(cmd, err)
		}

		opts := workflows.KeyInitOptions{
			Path:      cfg.Keys.KeyFile,
			Kind:      secrets.KeyKindRandom,
			Force:     keyInitForce,
			AuditPath: cfg.Log.AuditFile,
		}
		if keyInitPassphrase {
			opts.Kind = secrets.KeyKindPassphrase
			opts.Passphrase = confirmedPassphrase
		}

		if err := workflows.InitKey(commandContext(cmd), opts); err != nil {
			return report(cmd, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Created %s key at %s\n", ui.Success.Sprint("✓"), opts.Kind, ui.Path.Sprint(opts.Path))
		fmt.Fprintln(out, ui.Warning.Sprint("⚠")+" Keep this file safe: without it the contact book cannot be decrypted")
		return nil
	},
}

// confirmedPassphrase reads a new passphrase twice and checks both match.
func confirmedPassphrase(prompt string) ([]byte, error) {
	first, err := readPassphrase(prompt)
	if err != nil {
		return nil, err
	}
	second, err := readPassphrase("Repeat passphrase: ")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(first, second) {
		return nil, fmt.Errorf("%w: passphrases do not match", kerrors.ErrValidation)
	}
	return first, nil
}
