package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/internal/configs"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
	"github.com/PolarWolf314/rolodex/internal/shell"
	"github.com/PolarWolf314/rolodex/internal/ui"
	"github.com/PolarWolf314/rolodex/internal/workflows"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it
// to the command's output.
func startSpinner(cmd *cobra.Command, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(cmd.OutOrStdout(), finalMsg)
		}
	}

	return s, cleanup
}

// openBook loads the config and key and returns the contact book. On first
// use with the default key location a random key is created.
func openBook(ctx context.Context) (*workflows.Book, error) {
	cfg, err := loadedConfig()
	if err != nil {
		return nil, err
	}
	book, err := workflows.OpenBook(ctx, workflows.OpenOptions{
		Config:     cfg,
		Logger:     Logger,
		Passphrase: readPassphrase,
		CreateKey:  cfg.Keys.KeyFile == configs.Defaults(settings).Keys.KeyFile,
	})
	if err != nil {
		return nil, err
	}
	if book.CreatedKey != "" {
		Logger.Warnf("Created a new encryption key at %s. Keep it safe: without it the contact book cannot be decrypted", book.CreatedKey)
	}
	return book, nil
}

// formatError formats a workflow error for display to the user.
func formatError(err error) string {
	return shell.ErrorMessage(err)
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrValidation),
		errors.Is(err, kerrors.ErrNotFound),
		errors.Is(err, kerrors.ErrUnsupportedFormat),
		errors.Is(err, kerrors.ErrKeyNotFound),
		errors.Is(err, kerrors.ErrKeyExists),
		errors.Is(err, kerrors.ErrNoBackups):
		return false
	default:
		return true
	}
}

// report prints err for the user and returns it only when it is unexpected.
func report(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.OutOrStdout(), formatError(err))
	if isUnexpectedError(err) {
		return err
	}
	return nil
}

// reportSpinner is report for commands that show a spinner.
func reportSpinner(s *spinner.Spinner, err error) error {
	s.FinalMSG = formatError(err)
	if isUnexpectedError(err) {
		return err
	}
	return nil
}
