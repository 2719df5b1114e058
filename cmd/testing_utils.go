// Package cmd contains testing utilities shared between the command tests.
// This file provides common functions for setting up isolated config and
// data directories and running the CLI against them.
package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/internal/configs"
)

// setupTestEnvironment points the CLI at fresh config and data directories.
func setupTestEnvironment(t *testing.T) *configs.Settings {
	t.Helper()
	dir := t.TempDir()
	s := &configs.Settings{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	}

	color.NoColor = true
	ResetGlobalState()
	SetSettings(s)

	t.Cleanup(func() {
		teardown(nil, nil)
		ResetGlobalState()
		SetSettings(nil)
	})
	return s
}

// createTestCLI creates a complete CLI instance for testing with the given arguments.
func createTestCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	ResetGlobalState()

	rootCmd := &cobra.Command{
		Use:           "rolodex",
		Short:         "Rolodex - an encrypted contact book for the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	Register(rootCmd)

	if stdin != nil {
		rootCmd.SetIn(stdin)
	}
	if stdout != nil {
		rootCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
	}
	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes the CLI and returns everything written to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIWithInput(t, "", args...)
}

// runCLIWithInput is runCLI with input supplied on stdin.
func runCLIWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := createTestCLI(args, strings.NewReader(input), &out, &out)
	err := root.Execute()
	teardown(nil, nil)
	return out.String(), err
}

// mustRun runs the CLI and fails the test if the command returns an error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("rolodex %s failed: %v\nOutput: %s", strings.Join(args, " "), err, output)
	}
	return output
}

// initializeKey creates a random key file in the test environment.
func initializeKey(t *testing.T) {
	t.Helper()
	mustRun(t, "key", "init")
}

// verifyFileExists fails the test if path does not exist.
func verifyFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file was not created at %s", path)
	}
}
