package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/rolodex/internal/configs"
	logger "github.com/PolarWolf314/rolodex/internal/logging"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	// settings locates the default config and data directories.
	settings *configs.Settings

	// activeConfig is loaded in PersistentPreRun; configErr is kept so
	// config commands can still run when the file is broken.
	activeConfig *configs.Config
	configErr    error

	logFile *os.File

	// readPassphrase is replaced in tests.
	readPassphrase = utils.ReadPassphrase
)

// Register adds the persistent flags, lifecycle hooks and command groups to root.
// Running root without a subcommand starts the interactive shell.
func Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rolodex/config.toml)")

	root.PersistentPreRunE = setup
	root.PersistentPostRun = teardown
	root.RunE = runShell

	root.AddCommand(ContactsCmd)
	root.AddCommand(KeyCmd)
	root.AddCommand(ConfigCmd)
	root.AddCommand(shellCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	// Diagnostics go to stderr so stdout only carries command output,
	// such as an export piped to a file.
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
		Out:     cmd.ErrOrStderr(),
		Err:     cmd.ErrOrStderr(),
	}
	Logger.Debugf("Initializing rolodex with verbose=%t, debug=%t", verbose, debug)

	if settings == nil {
		s, err := configs.DefaultSettings()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to locate config directory: %v", err)
		}
		settings = s
	}

	path := resolvedConfigPath()
	Logger.Debugf("Loading config from %s", path)
	activeConfig, configErr = configs.Load(path, settings)
	if configErr != nil {
		Logger.Debugf("Config not usable: %v", configErr)
		return nil
	}

	if activeConfig.Log.File != "" {
		f, err := logger.OpenFile(activeConfig.Log.File)
		if err != nil {
			Logger.Warnf("Activity log disabled: %v", err)
			return nil
		}
		logFile = f
		Logger.File = f
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		Logger.File = nil
	}
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return settings.ConfigPath()
}

// loadedConfig returns the config loaded for this command.
func loadedConfig() (*configs.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	if activeConfig == nil {
		return nil, Logger.ErrorfAndReturn("configuration was not loaded")
	}
	return activeConfig, nil
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	activeConfig = nil
	configErr = nil
	readPassphrase = utils.ReadPassphrase
	resetContactsCommandState()
	resetTransferCommandState()
	resetBackupCommandState()
	resetLogCommandState()
	resetKeyCommandState()
	resetConfigCommandState()
}

// SetSettings overrides the default config and data directories for testing.
func SetSettings(s *configs.Settings) {
	settings = s
}

// resetCobraFlagState clears Changed on every flag below c to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
