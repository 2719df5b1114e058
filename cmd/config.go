package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/rolodex/internal/configs"
	"github.com/PolarWolf314/rolodex/internal/ui"
	"github.com/PolarWolf314/rolodex/internal/utils"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rolodex configuration",
	Long: `Provides commands for creating and inspecting the configuration file.

The config file is TOML with these sections:
  [storage] data_file, format
  [keys]    key_file
  [backup]  dir, keep
  [log]     file, audit_file

Examples:
  # Write the default configuration
  rolodex config init

  # Show the configuration in effect
  rolodex config show`,
}

var (
	configInitForce bool
	configShowJSON  bool
)

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigCommandState resets the config commands' global state for testing.
func resetConfigCommandState() {
	configInitForce = false
	configShowJSON = false
	resetCobraFlagState(ConfigCmd)
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		path := resolvedConfigPath()
		out := cmd.OutOrStdout()

		if utils.FileExists(path) && !configInitForce {
			fmt.Fprintf(out, "%s Config already exists at %s\n%s Use %s to overwrite it\n",
				ui.Info.Sprint("ℹ"), ui.Path.Sprint(path), ui.Info.Sprint("→"), ui.Code.Sprint("--force"))
			return nil
		}

		if err := configs.Save(path, configs.Defaults(settings)); err != nil {
			return Logger.ErrorfAndReturn("Failed to write config: %v", err)
		}

		fmt.Fprintf(out, "%s Wrote default config to %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(path))
		if !utils.FileExists(configs.Defaults(settings).Keys.KeyFile) {
			fmt.Fprintf(out, "%s Run %s to create the encryption key\n", ui.Info.Sprint("→"), ui.Code.Sprint("rolodex key init"))
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the configuration in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		cfg, err := loadedConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		out := cmd.OutOrStdout()
		if configShowJSON {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config to JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		path := resolvedConfigPath()
		if utils.FileExists(path) {
			fmt.Fprintln(out, ui.Muted.Sprint("# "+path))
		} else {
			fmt.Fprintln(out, ui.Muted.Sprint("# defaults, no file at "+path))
		}
		return toml.NewEncoder(out).Encode(cfg)
	},
}
