package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/antika/internal/config"
	"github.com/thoreinstein/antika/internal/errors"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage antika configuration",
	Long: `Manage antika configuration stored in ~/.config/antika/config.yaml.

Values can also come from ANTIKA_* environment variables, for example
ANTIKA_WORKFLOW_FILE or ANTIKA_HISTORY_ENABLED.

Without a subcommand, lists the effective configuration.`,
	Example: `  # List all configuration
  antika config

  # Use a YAML workflow file
  antika config set workflow_file ~/work/workflow.yaml

  # Fail runs that skip any tool
  antika config set strict true

See Also: antika doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. Nested keys use dot notation.`,
	Example: `  antika config get workflow_file
  antika config get history.enabled`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runConfigGetWithWriter(os.Stdout, args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it to the config file.

The value is validated before anything is written.`,
	Example: `  antika config set strict true
  antika config set history.path ~/.local/share/antika/history.db`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runConfigSetWithWriter(os.Stdout, configFilePath(), args[0], args[1])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List the effective configuration in YAML format.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintln(os.Stdout, configFilePath())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

If no configuration file exists, one is written with the current values first.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runConfigEditWithWriter(os.Stderr, configFilePath())
	},
}

// configFilePath returns the file Viper read, or where one would be written.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.DefaultPath()
}

func runConfigList(_ *cobra.Command, _ []string) error {
	return runConfigListWithWriter(os.Stdout)
}

func runConfigListWithWriter(w io.Writer) error {
	data, err := yaml.Marshal(currentConfig())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return err
}

func runConfigGetWithWriter(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}
	fmt.Fprintln(w, viper.GetString(key))
	return nil
}

func runConfigSetWithWriter(w io.Writer, path, key, value string) error {
	if _, err := config.Set(path, key, value); err != nil {
		return errors.NewUserError(err, "")
	}
	fmt.Fprintf(w, "Set %s = %s\n", key, value)
	// later lookups in this process see the new value
	appConfig = nil
	return nil
}

func runConfigEditWithWriter(w io.Writer, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(path, currentConfig()); err != nil {
			return errors.NewSystemError(err, "")
		}
		fmt.Fprintf(w, "Created %s\n", path)
	}
	fmt.Fprintf(w, "Location: %s\n", path)
	if err := openEditor(path); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "running editor"), "set $EDITOR to your preferred editor")
	}
	return nil
}
