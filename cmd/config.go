package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/jvim/internal/config"
)

var (
	configInitLocal bool
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the jvim configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configTarget(configInitLocal)
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <section.key> <value>",
	Short: "Set one configuration value, keeping comments",
	Example: `  jvim config set editor.collapse_length 80
  jvim config set history.path /tmp/jvim-history.db`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			if _, loaded, err := config.Load(""); err == nil && loaded != "" {
				path = loaded
			} else {
				path = config.DefaultConfigPath()
			}
		}
		if err := config.SaveSetting(path, args[0], args[1]); err != nil {
			return err
		}
		// Reject values that leave the file unusable.
		cfg, _, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%s now holds an invalid configuration: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, path, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if path == "" {
			path = "(defaults; no config file found)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// configTarget is where `config init` writes: --config, the project-local
// file, or the user config.
func configTarget(local bool) string {
	switch {
	case cfgFile != "":
		return cfgFile
	case local:
		return config.LocalConfigPath
	default:
		return config.DefaultConfigPath()
	}
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitLocal, "local", false, "write "+config.LocalConfigPath+" instead of the user config")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
