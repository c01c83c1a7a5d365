package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/flashbar/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the flashbar configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}
		fmt.Println(path)
		return nil
	},
}

var configInitOpts struct {
	force bool
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}

		if !configInitOpts.force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Println("Wrote default config to", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false,
		"Overwrite an existing config file")
}
