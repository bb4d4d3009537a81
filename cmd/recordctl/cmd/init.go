/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/brokercore/pkg/config"
)

func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a default configuration file with a generated API key.

The file goes to the --config path, or ~/.config/recordctl/config.yaml when
none is given. An existing file is left alone unless --force is set.

Examples:
  recordctl init
  recordctl init --config ./recordctl.yaml --print-key`,
		Args: cobra.NoArgs,
		// init creates the file the root command would otherwise try to load
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			force, _ := cmd.Flags().GetBool("force")
			printKey, _ := cmd.Flags().GetBool("print-key")

			if configPath == "" {
				configPath = config.GetDefaultConfigPath()
			}

			if config.ConfigExists(configPath) && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
			}

			cfg, err := config.BootstrapConfig(configPath)
			if err != nil {
				return err
			}

			cmd.Printf("Configuration written to %s\n", configPath)
			if printKey {
				cmd.Printf("API Key: %s\n", cfg.Security.APIKey)
			}
			return nil
		},
	}

	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key")

	return initCmd
}
