package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/restkit/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "restkit",
	Short: "restkit serves schema-driven JSON resources",
	Long: `restkit exposes serializer schemas as paginated JSON endpoints.
Settings come from RESTKIT_* environment variables, an optional .env file
and an optional YAML settings file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
			if err := config.LoadEnv(envFile); err != nil {
				return err
			}
		}
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			if _, err := config.LoadFile(path); err != nil {
				return err
			}
		}
		return nil
	},
}

// Execute runs the command selected by the process arguments.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML settings file, keyed like the settings command output")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file loaded before reading the environment")
}
