package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/restkit/pkg/config"
	"github.com/dmitrymomot/restkit/pkg/pagination"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective settings as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		if _, err := pagination.New(s.DefaultPaginationClass, s); err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(s)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
