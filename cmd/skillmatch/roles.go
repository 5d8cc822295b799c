package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/ranking"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the built-in role profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeJSON(cmd.OutOrStdout(), ranking.DefaultProfiles().All())
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
