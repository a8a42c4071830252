package cmd

import (
	"github.com/spf13/cobra"

	"github.com/A5TEX/HSLU-Module-Master/pkg/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage modulemaster configuration",
	Long:  "View or edit your local configuration settings (theme, storage backend, study program).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
