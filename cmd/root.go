package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "modulemaster",
	Short: "A CLI for HSLU study progress and timetables",
	Long: `modulemaster reconciles your MyCampus enrollments with the HSLU module
catalogue and shows your study progress, grades and weekly timetable.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
