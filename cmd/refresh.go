package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the student record from MyCampus",
	Long:  `Discard the cached record and rebuild it by scraping your MyCampus enrollments and reconciling them against the module catalogue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		var rec *student.Record
		var rebuildErr error
		_ = spinner.New().
			Title("Rebuilding your student record from MyCampus...").
			Action(func() {
				rec, rebuildErr = s.svc.Rebuild(cmd.Context())
			}).
			Run()

		if rebuildErr != nil {
			return fmt.Errorf("could not rebuild student record: %w", rebuildErr)
		}

		fmt.Printf("Rebuilt record with %d modules for program %s\n",
			len(rec.ModulesVisited), rec.StudyProgram)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
