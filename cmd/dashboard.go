package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/A5TEX/HSLU-Module-Master/pkg/catalogue"
	"github.com/A5TEX/HSLU-Module-Master/pkg/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your study progress",
	Long:  `Show obtained ECTS per module type against your program's requirements, your average grade and the per-semester breakdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.student(cmd.Context())
		if err != nil {
			return err
		}

		// The dashboard degrades gracefully when the requirements are
		// unavailable, so a fetch failure is not fatal.
		var requirements *catalogue.ECTSRequirements
		_ = spinner.New().
			Title("Fetching program requirements...").
			Action(func() {
				requirements, _ = s.catalogue.ECTSRequirements(rec.StudyProgram)
			}).
			Run()

		fmt.Println(tui.RenderDashboard(rec, requirements))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
