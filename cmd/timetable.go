package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/A5TEX/HSLU-Module-Master/pkg/semester"
	"github.com/A5TEX/HSLU-Module-Master/pkg/tui"
)

var timetableCmd = &cobra.Command{
	Use:   "timetable",
	Short: "Show the weekly timetable of a semester",
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

		sem, _ := cmd.Flags().GetString("semester")
		if sem == "" {
			sem = semester.Current(time.Now())
		} else if !semester.Valid(sem) {
			return fmt.Errorf("invalid semester %q, expected a code like H24 or F25", sem)
		}

		fmt.Println(tui.RenderTimetable(rec, sem))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timetableCmd)

	timetableCmd.Flags().StringP("semester", "s", "", "Semester code (e.g. H24), defaults to the current one")
}
