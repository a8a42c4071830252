package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/A5TEX/HSLU-Module-Master/pkg/semester"
	"github.com/A5TEX/HSLU-Module-Master/pkg/tui"
)

var semestersCmd = &cobra.Command{
	Use:   "semesters",
	Short: "List the semesters the catalogue has data for",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		var available []string
		var fetchErr error
		_ = spinner.New().
			Title("Fetching available semesters...").
			Action(func() {
				available, fetchErr = s.catalogue.AvailableSemesters()
			}).
			Run()
		if fetchErr != nil {
			return fmt.Errorf("failed to fetch available semesters: %w", fetchErr)
		}

		current := semester.Current(time.Now())
		for _, sem := range available {
			if sem == current {
				fmt.Println(tui.Accent(sem + " (current)"))
			} else {
				fmt.Println(sem)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(semestersCmd)
}
