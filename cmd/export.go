package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/A5TEX/HSLU-Module-Master/pkg/exporter"
	"github.com/A5TEX/HSLU-Module-Master/pkg/semester"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a semester's timetable to an ICS file",
	Long:  `Export the weekly schedule of a semester as recurring calendar events, importable into any calendar app.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		sem, _ := cmd.Flags().GetString("semester")
		if sem == "" {
			sem = semester.Current(time.Now())
		} else if !semester.Valid(sem) {
			return fmt.Errorf("invalid semester %q, expected a code like H24 or F25", sem)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = strings.ToLower(sem) + ".ics"
		}
		if !strings.HasSuffix(output, ".ics") {
			output += ".ics"
		}

		rec, err := s.student(cmd.Context())
		if err != nil {
			return err
		}

		classes := rec.ExpandScheduleForSemester(sem)
		if len(classes) == 0 {
			return fmt.Errorf("no scheduled classes found for %s", sem)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(rec, sem, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d weekly classes to %s\n", len(classes), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("semester", "s", "", "Semester code (e.g. H24), defaults to the current one")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (defaults to <semester>.ics)")
}
