package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/A5TEX/HSLU-Module-Master/pkg/semester"
	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
	"github.com/A5TEX/HSLU-Module-Master/pkg/tui"
)

var moduleCmd = &cobra.Command{
	Use:   "module",
	Short: "Manually edit the modules on your record",
	Long:  `Add or remove modules by hand, for enrollments MyCampus does not list (recognized external credits, exchange semesters).`,
}

var moduleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a module to your record",
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

		var name, sem, ectsStr, noteStr, moduleType string

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Module name").
					Placeholder("AISO").
					Value(&name).
					Validate(func(v string) error {
						if v == "" {
							return fmt.Errorf("module name cannot be empty")
						}
						return nil
					}),
				huh.NewInput().
					Title("Semester").
					Placeholder("H24").
					Value(&sem).
					Validate(func(v string) error {
						if !semester.Valid(v) {
							return fmt.Errorf("expected a code like H24 or F25")
						}
						return nil
					}),
				huh.NewInput().
					Title("ECTS").
					Value(&ectsStr).
					Validate(func(v string) error {
						if _, err := strconv.Atoi(v); err != nil {
							return fmt.Errorf("must be a whole number")
						}
						return nil
					}),
				huh.NewInput().
					Title("Mark (leave empty if ungraded)").
					Value(&noteStr).
					Validate(func(v string) error {
						if v == "" {
							return nil
						}
						if _, err := strconv.ParseFloat(v, 64); err != nil {
							return fmt.Errorf("must be a number")
						}
						return nil
					}),
				huh.NewSelect[string]().
					Title("Module type").
					Options(
						huh.NewOption("Kernmodul", "Kernmodul"),
						huh.NewOption("Projektmodul", "Projektmodul"),
						huh.NewOption("Major-/Minormodul", "Major-/Minormodul"),
						huh.NewOption("Erweiterungsmodul", "Erweiterungsmodul"),
						huh.NewOption("Zusatzmodul", "Zusatzmodul"),
					).
					Value(&moduleType),
			),
		).WithTheme(tui.GetTheme())

		if err := form.Run(); err != nil {
			return err
		}

		ects, _ := strconv.Atoi(ectsStr)
		entry := student.Enrollment{
			ModuleName: name,
			Semester:   sem,
			Ects:       ects,
			ModuleType: moduleType,
		}
		if noteStr != "" {
			note, _ := strconv.ParseFloat(noteStr, 64)
			entry.Note = &note
		}

		rec.AddModule(entry)
		if err := s.svc.Save(cmd.Context(), rec); err != nil {
			return fmt.Errorf("could not save record: %w", err)
		}

		fmt.Println(tui.Accent(fmt.Sprintf("Added %s (%s, %d ECTS)", name, sem, ects)))
		return nil
	},
}

var moduleRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a module from your record",
	Args:  cobra.ExactArgs(1),
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

		if !rec.RemoveModule(args[0]) {
			return fmt.Errorf("no module named %q on your record", args[0])
		}
		if err := s.svc.Save(cmd.Context(), rec); err != nil {
			return fmt.Errorf("could not save record: %w", err)
		}

		fmt.Println(tui.Accent("Removed " + args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moduleCmd)
	moduleCmd.AddCommand(moduleAddCmd)
	moduleCmd.AddCommand(moduleRemoveCmd)
}
