package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/A5TEX/HSLU-Module-Master/pkg/catalogue"
	"github.com/A5TEX/HSLU-Module-Master/pkg/tui"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Browse the module catalogue of a semester",
	Long:  `List the modules the catalogue offers for a semester, marking the ones you have already visited.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.Close()

		semFlag, _ := cmd.Flags().GetString("semester")

		var available []string
		if semFlag == "" {
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
		}

		sem, err := resolveSemester(semFlag, available)
		if err != nil {
			return err
		}

		rec, err := s.student(cmd.Context())
		if err != nil {
			return err
		}

		var modules []catalogue.CombinedModule
		var fetchErr error
		_ = spinner.New().
			Title(fmt.Sprintf("Fetching modules for %s...", sem)).
			Action(func() {
				modules, fetchErr = s.catalogue.CombinedModuleData(sem)
			}).
			Run()
		if fetchErr != nil {
			return fmt.Errorf("failed to fetch modules for %s: %w", sem, fetchErr)
		}

		if len(modules) == 0 {
			fmt.Println(tui.Error("No modules found for " + sem))
			return nil
		}

		visited := make(map[string]bool)
		for _, m := range rec.ModulesVisited {
			visited[m.ModuleName] = true
		}

		fmt.Println(tui.Accent(fmt.Sprintf("Modules offered in %s", sem)))
		for _, m := range modules {
			marker := " "
			if visited[m.ShortName] {
				marker = tui.Accent("✓")
			}
			fmt.Printf("%s %-12s %s\n", marker, m.ShortName, m.Name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)

	modulesCmd.Flags().StringP("semester", "s", "", "Semester code (e.g. H24), asks interactively when omitted")
}
