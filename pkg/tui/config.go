package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/A5TEX/HSLU-Module-Master/pkg/config"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Storage Backend", "storage"),
						huh.NewOption("Set Study Program Override", "program"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		if action == "quit" {
			return nil
		}

		if action == "theme" {
			err = runSetThemeTUI(cfg)
		} else if action == "storage" {
			err = runSetStorageTUI(cfg)
		} else if action == "program" {
			err = runSetProgramTUI(cfg)
		} else if action == "view" {
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.modulemaster.toml) ---"))
			if cfg.Student.Program == "" {
				fmt.Println("Study Program: scraped from MyCampus")
			} else {
				fmt.Printf("Study Program: %s\n", cfg.Student.Program)
			}
			fmt.Printf("Storage Backend: %s\n", cfg.Storage.Backend)
			if cfg.Storage.Backend == "redis" {
				fmt.Printf("Redis URL: %s\n", cfg.Storage.RedisURL)
			}
			fmt.Printf("Load Timeout: %d ms\n", cfg.Storage.LoadTimeoutMS)
			fmt.Printf("Accent Color: %s\n", cfg.UI.AccentColor)
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

func runSetStorageTUI(cfg *config.Config) error {
	backend := cfg.Storage.Backend
	redisURL := cfg.Storage.RedisURL

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should your student record be cached?").
				Options(
					huh.NewOption("Local file (~/.modulemaster/student.json)", "file"),
					huh.NewOption("Redis", "redis"),
				).
				Value(&backend),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if backend == "redis" {
		urlForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Redis connection URL").
					Placeholder("redis://localhost:6379/0").
					Value(&redisURL).
					Validate(func(s string) error {
						if !strings.HasPrefix(s, "redis://") && !strings.HasPrefix(s, "rediss://") {
							return fmt.Errorf("must be a redis:// or rediss:// URL")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := urlForm.Run(); err != nil {
			return err
		}
	}

	cfg.Storage.Backend = backend
	cfg.Storage.RedisURL = redisURL
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Storage backend set to: %s\n", backend)))
	return nil
}

func runSetProgramTUI(cfg *config.Config) error {
	var selected string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select your study program").
				Description("Pick Auto-detect to scrape it from the MyCampus login banner.").
				Options(
					huh.NewOption("Auto-detect", ""),
					huh.NewOption("Informatik", "I"),
					huh.NewOption("Artificial Intelligence & Machine Learning", "AIML"),
					huh.NewOption("Information & Cyber Security", "ICS"),
					huh.NewOption("Wirtschaftsinformatik", "WI"),
					huh.NewOption("Digital Ideation", "DI"),
				).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Student.Program = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	if selected == "" {
		fmt.Println(accentStyle.Render("\n✅ Study program will be auto-detected.\n"))
	} else {
		fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Study program set to: %s\n", selected)))
	}
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.Config) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s HSLU Blue", colorBlock("39")), "39"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Charm Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(func(str string) error {
						if len(str) != 7 || !strings.HasPrefix(str, "#") {
							return fmt.Errorf("must be a valid 6-character hex code starting with #")
						}
						return nil
					}),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.UI.AccentColor = hexInput
	} else {
		cfg.UI.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}
