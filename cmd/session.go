package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/A5TEX/HSLU-Module-Master/pkg/app"
	"github.com/A5TEX/HSLU-Module-Master/pkg/catalogue"
	"github.com/A5TEX/HSLU-Module-Master/pkg/config"
	"github.com/A5TEX/HSLU-Module-Master/pkg/logger"
	"github.com/A5TEX/HSLU-Module-Master/pkg/portal"
	"github.com/A5TEX/HSLU-Module-Master/pkg/semester"
	"github.com/A5TEX/HSLU-Module-Master/pkg/store"
	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
	"github.com/A5TEX/HSLU-Module-Master/pkg/tui"
)

// session bundles the configured clients, storage and application service a
// command needs. Close releases the storage backend.
type session struct {
	cfg       *config.Config
	catalogue *catalogue.Client
	store     store.Store
	svc       *app.Service
}

func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	st, err := store.New(cfg)
	if err != nil {
		return nil, err
	}

	cat := catalogue.NewClient(cfg.API.BaseURL, cfg.API.AccessKey)
	ptl := portal.NewClient(cfg.Portal.BaseURL)

	return &session{
		cfg:       cfg,
		catalogue: cat,
		store:     st,
		svc:       app.New(cfg, log, ptl, cat, st),
	}, nil
}

func (s *session) Close() {
	s.store.Close()
}

// student loads the cached record, rebuilding it from MyCampus when needed.
func (s *session) student(ctx context.Context) (*student.Record, error) {
	var rec *student.Record
	var err error

	_ = spinner.New().
		Title("Loading your student record...").
		Action(func() {
			rec, err = s.svc.Student(ctx)
		}).
		Run()

	if err != nil {
		return nil, fmt.Errorf("could not load student record: %w", err)
	}
	return rec, nil
}

// resolveSemester validates an explicit semester flag, or asks interactively
// when none was given.
func resolveSemester(flag string, options []string) (string, error) {
	if flag != "" {
		if !semester.Valid(flag) {
			return "", fmt.Errorf("invalid semester %q, expected a code like H24 or F25", flag)
		}
		return flag, nil
	}

	if len(options) == 0 {
		return "", fmt.Errorf("no semesters available")
	}

	var selectOptions []huh.Option[string]
	for _, sem := range options {
		selectOptions = append(selectOptions, huh.NewOption(sem, sem))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a semester").
				Options(selectOptions...).
				Value(&selected),
		),
	).WithTheme(tui.GetTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}
