// Package app wires the portal, catalogue, reconciler, and store together
// and owns the per-session student record lifecycle.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/A5TEX/HSLU-Module-Master/pkg/config"
	"github.com/A5TEX/HSLU-Module-Master/pkg/portal"
	"github.com/A5TEX/HSLU-Module-Master/pkg/reconcile"
	"github.com/A5TEX/HSLU-Module-Master/pkg/store"
	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

// PortalSource is the slice of the portal client the service needs.
type PortalSource interface {
	FetchEnrollments() ([]portal.RawEnrollment, error)
	FetchStudyProgram() (string, error)
}

// Service builds the student record either from the cache or from a full
// scrape-and-reconcile run.
type Service struct {
	cfg       *config.Config
	log       *zap.Logger
	portal    PortalSource
	catalogue reconcile.CatalogueSource
	store     store.Store
}

// New creates the session service.
func New(cfg *config.Config, log *zap.Logger, p PortalSource, c reconcile.CatalogueSource, s store.Store) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cfg: cfg, log: log, portal: p, catalogue: c, store: s}
}

// Student returns the session's student record. It races the cached record
// against the configured load timeout; if the store is slow, empty, or
// holds an unusable record, the record is rebuilt from the portal and the
// cache repopulated. A load that loses the race is abandoned and its late
// result discarded.
func (s *Service) Student(ctx context.Context) (*student.Record, error) {
	timeout := time.Duration(s.cfg.Storage.LoadTimeoutMS) * time.Millisecond

	type loadResult struct {
		rec *student.Record
		err error
	}
	results := make(chan loadResult, 1)
	go func() {
		rec, err := s.store.LoadStudent(ctx)
		results <- loadResult{rec: rec, err: err}
	}()

	select {
	case res := <-results:
		if res.err != nil {
			s.log.Warn("student cache load failed, rebuilding", zap.Error(res.err))
		} else if res.rec != nil {
			return res.rec, nil
		}
	case <-time.After(timeout):
		s.log.Info("student cache load timed out, rebuilding",
			zap.Duration("timeout", timeout))
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return s.Rebuild(ctx)
}

// Rebuild scrapes the portal, reconciles the enrollments against the
// catalogue, saves the fresh record, and returns it. Only portal
// unavailability is fatal; a failed save merely loses the cache.
func (s *Service) Rebuild(ctx context.Context) (*student.Record, error) {
	program := s.cfg.Student.Program
	if program == "" {
		scraped, err := s.portal.FetchStudyProgram()
		if err != nil {
			s.log.Warn("could not determine study program from portal", zap.Error(err))
		} else {
			program = scraped
		}
	}

	items, err := s.portal.FetchEnrollments()
	if err != nil {
		return nil, fmt.Errorf("portal enrollment feed unavailable: %w", err)
	}

	reconciler := reconcile.New(s.catalogue, s.log)
	modules := reconciler.Reconcile(items, program)
	record := student.NewRecord(program, modules)

	if err := s.store.SaveStudent(ctx, record); err != nil {
		s.log.Warn("failed to cache student record", zap.Error(err))
	}

	return record, nil
}

// Save persists manual edits to the student record, last write wins.
func (s *Service) Save(ctx context.Context, rec *student.Record) error {
	return s.store.SaveStudent(ctx, rec)
}
