// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: nightly purge of old
// audit events.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/joostry/joostry/internal/service"
)

// DefaultEventRetention is how long audit events are kept.
const DefaultEventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron instance and the registered jobs.
type Scheduler struct {
	db        *sql.DB
	cron      *cron.Cron
	logger    *slog.Logger
	events    *service.EventService
	retention time.Duration
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:        db,
		cron:      cron.New(),
		logger:    logger,
		events:    service.NewEventService(db),
		retention: DefaultEventRetention,
	}
}

// WithRetention overrides the event retention window.
func (s *Scheduler) WithRetention(d time.Duration) *Scheduler {
	if d > 0 {
		s.retention = d
	}
	return s
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Nightly at 03:10.
	_, err := s.cron.AddFunc("10 3 * * *", func() {
		if err := s.purgeOldEvents(); err != nil {
			s.logger.Error("failed to purge old events", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeOldEvents removes audit events past the retention window.
func (s *Scheduler) purgeOldEvents() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.events.DeleteOldEvents(ctx, s.retention)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("purged old events", "deleted", deleted, "retention", s.retention)
	}
	return nil
}
