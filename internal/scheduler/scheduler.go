// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package scheduler watches for content whose publish or expiry time has
// passed. Visibility is computed from dates at query time, so nothing
// needs republishing; the job's work is dropping cached surfaces that
// were built before the transition.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/veselosky/commoncontent/internal/cache"
	"github.com/veselosky/commoncontent/internal/model"
	"github.com/veselosky/commoncontent/internal/store"
)

// Scheduler runs the periodic content-transition check.
type Scheduler struct {
	queries *store.Queries
	cache   cache.Cache
	cron    *cron.Cron
	logger  *slog.Logger
	lastRun time.Time
	now     func() time.Time
}

// New creates a scheduler. The cache may be nil when caching is
// disabled; the transition check still runs for its logging.
func New(queries *store.Queries, c cache.Cache, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries: queries,
		cache:   c,
		cron:    cron.New(),
		logger:  logger,
		now:     time.Now,
	}
}

// Start begins the every-minute transition check.
func (s *Scheduler) Start() error {
	s.lastRun = s.now()
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.CheckTransitions(context.Background()); err != nil {
			s.logger.Error("failed to process content transitions", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// CheckTransitions finds sites whose content visibility changed since
// the last run and invalidates their cached navigation, feeds and
// sitemap.
func (s *Scheduler) CheckTransitions(ctx context.Context) error {
	now := s.now()
	since := s.lastRun
	s.lastRun = now

	siteIDs, err := s.queries.ListTransitionedSites(ctx, since, now)
	if err != nil {
		return err
	}
	if len(siteIDs) == 0 {
		return nil
	}

	s.logger.Info("content transitions detected", "sites", len(siteIDs))
	for _, siteID := range siteIDs {
		s.invalidateSite(ctx, siteID)
	}
	return nil
}

func (s *Scheduler) invalidateSite(ctx context.Context, siteID int64) {
	if s.cache == nil {
		return
	}
	keys := []string{
		cache.MenuKey(siteID, model.MainNavSlug),
		cache.FeedKey(siteID, "site"),
		cache.SitemapKey(siteID),
	}
	if sections, err := s.queries.ListSections(ctx, siteID, s.now()); err == nil {
		for _, section := range sections {
			keys = append(keys, cache.FeedKey(siteID, section.Slug))
		}
	}
	if authors, err := s.queries.ListAuthors(ctx, siteID); err == nil {
		for _, author := range authors {
			keys = append(keys, cache.FeedKey(siteID, "author:"+author.Slug))
		}
	}
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to invalidate cache key", "key", key, "error", err)
		}
	}
	s.logger.Info("invalidated cached surfaces", "site_id", siteID)
}
