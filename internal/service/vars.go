// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the business logic between the store and the
// handlers: site variable resolution, content retrieval with caching,
// and navigation menus.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/veselosky/commoncontent/internal/cache"
	"github.com/veselosky/commoncontent/internal/model"
	"github.com/veselosky/commoncontent/internal/store"
)

// SiteVars resolves names against a snapshot of one site's stored vars,
// falling back to application defaults. It implements model.Vars.
type SiteVars struct {
	values map[string]string
}

// Get returns the var's value, the application default, or fallback.
func (v *SiteVars) Get(name, fallback string) string {
	if val, ok := v.values[name]; ok {
		return val
	}
	if val, ok := model.Defaults[name]; ok {
		return val
	}
	return fallback
}

// VarsService loads site vars with caching.
type VarsService struct {
	queries *store.Queries
	cache   *cache.TypedCache[map[string]string]
}

// NewVarsService creates a VarsService. The cache may be nil to disable
// caching.
func NewVarsService(queries *store.Queries, c cache.Cache) *VarsService {
	s := &VarsService{queries: queries}
	if c != nil {
		s.cache = cache.NewTypedCache[map[string]string](c, 5*time.Minute)
	}
	return s
}

// Vars returns the resolver for a site's variables. Database errors are
// logged and yield a resolver that serves defaults only.
func (s *VarsService) Vars(ctx context.Context, siteID int64) *SiteVars {
	load := func() (*map[string]string, error) {
		rows, err := s.queries.ListSiteVars(ctx, siteID)
		if err != nil {
			return nil, err
		}
		values := make(map[string]string, len(rows))
		for _, row := range rows {
			values[row.Name] = row.Value
		}
		return &values, nil
	}

	var values *map[string]string
	var err error
	if s.cache != nil {
		values, err = s.cache.GetOrSet(ctx, cache.VarsKey(siteID), load)
	} else {
		values, err = load()
	}
	if err != nil {
		slog.Error("loading site vars", "site_id", siteID, "error", err)
		return &SiteVars{}
	}
	return &SiteVars{values: *values}
}

// Set stores a site var and invalidates the cached snapshot.
func (s *VarsService) Set(ctx context.Context, siteID int64, name, value string) error {
	if err := s.queries.UpsertSiteVar(ctx, siteID, name, value); err != nil {
		return err
	}
	s.invalidate(ctx, siteID)
	return nil
}

// Delete removes a site var and invalidates the cached snapshot.
func (s *VarsService) Delete(ctx context.Context, siteID int64, name string) error {
	if err := s.queries.DeleteSiteVar(ctx, siteID, name); err != nil {
		return err
	}
	s.invalidate(ctx, siteID)
	return nil
}

func (s *VarsService) invalidate(ctx context.Context, siteID int64) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cache.VarsKey(siteID))
	}
}
