// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/veselosky/commoncontent/internal/cache"
	"github.com/veselosky/commoncontent/internal/model"
	"github.com/veselosky/commoncontent/internal/store"
)

// MenuService loads navigation menus. When a site has no stored
// main-nav menu, one is synthesized from its live sections.
type MenuService struct {
	queries *store.Queries
	content *ContentService
	cache   *cache.TypedCache[[]model.NavItem]
}

// NewMenuService creates a MenuService. The cache may be nil to disable
// caching.
func NewMenuService(queries *store.Queries, content *ContentService, c cache.Cache) *MenuService {
	s := &MenuService{queries: queries, content: content}
	if c != nil {
		s.cache = cache.NewTypedCache[[]model.NavItem](c, 5*time.Minute)
	}
	return s
}

// MainNav returns the site's primary navigation: the stored main-nav
// menu when one exists, otherwise a menu synthesized from the home page
// and live sections.
func (s *MenuService) MainNav(ctx context.Context, site *model.Site, vars model.Vars) []model.NavItem {
	load := func() (*[]model.NavItem, error) {
		items, err := s.buildMainNav(ctx, site, vars)
		if err != nil {
			return nil, err
		}
		return &items, nil
	}

	var items *[]model.NavItem
	var err error
	if s.cache != nil {
		items, err = s.cache.GetOrSet(ctx, cache.MenuKey(site.ID, model.MainNavSlug), load)
	} else {
		items, err = load()
	}
	if err != nil {
		slog.Error("loading main nav", "site_id", site.ID, "error", err)
		return nil
	}
	return *items
}

func (s *MenuService) buildMainNav(ctx context.Context, site *model.Site, vars model.Vars) ([]model.NavItem, error) {
	menu, err := s.queries.GetMenuBySlug(ctx, site.ID, model.MainNavSlug)
	if err == nil {
		return model.MenuNavItems(&menu, vars), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// No stored menu: synthesize from live sections
	sections, err := s.content.Sections(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	var home *model.HomePage
	if h, err := s.content.HomePage(ctx, site.ID); err == nil {
		home = &h
	}
	return model.SectionMenu(site, home, sections, nil, time.Now()), nil
}

// Menu returns a stored menu by slug with its links.
func (s *MenuService) Menu(ctx context.Context, siteID int64, slug string) (model.Menu, error) {
	menu, err := s.queries.GetMenuBySlug(ctx, siteID, slug)
	return menu, mapErr(err)
}

// Invalidate drops the cached navigation for a site. Called when
// content is published or expires.
func (s *MenuService) Invalidate(ctx context.Context, siteID int64) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cache.MenuKey(siteID, model.MainNavSlug))
	}
}
