// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/veselosky/commoncontent/internal/model"
)

// Seed creates initial data in the database: the default site, a home
// page, a first section, and a welcome article.
func Seed(ctx context.Context, db *sql.DB, domain, name, langCode string) error {
	queries := New(db)

	// Skip when the site already exists
	if _, err := queries.GetSiteByDomain(ctx, domain); err == nil {
		slog.Info("site already exists, skipping seed", "domain", domain)
		return nil
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("checking for site: %w", err)
	}

	site, err := queries.CreateSite(ctx, CreateSiteParams{Domain: domain, Name: name})
	if err != nil {
		return fmt.Errorf("creating site: %w", err)
	}

	locale := model.ToLocale(langCode)
	now := time.Now()
	published := sql.NullTime{Time: now, Valid: true}

	_, err = queries.CreatePage(ctx, CreatePageParams{
		SiteID:        site.ID,
		Kind:          KindHome,
		Title:         name,
		Description:   "Home page for " + name,
		DatePublished: published,
		Locale:        locale,
		AdminName:     name + " Home",
	})
	if err != nil {
		return fmt.Errorf("creating home page: %w", err)
	}

	sectionID, err := queries.CreatePage(ctx, CreatePageParams{
		SiteID:        site.ID,
		Kind:          KindSection,
		Slug:          "blog",
		Title:         "Blog",
		DatePublished: published,
		Locale:        locale,
	})
	if err != nil {
		return fmt.Errorf("creating section: %w", err)
	}

	_, err = queries.CreatePage(ctx, CreatePageParams{
		SiteID:        site.ID,
		Kind:          KindArticle,
		Slug:          "welcome",
		Title:         "Welcome to " + name,
		Description:   "Your site is up and running.",
		Body:          "<p>This is your first article. Replace it with your own content.</p>",
		SectionID:     sql.NullInt64{Int64: sectionID, Valid: true},
		DatePublished: published,
		Locale:        locale,
	})
	if err != nil {
		return fmt.Errorf("creating welcome article: %w", err)
	}

	slog.Info("seeded default site", "domain", domain, "site_id", site.ID)
	return nil
}
