// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package importer loads markdown files exported from Hugo or another
// static site generator into a site's articles.
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/veselosky/commoncontent/internal/markdown"
	"github.com/veselosky/commoncontent/internal/model"
	"github.com/veselosky/commoncontent/internal/schemas"
	"github.com/veselosky/commoncontent/internal/store"
	"github.com/veselosky/commoncontent/internal/util"
)

// Importer creates articles from markdown files.
type Importer struct {
	queries *store.Queries
	now     func() time.Time
}

// New creates an Importer over the store.
func New(queries *store.Queries) *Importer {
	return &Importer{queries: queries, now: time.Now}
}

// ResolveSite looks up a site by numeric ID or by domain.
func (im *Importer) ResolveSite(ctx context.Context, ref string) (model.Site, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return im.queries.GetSite(ctx, id)
	}
	return im.queries.GetSiteByDomain(ctx, ref)
}

// EnsureSection returns the section with the given title, creating it
// when missing. New sections publish immediately.
func (im *Importer) EnsureSection(ctx context.Context, site model.Site, title string) (model.Section, error) {
	slug := util.Slugify(title)
	now := im.now()

	section, err := im.queries.GetSectionBySlug(ctx, site.ID, slug, now)
	if err == nil {
		return section, nil
	}
	if err != sql.ErrNoRows {
		return model.Section{}, err
	}

	_, err = im.queries.CreatePage(ctx, store.CreatePageParams{
		SiteID:        site.ID,
		Kind:          store.KindSection,
		Slug:          slug,
		Title:         title,
		DatePublished: sql.NullTime{Time: now, Valid: true},
	})
	if err != nil {
		return model.Section{}, fmt.Errorf("creating section %q: %w", title, err)
	}
	return im.queries.GetSectionBySlug(ctx, site.ID, slug, now)
}

// ImportFile creates one article from a markdown file. The slug comes
// from the filename; drafts import as withheld.
func (im *Importer) ImportFile(ctx context.Context, site model.Site, section model.Section, path string) (int64, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := markdown.Parse(src)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}

	published := doc.Published
	if published.IsZero() {
		published = im.now()
	}
	status := schemas.StatusUsable
	if doc.Draft {
		status = schemas.StatusWithheld
	}

	slug := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id, err := im.queries.CreatePage(ctx, store.CreatePageParams{
		SiteID:        site.ID,
		Kind:          store.KindArticle,
		Slug:          slug,
		Title:         doc.Title,
		Status:        string(status),
		Description:   doc.Description,
		Body:          doc.HTML,
		SectionID:     sql.NullInt64{Int64: section.ID, Valid: true},
		DatePublished: sql.NullTime{Time: published, Valid: true},
		DateModified:  nullTime(doc.Modified),
		Expires:       nullTime(doc.Expires),
		Tags:          doc.Tags,
	})
	if err != nil {
		return 0, fmt.Errorf("creating article %q: %w", slug, err)
	}

	slog.Info("imported article", "slug", slug, "title", doc.Title, "section", section.Slug)
	return id, nil
}

// ImportFiles imports a set of markdown files into one section.
func (im *Importer) ImportFiles(ctx context.Context, siteRef, sectionTitle string, paths []string) (int, error) {
	site, err := im.ResolveSite(ctx, siteRef)
	if err != nil {
		return 0, fmt.Errorf("resolving site %q: %w", siteRef, err)
	}
	section, err := im.EnsureSection(ctx, site, sectionTitle)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, path := range paths {
		if _, err := im.ImportFile(ctx, site, section, path); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ImportDir imports every .md file under dir into one section.
func (im *Importer) ImportDir(ctx context.Context, siteRef, sectionTitle, dir string) (int, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking %s: %w", dir, err)
	}
	return im.ImportFiles(ctx, siteRef, sectionTitle, paths)
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
