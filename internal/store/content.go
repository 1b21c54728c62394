// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/veselosky/commoncontent/internal/model"
)

// Page kinds stored in the page table.
const (
	KindHome    = "home"
	KindSection = "section"
	KindPage    = "page"
	KindArticle = "article"
)

// liveWhere filters for content that should appear on the site. The
// placeholder is bound twice with the same "now" value.
const liveWhere = `p.status = 'usable'
	AND p.date_published IS NOT NULL AND p.date_published <= ?
	AND (p.expires IS NULL OR p.expires > ?)`

const pageColumns = `p.id, p.site_id, p.slug, p.title, p.status, p.description, p.body,
	p.author_id, p.share_image_id, p.date_created, p.date_published, p.date_modified,
	p.expires, p.custom_copyright_holder, p.custom_copyright_notice, p.locale,
	p.custom_icon, p.seo_title, p.seo_description, p.base_template, p.content_template,
	p.admin_name`

func scanBasePage(row interface{ Scan(...any) error }) (model.BasePage, string, error) {
	var p model.BasePage
	var adminName string
	err := row.Scan(&p.ID, &p.SiteID, &p.Slug, &p.Title, &p.Status, &p.Description,
		&p.Body, &p.AuthorID, &p.ShareImageID, &p.DateCreated, &p.DatePublished,
		&p.DateModified, &p.Expires, &p.CustomCopyrightHolder, &p.CustomCopyrightNotice,
		&p.Locale, &p.CustomIcon, &p.SEOTitle, &p.SEODescription, &p.BaseTemplate,
		&p.ContentTemplate, &adminName)
	return p, adminName, err
}

// loadPageRelations fills in the share image, author and tags for a page.
func (q *Queries) loadPageRelations(ctx context.Context, p *model.BasePage) error {
	if p.ShareImageID.Valid {
		img, err := q.GetImage(ctx, p.ShareImageID.Int64)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		if err == nil {
			p.ShareImage = &img
		}
	}
	if p.AuthorID.Valid {
		row := q.db.QueryRowContext(ctx,
			`SELECT `+authorColumns+` FROM author a WHERE a.id = ?`, p.AuthorID.Int64)
		a, err := scanAuthor(row)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		if err == nil {
			p.Author = &a
		}
	}
	tags, err := q.GetPageTags(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Tags = tags
	return nil
}

// CreatePageParams holds the shared fields for inserting any page kind.
type CreatePageParams struct {
	SiteID        int64
	Kind          string
	Slug          string
	Title         string
	Status        string
	Description   string
	Body          string
	AuthorID      sql.NullInt64
	SectionID     sql.NullInt64
	SeriesID      sql.NullInt64
	SeriesOrder   int
	ShareImageID  sql.NullInt64
	DateCreated   sql.NullTime
	DatePublished sql.NullTime
	DateModified  sql.NullTime
	Expires       sql.NullTime
	Locale        string
	AdminName     string
	Tags          []string
}

// CreatePage inserts a page row of any kind and returns its ID. Tags are
// attached in the same call.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (int64, error) {
	if arg.Status == "" {
		arg.Status = "usable"
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO page (site_id, kind, slug, title, status, description, body,
		 author_id, section_id, series_id, series_order, share_image_id,
		 date_created, date_published, date_modified, expires, locale, admin_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.SiteID, arg.Kind, arg.Slug, arg.Title, arg.Status, arg.Description,
		arg.Body, arg.AuthorID, arg.SectionID, arg.SeriesID, arg.SeriesOrder,
		arg.ShareImageID, arg.DateCreated, arg.DatePublished, arg.DateModified,
		arg.Expires, arg.Locale, arg.AdminName)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if len(arg.Tags) > 0 {
		if err := q.SetPageTags(ctx, id, arg.Tags); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// GetHomePage returns the latest live home page for the site.
func (q *Queries) GetHomePage(ctx context.Context, siteID int64, now time.Time) (model.HomePage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM page p
		 WHERE p.site_id = ? AND p.kind = 'home' AND `+liveWhere+`
		 ORDER BY p.date_published DESC LIMIT 1`,
		siteID, now, now)
	base, adminName, err := scanBasePage(row)
	if err != nil {
		return model.HomePage{}, err
	}
	if err := q.loadPageRelations(ctx, &base); err != nil {
		return model.HomePage{}, err
	}
	return model.HomePage{BasePage: base, AdminName: adminName}, nil
}

// GetSectionBySlug returns a live section.
func (q *Queries) GetSectionBySlug(ctx context.Context, siteID int64, slug string, now time.Time) (model.Section, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM page p
		 WHERE p.site_id = ? AND p.kind = 'section' AND p.slug = ? AND `+liveWhere,
		siteID, slug, now, now)
	base, _, err := scanBasePage(row)
	if err != nil {
		return model.Section{}, err
	}
	if err := q.loadPageRelations(ctx, &base); err != nil {
		return model.Section{}, err
	}
	return model.Section{BasePage: base}, nil
}

// ListSections returns the site's live sections ordered by title.
func (q *Queries) ListSections(ctx context.Context, siteID int64, now time.Time) ([]model.Section, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM page p
		 WHERE p.site_id = ? AND p.kind = 'section' AND `+liveWhere+`
		 ORDER BY p.title`,
		siteID, now, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		base, _, err := scanBasePage(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, model.Section{BasePage: base})
	}
	return sections, rows.Err()
}

// GetPageBySlug returns a live landing page.
func (q *Queries) GetPageBySlug(ctx context.Context, siteID int64, slug string, now time.Time) (model.Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM page p
		 WHERE p.site_id = ? AND p.kind = 'page' AND p.slug = ? AND `+liveWhere,
		siteID, slug, now, now)
	base, _, err := scanBasePage(row)
	if err != nil {
		return model.Page{}, err
	}
	if err := q.loadPageRelations(ctx, &base); err != nil {
		return model.Page{}, err
	}
	return model.Page{BasePage: base}, nil
}

// ListPages returns the site's live landing pages ordered by title.
func (q *Queries) ListPages(ctx context.Context, siteID int64, now time.Time) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM page p
		 WHERE p.site_id = ? AND p.kind = 'page' AND `+liveWhere+`
		 ORDER BY p.title`,
		siteID, now, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []model.Page
	for rows.Next() {
		base, _, err := scanBasePage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, model.Page{BasePage: base})
	}
	return pages, rows.Err()
}

const articleColumns = pageColumns + `, p.section_id, p.series_id, p.series_order,
	s.slug, s.title`

func (q *Queries) scanArticle(ctx context.Context, row interface{ Scan(...any) error }) (model.Article, error) {
	var a model.Article
	var adminName string
	var sectionSlug, sectionTitle string
	err := row.Scan(&a.ID, &a.SiteID, &a.Slug, &a.Title, &a.Status, &a.Description,
		&a.Body, &a.AuthorID, &a.ShareImageID, &a.DateCreated, &a.DatePublished,
		&a.DateModified, &a.Expires, &a.CustomCopyrightHolder, &a.CustomCopyrightNotice,
		&a.Locale, &a.CustomIcon, &a.SEOTitle, &a.SEODescription, &a.BaseTemplate,
		&a.ContentTemplate, &adminName,
		&a.SectionID, &a.SeriesID, &a.SeriesOrder, &sectionSlug, &sectionTitle)
	if err != nil {
		return a, err
	}
	a.Section = &model.Section{}
	a.Section.ID = a.SectionID
	a.Section.Slug = sectionSlug
	a.Section.Title = sectionTitle
	if a.SeriesID.Valid {
		series, err := q.GetSeries(ctx, a.SeriesID.Int64)
		if err != nil && err != sql.ErrNoRows {
			return a, err
		}
		if err == nil {
			a.Series = &series
		}
	}
	if err := q.loadPageRelations(ctx, &a.BasePage); err != nil {
		return a, err
	}
	return a, nil
}

const articleFrom = ` FROM page p JOIN page s ON s.id = p.section_id `

// GetArticle returns a live article located by its section and slug.
func (q *Queries) GetArticle(ctx context.Context, siteID int64, sectionSlug, slug string, now time.Time) (model.Article, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+articleFrom+`
		 WHERE p.site_id = ? AND p.kind = 'article' AND s.slug = ? AND p.slug = ? AND `+liveWhere,
		siteID, sectionSlug, slug, now, now)
	return q.scanArticle(ctx, row)
}

func (q *Queries) listArticles(ctx context.Context, query string, args ...any) ([]model.Article, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		a, err := q.scanArticle(ctx, rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// ListArticles returns the site's live articles, newest first.
func (q *Queries) ListArticles(ctx context.Context, siteID int64, now time.Time, limit, offset int) ([]model.Article, error) {
	return q.listArticles(ctx,
		`SELECT `+articleColumns+articleFrom+`
		 WHERE p.site_id = ? AND p.kind = 'article' AND `+liveWhere+`
		 ORDER BY p.date_published DESC LIMIT ? OFFSET ?`,
		siteID, now, now, limit, offset)
}

// CountArticles counts the site's live articles.
func (q *Queries) CountArticles(ctx context.Context, siteID int64, now time.Time) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page p
		 WHERE p.site_id = ? AND p.kind = 'article' AND `+liveWhere,
		siteID, now, now).Scan(&n)
	return n, err
}

// ListArticlesBySection returns a section's live articles, newest first.
func (q *Queries) ListArticlesBySection(ctx context.Context, sectionID int64, now time.Time, limit, offset int) ([]model.Article, error) {
	return q.listArticles(ctx,
		`SELECT `+articleColumns+articleFrom+`
		 WHERE p.section_id = ? AND p.kind = 'article' AND `+liveWhere+`
		 ORDER BY p.date_published DESC LIMIT ? OFFSET ?`,
		sectionID, now, now, limit, offset)
}

// CountArticlesBySection counts a section's live articles.
func (q *Queries) CountArticlesBySection(ctx context.Context, sectionID int64, now time.Time) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page p
		 WHERE p.section_id = ? AND p.kind = 'article' AND `+liveWhere,
		sectionID, now, now).Scan(&n)
	return n, err
}

// ListArticlesByAuthor returns an author's live articles, newest first.
func (q *Queries) ListArticlesByAuthor(ctx context.Context, authorID int64, now time.Time, limit, offset int) ([]model.Article, error) {
	return q.listArticles(ctx,
		`SELECT `+articleColumns+articleFrom+`
		 WHERE p.author_id = ? AND p.kind = 'article' AND `+liveWhere+`
		 ORDER BY p.date_published DESC LIMIT ? OFFSET ?`,
		authorID, now, now, limit, offset)
}

// CountArticlesByAuthor counts an author's live articles.
func (q *Queries) CountArticlesByAuthor(ctx context.Context, authorID int64, now time.Time) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page p
		 WHERE p.author_id = ? AND p.kind = 'article' AND `+liveWhere,
		authorID, now, now).Scan(&n)
	return n, err
}

// ListArticlesBySeries returns a series' live articles in series order.
func (q *Queries) ListArticlesBySeries(ctx context.Context, seriesID int64, now time.Time) ([]model.Article, error) {
	return q.listArticles(ctx,
		`SELECT `+articleColumns+articleFrom+`
		 WHERE p.series_id = ? AND p.kind = 'article' AND `+liveWhere+`
		 ORDER BY p.series_order, p.date_published`,
		seriesID, now, now)
}

// CreateSeriesParams holds the fields for CreateSeries.
type CreateSeriesParams struct {
	SiteID      int64
	Name        string
	Slug        string
	Description string
}

// CreateSeries inserts an article series and returns its ID.
func (q *Queries) CreateSeries(ctx context.Context, arg CreateSeriesParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO article_series (site_id, name, slug, description) VALUES (?, ?, ?, ?)`,
		arg.SiteID, arg.Name, arg.Slug, arg.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSeries fetches an article series by ID.
func (q *Queries) GetSeries(ctx context.Context, id int64) (model.ArticleSeries, error) {
	var s model.ArticleSeries
	err := q.db.QueryRowContext(ctx,
		`SELECT id, site_id, name, slug, description FROM article_series WHERE id = ?`, id).
		Scan(&s.ID, &s.SiteID, &s.Name, &s.Slug, &s.Description)
	return s, err
}

// GetSeriesBySlug fetches an article series by slug.
func (q *Queries) GetSeriesBySlug(ctx context.Context, siteID int64, slug string) (model.ArticleSeries, error) {
	var s model.ArticleSeries
	err := q.db.QueryRowContext(ctx,
		`SELECT id, site_id, name, slug, description FROM article_series
		 WHERE site_id = ? AND slug = ?`, siteID, slug).
		Scan(&s.ID, &s.SiteID, &s.Name, &s.Slug, &s.Description)
	return s, err
}

// SetPageTags replaces the page's tags with the given list, creating tag
// rows as needed.
func (q *Queries) SetPageTags(ctx context.Context, pageID int64, tags []string) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM page_tag WHERE page_id = ?`, pageID); err != nil {
		return err
	}
	for _, tag := range tags {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO tag (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, tag); err != nil {
			return err
		}
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO page_tag (page_id, tag_id)
			 SELECT ?, id FROM tag WHERE name = ?`, pageID, tag); err != nil {
			return err
		}
	}
	return nil
}

// GetPageTags returns the page's tag names sorted alphabetically.
func (q *Queries) GetPageTags(ctx context.Context, pageID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT t.name FROM tag t
		 JOIN page_tag pt ON pt.tag_id = t.id
		 WHERE pt.page_id = ? ORDER BY t.name`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// ListTransitionedSites returns the sites with content whose publish or
// expiry time falls inside the window (since, until]. The scheduler uses
// this to drop cached navigation and feeds when visibility changes.
func (q *Queries) ListTransitionedSites(ctx context.Context, since, until time.Time) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT site_id FROM page
		 WHERE status = 'usable'
		   AND ((date_published > ? AND date_published <= ?)
		     OR (expires > ? AND expires <= ?))`,
		since, until, since, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
