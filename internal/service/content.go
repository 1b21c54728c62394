// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/veselosky/commoncontent/internal/model"
	"github.com/veselosky/commoncontent/internal/store"
)

// ErrNotFound is returned when the requested content does not exist or
// is not live.
var ErrNotFound = errors.New("content not found")

// DefaultPageSize is the article list page size when the paginate_by
// site var is unset or invalid.
const DefaultPageSize = 15

// ContentService retrieves live content for the handlers.
type ContentService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewContentService creates a ContentService.
func NewContentService(queries *store.Queries) *ContentService {
	return &ContentService{queries: queries, now: time.Now}
}

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Site resolves the site serving a domain.
func (s *ContentService) Site(ctx context.Context, domain string) (model.Site, error) {
	site, err := s.queries.GetSiteByDomain(ctx, domain)
	return site, mapErr(err)
}

// HomePage returns the latest live home page for the site.
func (s *ContentService) HomePage(ctx context.Context, siteID int64) (model.HomePage, error) {
	home, err := s.queries.GetHomePage(ctx, siteID, s.now())
	return home, mapErr(err)
}

// Section returns a live section by slug.
func (s *ContentService) Section(ctx context.Context, siteID int64, slug string) (model.Section, error) {
	section, err := s.queries.GetSectionBySlug(ctx, siteID, slug, s.now())
	return section, mapErr(err)
}

// Sections returns the site's live sections ordered by title.
func (s *ContentService) Sections(ctx context.Context, siteID int64) ([]model.Section, error) {
	return s.queries.ListSections(ctx, siteID, s.now())
}

// Page returns a live landing page by slug.
func (s *ContentService) Page(ctx context.Context, siteID int64, slug string) (model.Page, error) {
	page, err := s.queries.GetPageBySlug(ctx, siteID, slug, s.now())
	return page, mapErr(err)
}

// Pages returns the site's live landing pages.
func (s *ContentService) Pages(ctx context.Context, siteID int64) ([]model.Page, error) {
	return s.queries.ListPages(ctx, siteID, s.now())
}

// Article returns a live article by section and slug. Articles that
// belong to a series are found regardless of which URL form was used;
// the handler consults Article.Path for the canonical location.
func (s *ContentService) Article(ctx context.Context, siteID int64, sectionSlug, slug string) (model.Article, error) {
	article, err := s.queries.GetArticle(ctx, siteID, sectionSlug, slug, s.now())
	return article, mapErr(err)
}

// ArticlePage is one page of an article listing.
type ArticlePage struct {
	Articles []model.Article
	Number   int // 1-based page number
	Total    int // total live articles in the listing
	Pages    int // total page count
}

// HasNext reports whether a later page exists.
func (p *ArticlePage) HasNext() bool { return p.Number < p.Pages }

// HasPrev reports whether an earlier page exists.
func (p *ArticlePage) HasPrev() bool { return p.Number > 1 }

func paginate(number, size, total int) (limit, offset, pages int) {
	if number < 1 {
		number = 1
	}
	pages = (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return size, (number - 1) * size, pages
}

// Articles returns one page of the site's live articles, newest first.
func (s *ContentService) Articles(ctx context.Context, siteID int64, number, size int) (ArticlePage, error) {
	if size < 1 {
		size = DefaultPageSize
	}
	now := s.now()
	total, err := s.queries.CountArticles(ctx, siteID, now)
	if err != nil {
		return ArticlePage{}, err
	}
	limit, offset, pages := paginate(number, size, total)
	articles, err := s.queries.ListArticles(ctx, siteID, now, limit, offset)
	if err != nil {
		return ArticlePage{}, err
	}
	return ArticlePage{Articles: articles, Number: max(number, 1), Total: total, Pages: pages}, nil
}

// SectionArticles returns one page of a section's live articles.
func (s *ContentService) SectionArticles(ctx context.Context, sectionID int64, number, size int) (ArticlePage, error) {
	if size < 1 {
		size = DefaultPageSize
	}
	now := s.now()
	total, err := s.queries.CountArticlesBySection(ctx, sectionID, now)
	if err != nil {
		return ArticlePage{}, err
	}
	limit, offset, pages := paginate(number, size, total)
	articles, err := s.queries.ListArticlesBySection(ctx, sectionID, now, limit, offset)
	if err != nil {
		return ArticlePage{}, err
	}
	return ArticlePage{Articles: articles, Number: max(number, 1), Total: total, Pages: pages}, nil
}

// AuthorArticles returns one page of an author's live articles.
func (s *ContentService) AuthorArticles(ctx context.Context, authorID int64, number, size int) (ArticlePage, error) {
	if size < 1 {
		size = DefaultPageSize
	}
	now := s.now()
	total, err := s.queries.CountArticlesByAuthor(ctx, authorID, now)
	if err != nil {
		return ArticlePage{}, err
	}
	limit, offset, pages := paginate(number, size, total)
	articles, err := s.queries.ListArticlesByAuthor(ctx, authorID, now, limit, offset)
	if err != nil {
		return ArticlePage{}, err
	}
	return ArticlePage{Articles: articles, Number: max(number, 1), Total: total, Pages: pages}, nil
}

// Series returns an article series by slug.
func (s *ContentService) Series(ctx context.Context, siteID int64, slug string) (model.ArticleSeries, error) {
	series, err := s.queries.GetSeriesBySlug(ctx, siteID, slug)
	return series, mapErr(err)
}

// SeriesArticles returns all live articles in a series, in series order.
func (s *ContentService) SeriesArticles(ctx context.Context, seriesID int64) ([]model.Article, error) {
	return s.queries.ListArticlesBySeries(ctx, seriesID, s.now())
}

// Author returns an author by slug.
func (s *ContentService) Author(ctx context.Context, siteID int64, slug string) (model.Author, error) {
	author, err := s.queries.GetAuthorBySlug(ctx, siteID, slug)
	return author, mapErr(err)
}

// Authors returns the site's authors ordered by name.
func (s *ContentService) Authors(ctx context.Context, siteID int64) ([]model.Author, error) {
	return s.queries.ListAuthors(ctx, siteID)
}

// Image returns an image record by ID.
func (s *ContentService) Image(ctx context.Context, id int64) (model.Image, error) {
	img, err := s.queries.GetImage(ctx, id)
	return img, mapErr(err)
}
