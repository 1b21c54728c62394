// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"database/sql"
	"fmt"

	"github.com/veselosky/commoncontent/internal/schemas"
	"github.com/veselosky/commoncontent/internal/util"
)

// ArticleSeries groups articles for navigation between parts. A series
// is not a page of its own.
type ArticleSeries struct {
	ID          int64  `json:"id"`
	SiteID      int64  `json:"site_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Article is the bread and butter of a site. Articles are filed under a
// section and appear in feeds.
type Article struct {
	BasePage
	SectionID   int64         `json:"section_id"`
	SeriesID    sql.NullInt64 `json:"series_id,omitempty"`
	SeriesOrder int           `json:"series_order,omitempty"`

	// Loaded relations.
	Section *Section       `json:"-"`
	Series  *ArticleSeries `json:"-"`
}

// Path returns the site-relative URL of the article. Articles in a
// series canonically live under the series slug.
func (a *Article) Path() string {
	if a.Series != nil {
		return fmt.Sprintf("/%s/%s/%s.html", a.Section.Slug, a.Series.Slug, a.Slug)
	}
	return fmt.Sprintf("/%s/%s.html", a.Section.Slug, a.Slug)
}

// SeriesPart formats the article's position as "Part 2 of 5". Empty when
// the article is not in a series. Total is the number of articles in the
// series, supplied by the caller who loaded them.
func (a *Article) SeriesPart(total int) string {
	if a.Series == nil || total < 1 {
		return ""
	}
	return fmt.Sprintf("Part %d of %d", a.SeriesOrder, total)
}

// OpenGraph returns the article metadata as og:article, including the
// publication timeline, section, author profile URL and tags.
func (a *Article) OpenGraph(site *Site, vars Vars) (*schemas.OGArticle, error) {
	locale := a.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	og, err := schemas.NewOGArticle(schemas.OGArticle{
		OpenGraph: schemas.OpenGraph{
			Title:       a.Title,
			URL:         site.AbsoluteURL(a.Path()),
			Description: a.Description,
			Locale:      locale,
			SiteName:    vars.Get(VarBrand, site.Name),
		},
		PublishedTime:  nullTimestamp(a.DatePublished),
		ModifiedTime:   nullTimestamp(a.DateModified),
		ExpirationTime: nullTimestamp(a.Expires),
		Section:        a.Section.Title,
		Tag:            a.Tags,
	})
	if err != nil {
		return nil, err
	}
	if a.ShareImage != nil {
		img, err := a.ShareImage.ImageProp(site)
		if err != nil {
			return nil, err
		}
		og.Image = []schemas.ImageProp{*img}
	}
	if a.Author != nil {
		og.Author = []string{a.Author.URL(site)}
	}
	return og, nil
}

// Schema returns the article as a schema.org Article with body text and
// word count.
func (a *Article) Schema(site *Site) (schemas.Schema, error) {
	base, err := a.baseSchema(site.AbsoluteURL(a.Path()))
	if err != nil {
		return nil, err
	}
	return &schemas.ArticleSchema{
		CreativeWorkSchema: base,
		ArticleBody:        util.StripHTML(a.Body),
		ArticleSection:     a.Section.Title,
		WordCount:          util.WordCount(a.Body),
	}, nil
}
