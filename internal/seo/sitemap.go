// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package seo builds the crawler-facing surfaces of a site: the XML
// sitemap and robots.txt.
package seo

import (
	"database/sql"
	"encoding/xml"
	"time"

	"github.com/veselosky/commoncontent/internal/model"
)

// XMLNamespace is the sitemap protocol namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is a sitemap change frequency hint.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// URL is a single url entry in the sitemap document.
type URL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// SitemapBuilder accumulates site content into sitemap URL entries. The
// change frequency hint comes from the sitemap_changefreq site var.
type SitemapBuilder struct {
	site       *model.Site
	changeFreq ChangeFreq
	urls       []URL
}

// NewSitemapBuilder creates a builder for one site.
func NewSitemapBuilder(site *model.Site, vars model.Vars) *SitemapBuilder {
	freq := vars.Get(model.VarSitemapChangeSeq, model.Defaults[model.VarSitemapChangeSeq])
	return &SitemapBuilder{
		site:       site,
		changeFreq: ChangeFreq(freq),
		urls:       make([]URL, 0),
	}
}

func (b *SitemapBuilder) add(path, priority string, modified sql.NullTime) {
	entry := URL{
		Loc:        b.site.AbsoluteURL(path),
		ChangeFreq: b.changeFreq,
		Priority:   priority,
	}
	if modified.Valid {
		entry.LastMod = modified.Time.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, entry)
}

// AddHomePage adds the site root.
func (b *SitemapBuilder) AddHomePage(home *model.HomePage) {
	var modified sql.NullTime
	if home != nil {
		modified = home.DateModified
	}
	b.add("/", "1.0", modified)
}

// AddSections adds each section landing page.
func (b *SitemapBuilder) AddSections(sections []model.Section) {
	for i := range sections {
		b.add(sections[i].Path(), "0.6", sections[i].DateModified)
	}
}

// AddPages adds standalone pages.
func (b *SitemapBuilder) AddPages(pages []model.Page) {
	for i := range pages {
		b.add(pages[i].Path(), "0.8", pages[i].DateModified)
	}
}

// AddArticles adds article detail pages.
func (b *SitemapBuilder) AddArticles(articles []model.Article) {
	for i := range articles {
		b.add(articles[i].Path(), "0.8", articles[i].DateModified)
	}
}

// AddAuthors adds author profile pages.
func (b *SitemapBuilder) AddAuthors(authors []model.Author) {
	for i := range authors {
		b.add(authors[i].Path(), "0.5", authors[i].DateModified)
	}
}

// Build generates the sitemap XML document.
func (b *SitemapBuilder) Build() ([]byte, error) {
	doc := urlset{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// GenerateSitemap builds the sitemap for the whole of a site's live
// content in one call.
func GenerateSitemap(site *model.Site, vars model.Vars, home *model.HomePage,
	sections []model.Section, pages []model.Page, articles []model.Article,
	authors []model.Author) ([]byte, error) {

	b := NewSitemapBuilder(site, vars)
	b.AddHomePage(home)
	b.AddSections(sections)
	b.AddPages(pages)
	b.AddArticles(articles)
	b.AddAuthors(authors)
	return b.Build()
}
