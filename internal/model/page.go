// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/veselosky/commoncontent/internal/schemas"
	"github.com/veselosky/commoncontent/internal/util"
)

// BasePage holds the properties common to renderable pages: a slug, a
// rich text body, a share image and per-page presentation overrides.
type BasePage struct {
	CreativeWork
	Slug         string        `json:"slug"`
	Body         string        `json:"body"`
	ShareImageID sql.NullInt64 `json:"share_image_id,omitempty"`

	CustomIcon      string `json:"custom_icon,omitempty"`
	SEOTitle        string `json:"seo_title,omitempty"`
	SEODescription  string `json:"seo_description,omitempty"`
	BaseTemplate    string `json:"base_template,omitempty"`
	ContentTemplate string `json:"content_template,omitempty"`

	// ShareImage is populated by the store when loaded with relations.
	ShareImage *Image `json:"-"`
}

// IconName returns the icon representing this page, falling back to the
// site default.
func (p *BasePage) IconName(vars Vars) string {
	if p.CustomIcon != "" {
		return p.CustomIcon
	}
	return vars.Get(VarDefaultIcon, Defaults[VarDefaultIcon])
}

// Excerpt returns the rich text excerpt for teases and feed content: the
// body up to the pagebreak separator, capped at the excerpt word limit.
func (p *BasePage) Excerpt() string {
	if p.Body == "" {
		return ""
	}
	excerpt, _, _ := strings.Cut(p.Body, PagebreakSeparator)
	return util.TruncateWords(excerpt, ExcerptMaxWords)
}

// HasExcerpt reports whether there is more body text to read after the
// excerpt.
func (p *BasePage) HasExcerpt() bool {
	return p.Excerpt() != p.Body
}

// SEO title and description fall back to the content fields when no
// override is set.

// MetaTitle returns the title for the HTML title tag.
func (p *BasePage) MetaTitle() string {
	if p.SEOTitle != "" {
		return p.SEOTitle
	}
	return p.Title
}

// MetaDescription returns the description for the meta description tag.
func (p *BasePage) MetaDescription() string {
	if p.SEODescription != "" {
		return p.SEODescription
	}
	return p.Description
}

// openGraph builds the page's Open Graph object including the share
// image when loaded.
func (p *BasePage) openGraph(site *Site, vars Vars, path, ogType string) (*schemas.OpenGraph, error) {
	og, err := p.baseOpenGraph(site, vars, site.AbsoluteURL(path), ogType)
	if err != nil {
		return nil, err
	}
	if p.ShareImage != nil {
		img, err := p.ShareImage.ImageProp(site)
		if err != nil {
			return nil, err
		}
		og.Image = []schemas.ImageProp{*img}
	}
	return og, nil
}

// webPageSchema builds the page's schema.org WebPage object.
func (p *BasePage) webPageSchema(site *Site, path string) (schemas.Schema, error) {
	base, err := p.baseSchema(site.AbsoluteURL(path))
	if err != nil {
		return nil, err
	}
	page := &schemas.WebPageSchema{CreativeWorkSchema: base}
	if p.ShareImage != nil {
		page.PrimaryImageOfPage = p.ShareImage.MediaURL(site)
	}
	return page, nil
}

// Page is a generic evergreen page or landing page.
type Page struct {
	BasePage
}

// Path returns the site-relative URL of the page.
func (p *Page) Path() string {
	return fmt.Sprintf("/%s.html", p.Slug)
}

// OpenGraph returns the page metadata as Open Graph properties.
func (p *Page) OpenGraph(site *Site, vars Vars) (*schemas.OpenGraph, error) {
	return p.openGraph(site, vars, p.Path(), schemas.OGTypeWebsite)
}

// Schema returns the page as a schema.org WebPage.
func (p *Page) Schema(site *Site) (schemas.Schema, error) {
	return p.webPageSchema(site, p.Path())
}

// Section is a major site category. Its page lists the articles filed
// under it.
type Section struct {
	BasePage
}

// Path returns the site-relative URL of the section index.
func (s *Section) Path() string {
	return fmt.Sprintf("/%s/", s.Slug)
}

// FeedPath returns the site-relative URL of the section's RSS feed.
func (s *Section) FeedPath() string {
	return fmt.Sprintf("/%s/index.rss", s.Slug)
}

// OpenGraph returns the section metadata as Open Graph properties.
func (s *Section) OpenGraph(site *Site, vars Vars) (*schemas.OpenGraph, error) {
	return s.openGraph(site, vars, s.Path(), schemas.OGTypeWebsite)
}

// Schema returns the section as a schema.org WebPage.
func (s *Section) Schema(site *Site) (schemas.Schema, error) {
	return s.webPageSchema(site, s.Path())
}

// HomePage is the site front page. AdminName distinguishes multiple
// stored home pages; only the latest live one is served.
type HomePage struct {
	BasePage
	AdminName string `json:"admin_name"`
}

// Path returns the site root.
func (h *HomePage) Path() string {
	return "/"
}

// OpenGraph returns the home page metadata as Open Graph properties.
func (h *HomePage) OpenGraph(site *Site, vars Vars) (*schemas.OpenGraph, error) {
	return h.openGraph(site, vars, h.Path(), schemas.OGTypeWebsite)
}

// Schema returns the home page as a schema.org WebPage.
func (h *HomePage) Schema(site *Site) (schemas.Schema, error) {
	return h.webPageSchema(site, h.Path())
}
