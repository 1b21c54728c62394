// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import "time"

// Well-known site var names.
const (
	VarAuthorName       = "author_display_name"
	VarBrand            = "brand"
	VarCopyrightHolder  = "copyright_holder"
	VarCopyrightNotice  = "copyright_notice"
	VarDefaultIcon      = "default_icon"
	VarTagline          = "tagline"
	VarBaseTemplate     = "base_template"
	VarHeaderTemplate   = "header_template"
	VarFooterTemplate   = "footer_template"
	VarContentTemplate  = "detail_content_template"
	VarListTemplate     = "list_content_template"
	VarPaginateBy       = "paginate_by"
	VarSitemapChangeSeq = "sitemap_changefreq"
)

// Defaults holds the application fallback values for site vars. A SiteVar
// row overrides these per site.
var Defaults = map[string]string{
	VarDefaultIcon:      "file-text",
	VarBaseTemplate:     "base.html",
	VarHeaderTemplate:   "blocks/header_simple.html",
	VarFooterTemplate:   "blocks/footer_simple.html",
	VarContentTemplate:  "blocks/article_text.html",
	VarListTemplate:     "blocks/article_list_blog.html",
	VarPaginateBy:       "15",
	VarSitemapChangeSeq: "weekly",
}

// FallbackCopyright is the notice used when neither the work, its author,
// nor the site defines one. Formatted with the copyright year and holder.
const FallbackCopyright = "© Copyright %d %s. All rights reserved."

// PagebreakSeparator marks the end of the excerpt within a body. Text
// before the separator is used for teases and feed content.
const PagebreakSeparator = "<!-- pagebreak --><span id=continue-reading></span>"

// ExcerptMaxWords caps excerpt length when no pagebreak is present.
const ExcerptMaxWords = 200

// SiteVar is a per-site key/value setting stored in the database.
type SiteVar struct {
	ID        int64     `json:"id"`
	SiteID    int64     `json:"site_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
