// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes attaches the public routes to the router. The URL
// scheme mirrors the site structure: sections are directories, articles
// and landing pages are .html documents, and list pages paginate with
// page_N.html suffixes. Specific patterns are registered before the
// section catch-alls.
func RegisterRoutes(r chi.Router, front *FrontendHandler, health *HealthHandler,
	static fs.FS, mediaDir string) {
	r.Get("/healthz", health.Healthz)
	r.Handle("/static/*", http.FileServer(http.FS(static)))
	r.Handle("/media/*", http.StripPrefix("/media/",
		http.FileServer(http.Dir(mediaDir))))

	r.Get("/sitemap.xml", front.Sitemap)
	r.Get("/robots.txt", front.Robots)

	r.Get("/index.rss", front.SiteFeed)
	r.Get("/feed/", RedirectTo("/index.rss"))
	r.Get("/page_{page:[0-9]+}.html", front.Home)

	r.Get("/author/", front.AuthorList)
	r.Get("/author/{author}/", front.Author)
	r.Get("/author/{author}/page_{page:[0-9]+}.html", front.Author)
	r.Get("/author/{author}/index.rss", front.AuthorFeed)

	r.Get("/{slug}.html", front.Page)
	r.Get("/{section}/", front.Section)
	r.Get("/{section}/page_{page:[0-9]+}.html", front.Section)
	r.Get("/{section}/index.rss", front.SectionFeed)
	r.Get("/{section}/feed/", front.RedirectSectionFeed)
	r.Get("/{section}/{article}.html", front.Article)
	r.Get("/{section}/{series}/", front.Series)
	r.Get("/{section}/{series}/{article}.html", front.Article)

	r.Get("/", front.Home)
	r.NotFound(front.NotFound)
}
