// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/veselosky/commoncontent/internal/cache"
	"github.com/veselosky/commoncontent/internal/feed"
	"github.com/veselosky/commoncontent/internal/model"
	"github.com/veselosky/commoncontent/internal/seo"
	"github.com/veselosky/commoncontent/internal/service"
)

const (
	feedTTL    = 15 * time.Minute
	sitemapTTL = time.Hour
)

// cached serves a generated document from the cache, building and
// storing it on a miss. Caching is skipped when no cache is configured.
func (h *FrontendHandler) cached(ctx context.Context, key string, ttl time.Duration,
	build func() ([]byte, error)) ([]byte, error) {
	if h.cache != nil {
		if body, err := h.cache.Get(ctx, key); err == nil {
			return body, nil
		}
	}
	body, err := build()
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, key, body, ttl); err != nil {
			h.logger.Warn("caching document", "key", key, "error", err)
		}
	}
	return body, nil
}

// SiteFeed serves the site-wide RSS feed at /index.rss.
func (h *FrontendHandler) SiteFeed(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	body, err := h.cached(r.Context(), cache.FeedKey(site.ID, "site"), feedTTL, func() ([]byte, error) {
		var home *model.HomePage
		if hp, err := h.content.HomePage(r.Context(), site.ID); err == nil {
			home = &hp
		}
		articles, err := h.content.Articles(r.Context(), site.ID, 1, pageSize(vars))
		if err != nil {
			return nil, err
		}
		return feed.SiteFeed(&site, vars, home, articles.Articles).Render()
	})
	if err != nil {
		h.logger.Error("generating site feed", "site_id", site.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", feed.MIMEType)
	w.Write(body)
}

// SectionFeed serves a section's RSS feed at /{section}/index.rss.
func (h *FrontendHandler) SectionFeed(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	slug := chi.URLParam(r, "section")
	section, err := h.content.Section(r.Context(), site.ID, slug)
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}

	body, err := h.cached(r.Context(), cache.FeedKey(site.ID, slug), feedTTL, func() ([]byte, error) {
		articles, err := h.content.SectionArticles(r.Context(), section.ID, 1, pageSize(vars))
		if err != nil {
			return nil, err
		}
		return feed.SectionFeed(&site, vars, &section, articles.Articles).Render()
	})
	if err != nil {
		h.logger.Error("generating section feed", "section", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", feed.MIMEType)
	w.Write(body)
}

// AuthorFeed serves an author's RSS feed at /author/{author}/index.rss.
func (h *FrontendHandler) AuthorFeed(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	slug := chi.URLParam(r, "author")
	author, err := h.content.Author(r.Context(), site.ID, slug)
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}

	body, err := h.cached(r.Context(), cache.FeedKey(site.ID, "author:"+slug), feedTTL, func() ([]byte, error) {
		articles, err := h.content.AuthorArticles(r.Context(), author.ID, 1, pageSize(vars))
		if err != nil {
			return nil, err
		}
		return feed.AuthorFeed(&site, vars, &author, articles.Articles).Render()
	})
	if err != nil {
		h.logger.Error("generating author feed", "author", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", feed.MIMEType)
	w.Write(body)
}

// Sitemap serves /sitemap.xml covering the site's live content.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	body, err := h.cached(r.Context(), cache.SitemapKey(site.ID), sitemapTTL, func() ([]byte, error) {
		ctx := r.Context()
		var home *model.HomePage
		if hp, err := h.content.HomePage(ctx, site.ID); err == nil {
			home = &hp
		} else if !errors.Is(err, service.ErrNotFound) {
			return nil, err
		}
		sections, err := h.content.Sections(ctx, site.ID)
		if err != nil {
			return nil, err
		}
		pages, err := h.content.Pages(ctx, site.ID)
		if err != nil {
			return nil, err
		}
		// The sitemap lists every live article. Page through them so a
		// large site is not capped at one listing page.
		var articles []model.Article
		for n := 1; ; n++ {
			batch, err := h.content.Articles(ctx, site.ID, n, 500)
			if err != nil {
				return nil, err
			}
			articles = append(articles, batch.Articles...)
			if !batch.HasNext() {
				break
			}
		}
		authors, err := h.content.Authors(ctx, site.ID)
		if err != nil {
			return nil, err
		}
		return seo.GenerateSitemap(&site, vars, home, sections, pages, articles, authors)
	})
	if err != nil {
		h.logger.Error("generating sitemap", "site_id", site.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(body)
}

// Robots serves /robots.txt. Non-production environments disallow all
// crawling so staging hosts never leak into search indexes.
func (h *FrontendHandler) Robots(w http.ResponseWriter, r *http.Request) {
	site, _, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	body := seo.GenerateRobots(&site, seo.RobotsConfig{DisallowAll: h.disallowRobots})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(body))
}
