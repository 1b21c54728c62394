// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package handler provides the public HTTP handlers: content pages,
// feeds, sitemap, robots and health checks.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/veselosky/commoncontent/internal/cache"
	"github.com/veselosky/commoncontent/internal/model"
	"github.com/veselosky/commoncontent/internal/render"
	"github.com/veselosky/commoncontent/internal/schemas"
	"github.com/veselosky/commoncontent/internal/service"
)

// FrontendConfig holds the handler settings that come from application
// configuration rather than the database.
type FrontendConfig struct {
	// DefaultDomain serves requests whose Host header matches no site.
	DefaultDomain string
	// Staging makes robots.txt disallow all crawling.
	Staging bool
}

// FrontendHandler serves the public content pages.
type FrontendHandler struct {
	content  *service.ContentService
	vars     *service.VarsService
	menus    *service.MenuService
	renderer *render.Renderer
	cache    cache.Cache
	logger   *slog.Logger

	defaultDomain  string
	disallowRobots bool
}

// NewFrontendHandler creates a FrontendHandler. The cache may be nil to
// disable feed and sitemap caching.
func NewFrontendHandler(content *service.ContentService, vars *service.VarsService,
	menus *service.MenuService, renderer *render.Renderer, c cache.Cache,
	logger *slog.Logger, cfg FrontendConfig) *FrontendHandler {
	return &FrontendHandler{
		content:        content,
		vars:           vars,
		menus:          menus,
		renderer:       renderer,
		cache:          c,
		logger:         logger,
		defaultDomain:  cfg.DefaultDomain,
		disallowRobots: cfg.Staging,
	}
}

// resolveSite finds the site serving the request's Host header, falling
// back to the configured default domain.
func (h *FrontendHandler) resolveSite(r *http.Request) (model.Site, *service.SiteVars, error) {
	host := r.Host
	if hostOnly, _, err := net.SplitHostPort(host); err == nil {
		host = hostOnly
	}

	site, err := h.content.Site(r.Context(), host)
	if errors.Is(err, service.ErrNotFound) && host != h.defaultDomain {
		site, err = h.content.Site(r.Context(), h.defaultDomain)
	}
	if err != nil {
		return model.Site{}, nil, err
	}
	return site, h.vars.Vars(r.Context(), site.ID), nil
}

// pageSize returns the list page size from the paginate_by site var.
func pageSize(vars model.Vars) int {
	size, err := strconv.Atoi(vars.Get(model.VarPaginateBy, model.Defaults[model.VarPaginateBy]))
	if err != nil || size < 1 {
		return service.DefaultPageSize
	}
	return size
}

// pageNum extracts the page number from the route, defaulting to 1.
func pageNum(r *http.Request) int {
	n, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// pageURL builds the URL for a numbered list page. Page one is the bare
// list path.
func pageURL(basePath string, n int) string {
	if n <= 1 {
		return basePath
	}
	return fmt.Sprintf("%spage_%d.html", basePath, n)
}

// paginator builds navigation state for a list page, or nil when the
// list fits on a single page.
func paginator(page *service.ArticlePage, basePath string) *render.Paginator {
	if page.Pages <= 1 {
		return nil
	}
	p := &render.Paginator{Number: page.Number, Pages: page.Pages}
	if page.HasPrev() {
		p.PrevURL = pageURL(basePath, page.Number-1)
	}
	if page.HasNext() {
		p.NextURL = pageURL(basePath, page.Number+1)
	}
	return p
}

// newContext builds the render context shared by all page handlers.
func (h *FrontendHandler) newContext(r *http.Request, site *model.Site, vars model.Vars) *render.Context {
	ctx := render.NewContext(site, vars)
	ctx.Nav = h.menus.MainNav(r.Context(), site, vars)
	return ctx
}

// Home serves the site front page, listing the latest articles across
// all sections. Also handles /page_N.html pagination.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	home, err := h.content.HomePage(r.Context(), site.ID)
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}

	n := pageNum(r)
	articles, err := h.content.Articles(r.Context(), site.ID, n, pageSize(vars))
	if err != nil {
		h.serverError(w, r, &site, vars, err)
		return
	}
	if n > 1 && n > articles.Pages {
		h.notFound(w, r, &site, vars)
		return
	}

	ctx := h.newContext(r, &site, vars)
	ctx.SetLocale(home.Locale)
	ctx.Title = home.MetaTitle()
	ctx.Description = home.MetaDescription()
	ctx.Canonical = site.AbsoluteURL(pageURL(home.Path(), n))
	ctx.FeedURL = "/index.rss"
	ctx.Content = &home
	ctx.Articles = render.ArticleRefs(articles.Articles)
	ctx.Paginator = paginator(&articles, home.Path())
	ctx.Copyright = home.CopyrightNotice(&site, vars, time.Now())
	ctx.UseList(vars, home.ContentTemplate)
	h.setMetadata(ctx, &site, vars, &home)

	h.render(w, r, ctx)
}

// Section serves a section index listing its live articles. Also
// handles /{section}/page_N.html pagination.
func (h *FrontendHandler) Section(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	section, err := h.content.Section(r.Context(), site.ID, chi.URLParam(r, "section"))
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}

	n := pageNum(r)
	articles, err := h.content.SectionArticles(r.Context(), section.ID, n, pageSize(vars))
	if err != nil {
		h.serverError(w, r, &site, vars, err)
		return
	}
	if n > 1 && n > articles.Pages {
		h.notFound(w, r, &site, vars)
		return
	}

	ctx := h.newContext(r, &site, vars)
	ctx.SetLocale(section.Locale)
	ctx.Title = section.MetaTitle()
	ctx.Description = section.MetaDescription()
	ctx.Canonical = site.AbsoluteURL(pageURL(section.Path(), n))
	ctx.FeedURL = section.FeedPath()
	ctx.Content = &section
	ctx.Articles = render.ArticleRefs(articles.Articles)
	ctx.Paginator = paginator(&articles, section.Path())
	ctx.Copyright = section.CopyrightNotice(&site, vars, time.Now())
	ctx.UseList(vars, section.ContentTemplate)
	h.setMetadata(ctx, &site, vars, &section)

	h.render(w, r, ctx)
}

// Article serves an article detail page. Articles filed in a series are
// canonically addressed under the series slug; requests for the other
// form are redirected.
func (h *FrontendHandler) Article(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	article, err := h.content.Article(r.Context(), site.ID,
		chi.URLParam(r, "section"), chi.URLParam(r, "article"))
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}
	if article.Path() != r.URL.Path {
		http.Redirect(w, r, article.Path(), http.StatusMovedPermanently)
		return
	}

	ctx := h.newContext(r, &site, vars)
	ctx.SetLocale(article.Locale)
	ctx.Title = article.MetaTitle()
	ctx.Description = article.MetaDescription()
	ctx.Canonical = site.AbsoluteURL(article.Path())
	ctx.FeedURL = article.Section.FeedPath()
	ctx.Content = &article
	ctx.Copyright = article.CopyrightNotice(&site, vars, time.Now())
	ctx.UseDetail(vars, article.ContentTemplate)

	if article.Series != nil {
		parts, err := h.content.SeriesArticles(r.Context(), article.Series.ID)
		if err == nil {
			ctx.SeriesPart = article.SeriesPart(len(parts))
		}
	}

	if og, err := article.OpenGraph(&site, vars); err == nil {
		ctx.SetOpenGraph(og)
	} else {
		h.logger.Warn("building open graph", "path", r.URL.Path, "error", err)
	}
	if s, err := article.Schema(&site); err == nil {
		ctx.SetSchema(s)
	} else {
		h.logger.Warn("building schema", "path", r.URL.Path, "error", err)
	}

	h.render(w, r, ctx)
}

// Series serves a series index: all live articles of the series, in
// series order.
func (h *FrontendHandler) Series(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	section, err := h.content.Section(r.Context(), site.ID, chi.URLParam(r, "section"))
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}
	series, err := h.content.Series(r.Context(), site.ID, chi.URLParam(r, "series"))
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}
	articles, err := h.content.SeriesArticles(r.Context(), series.ID)
	if err != nil {
		h.serverError(w, r, &site, vars, err)
		return
	}

	ctx := h.newContext(r, &site, vars)
	ctx.Title = series.Name
	ctx.Description = series.Description
	ctx.Canonical = site.AbsoluteURL(fmt.Sprintf("/%s/%s/", section.Slug, series.Slug))
	ctx.FeedURL = section.FeedPath()
	ctx.Articles = render.ArticleRefs(articles)
	ctx.Copyright = section.CopyrightNotice(&site, vars, time.Now())
	ctx.UseList(vars, section.ContentTemplate)

	h.render(w, r, ctx)
}

// Page serves a standalone landing page.
func (h *FrontendHandler) Page(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	page, err := h.content.Page(r.Context(), site.ID, chi.URLParam(r, "slug"))
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}

	ctx := h.newContext(r, &site, vars)
	ctx.SetLocale(page.Locale)
	ctx.Title = page.MetaTitle()
	ctx.Description = page.MetaDescription()
	ctx.Canonical = site.AbsoluteURL(page.Path())
	ctx.Content = &page
	ctx.Copyright = page.CopyrightNotice(&site, vars, time.Now())
	ctx.UseDetail(vars, page.ContentTemplate)
	h.setMetadata(ctx, &site, vars, &page)

	h.render(w, r, ctx)
}

// AuthorList serves the author index page.
func (h *FrontendHandler) AuthorList(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	authors, err := h.content.Authors(r.Context(), site.ID)
	if err != nil {
		h.serverError(w, r, &site, vars, err)
		return
	}

	ctx := h.newContext(r, &site, vars)
	ctx.Title = "Authors"
	ctx.Canonical = site.AbsoluteURL("/author/")
	ctx.Authors = authors
	ctx.ContentTemplate = "blocks/author_list.html"

	h.render(w, r, ctx)
}

// Author serves an author profile page with the author's latest
// articles. Also handles /author/{slug}/page_N.html pagination.
func (h *FrontendHandler) Author(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		h.siteError(w, r, err)
		return
	}

	author, err := h.content.Author(r.Context(), site.ID, chi.URLParam(r, "author"))
	if err != nil {
		h.contentError(w, r, &site, vars, err)
		return
	}

	n := pageNum(r)
	articles, err := h.content.AuthorArticles(r.Context(), author.ID, n, pageSize(vars))
	if err != nil {
		h.serverError(w, r, &site, vars, err)
		return
	}
	if n > 1 && n > articles.Pages {
		h.notFound(w, r, &site, vars)
		return
	}

	ctx := h.newContext(r, &site, vars)
	ctx.Title = author.Name
	ctx.Description = author.ShortBio
	ctx.Canonical = site.AbsoluteURL(pageURL(author.Path(), n))
	ctx.FeedURL = author.Path() + "index.rss"
	ctx.Content = &author
	ctx.Articles = render.ArticleRefs(articles.Articles)
	ctx.Paginator = paginator(&articles, author.Path())
	ctx.ContentTemplate = "blocks/author_profile.html"

	if og, err := author.OpenGraph(&site); err == nil {
		ctx.SetOpenGraph(og)
	}
	if s, err := author.Schema(&site); err == nil {
		ctx.SetSchema(s)
	}

	h.render(w, r, ctx)
}

// setMetadata attaches Open Graph and JSON-LD blocks built from the
// page model. Metadata failures are logged, never fatal.
func (h *FrontendHandler) setMetadata(ctx *render.Context, site *model.Site, vars model.Vars,
	work interface {
		OpenGraph(*model.Site, model.Vars) (*schemas.OpenGraph, error)
		Schema(*model.Site) (schemas.Schema, error)
	}) {
	if og, err := work.OpenGraph(site, vars); err == nil {
		ctx.SetOpenGraph(og)
	} else {
		h.logger.Warn("building open graph", "error", err)
	}
	if s, err := work.Schema(site); err == nil {
		ctx.SetSchema(s)
	} else {
		h.logger.Warn("building schema", "error", err)
	}
}

// render executes the base template for the context.
func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, ctx *render.Context) {
	if err := h.renderer.Render(w, model.Defaults[model.VarBaseTemplate], ctx); err != nil {
		h.logger.Error("rendering page", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// siteError responds when the request's site could not be resolved.
func (h *FrontendHandler) siteError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	h.logger.Error("resolving site", "host", r.Host, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// contentError responds to a content lookup failure: a themed 404 for
// missing content, a 500 otherwise.
func (h *FrontendHandler) contentError(w http.ResponseWriter, r *http.Request,
	site *model.Site, vars model.Vars, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.notFound(w, r, site, vars)
		return
	}
	h.serverError(w, r, site, vars, err)
}

// NotFound renders the themed 404 page. Registered as the router's
// fallback handler.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	site, vars, err := h.resolveSite(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.notFound(w, r, &site, vars)
}

func (h *FrontendHandler) notFound(w http.ResponseWriter, r *http.Request,
	site *model.Site, vars model.Vars) {
	h.errorPage(w, r, site, vars, http.StatusNotFound, "Page Not Found",
		"The page you requested does not exist on this site.")
}

func (h *FrontendHandler) serverError(w http.ResponseWriter, r *http.Request,
	site *model.Site, vars model.Vars, err error) {
	h.logger.Error("serving page", "path", r.URL.Path, "error", err)
	h.errorPage(w, r, site, vars, http.StatusInternalServerError, "Server Error",
		"Something went wrong while serving this page.")
}

func (h *FrontendHandler) errorPage(w http.ResponseWriter, r *http.Request,
	site *model.Site, vars model.Vars, status int, title, message string) {
	ctx := h.newContext(r, site, vars)
	ctx.Title = title
	ctx.Content = message
	ctx.ContentTemplate = "blocks/error.html"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(&statusPassthrough{w}, model.Defaults[model.VarBaseTemplate], ctx); err != nil {
		h.logger.Error("rendering error page", "path", r.URL.Path, "error", err)
		fmt.Fprintf(w, "%d %s", status, title)
	}
}

// statusPassthrough stops the renderer from writing a second status
// line after WriteHeader has been called.
type statusPassthrough struct {
	http.ResponseWriter
}

func (s *statusPassthrough) WriteHeader(int) {}

// RedirectTo returns a handler that permanently redirects to a fixed
// path, preserving legacy feed URLs.
func RedirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusMovedPermanently)
	}
}

// RedirectSectionFeed redirects the legacy /{section}/feed/ URL to the
// section's canonical feed location.
func (h *FrontendHandler) RedirectSectionFeed(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	http.Redirect(w, r, fmt.Sprintf("/%s/index.rss", section), http.StatusMovedPermanently)
}
