// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "commoncontent-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func seedSite(t *testing.T, q *Queries) int64 {
	t.Helper()
	site, err := q.CreateSite(context.Background(), CreateSiteParams{
		Domain: "test.example.com",
		Name:   "Test Site",
	})
	if err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	return site.ID
}

func TestSiteAndVars(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	siteID := seedSite(t, q)

	site, err := q.GetSiteByDomain(ctx, "test.example.com")
	if err != nil {
		t.Fatalf("GetSiteByDomain: %v", err)
	}
	if site.ID != siteID || site.Name != "Test Site" {
		t.Errorf("got site %+v", site)
	}

	if err := q.UpsertSiteVar(ctx, siteID, "brand", "Testy"); err != nil {
		t.Fatalf("UpsertSiteVar: %v", err)
	}
	// Upsert should replace, not duplicate
	if err := q.UpsertSiteVar(ctx, siteID, "brand", "Testy v2"); err != nil {
		t.Fatalf("UpsertSiteVar update: %v", err)
	}

	vars, err := q.ListSiteVars(ctx, siteID)
	if err != nil {
		t.Fatalf("ListSiteVars: %v", err)
	}
	if len(vars) != 1 {
		t.Fatalf("got %d vars, want 1", len(vars))
	}
	if vars[0].Value != "Testy v2" {
		t.Errorf("value = %q, want %q", vars[0].Value, "Testy v2")
	}

	if err := q.DeleteSiteVar(ctx, siteID, "brand"); err != nil {
		t.Fatalf("DeleteSiteVar: %v", err)
	}
	vars, err = q.ListSiteVars(ctx, siteID)
	if err != nil {
		t.Fatalf("ListSiteVars after delete: %v", err)
	}
	if len(vars) != 0 {
		t.Errorf("got %d vars after delete, want 0", len(vars))
	}
}

func TestContentLifecycle(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	siteID := seedSite(t, q)
	now := time.Now()
	published := sql.NullTime{Time: now.Add(-time.Hour), Valid: true}

	authorID, err := q.CreateAuthor(ctx, CreateAuthorParams{
		SiteID: siteID,
		Name:   "Jane Doe",
		Slug:   "jane-doe",
	})
	if err != nil {
		t.Fatalf("CreateAuthor: %v", err)
	}

	sectionID, err := q.CreatePage(ctx, CreatePageParams{
		SiteID:        siteID,
		Kind:          KindSection,
		Slug:          "tech",
		Title:         "Technology",
		DatePublished: published,
	})
	if err != nil {
		t.Fatalf("CreatePage section: %v", err)
	}

	_, err = q.CreatePage(ctx, CreatePageParams{
		SiteID:        siteID,
		Kind:          KindArticle,
		Slug:          "first-post",
		Title:         "First Post",
		Body:          "<p>Hello.</p>",
		SectionID:     sql.NullInt64{Int64: sectionID, Valid: true},
		AuthorID:      sql.NullInt64{Int64: authorID, Valid: true},
		DatePublished: published,
		Tags:          []string{"intro", "hello"},
	})
	if err != nil {
		t.Fatalf("CreatePage article: %v", err)
	}

	// Unpublished articles must not appear
	_, err = q.CreatePage(ctx, CreatePageParams{
		SiteID:    siteID,
		Kind:      KindArticle,
		Slug:      "draft-post",
		Title:     "Draft Post",
		Status:    "withheld",
		SectionID: sql.NullInt64{Int64: sectionID, Valid: true},
	})
	if err != nil {
		t.Fatalf("CreatePage draft: %v", err)
	}

	article, err := q.GetArticle(ctx, siteID, "tech", "first-post", now)
	if err != nil {
		t.Fatalf("GetArticle: %v", err)
	}
	if article.Title != "First Post" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.Section == nil || article.Section.Slug != "tech" {
		t.Errorf("Section = %+v", article.Section)
	}
	if article.Author == nil || article.Author.Name != "Jane Doe" {
		t.Errorf("Author = %+v", article.Author)
	}
	if len(article.Tags) != 2 || article.Tags[0] != "hello" {
		t.Errorf("Tags = %v", article.Tags)
	}

	if _, err := q.GetArticle(ctx, siteID, "tech", "draft-post", now); err != sql.ErrNoRows {
		t.Errorf("draft article should not be served, got err=%v", err)
	}

	articles, err := q.ListArticlesBySection(ctx, sectionID, now, 10, 0)
	if err != nil {
		t.Fatalf("ListArticlesBySection: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("got %d articles, want 1", len(articles))
	}

	n, err := q.CountArticles(ctx, siteID, now)
	if err != nil {
		t.Fatalf("CountArticles: %v", err)
	}
	if n != 1 {
		t.Errorf("CountArticles = %d, want 1", n)
	}
}

func TestExpiredContentIsHidden(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	siteID := seedSite(t, q)
	now := time.Now()

	sectionID, err := q.CreatePage(ctx, CreatePageParams{
		SiteID:        siteID,
		Kind:          KindSection,
		Slug:          "news",
		Title:         "News",
		DatePublished: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
	})
	if err != nil {
		t.Fatalf("CreatePage section: %v", err)
	}

	_, err = q.CreatePage(ctx, CreatePageParams{
		SiteID:        siteID,
		Kind:          KindArticle,
		Slug:          "old-news",
		Title:         "Old News",
		SectionID:     sql.NullInt64{Int64: sectionID, Valid: true},
		DatePublished: sql.NullTime{Time: now.Add(-48 * time.Hour), Valid: true},
		Expires:       sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
	})
	if err != nil {
		t.Fatalf("CreatePage expired: %v", err)
	}

	if _, err := q.GetArticle(ctx, siteID, "news", "old-news", now); err != sql.ErrNoRows {
		t.Errorf("expired article should not be served, got err=%v", err)
	}
}

func TestSeriesOrdering(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	siteID := seedSite(t, q)
	now := time.Now()
	published := sql.NullTime{Time: now.Add(-time.Hour), Valid: true}

	sectionID, err := q.CreatePage(ctx, CreatePageParams{
		SiteID: siteID, Kind: KindSection, Slug: "guides", Title: "Guides",
		DatePublished: published,
	})
	if err != nil {
		t.Fatalf("CreatePage section: %v", err)
	}

	seriesID, err := q.CreateSeries(ctx, CreateSeriesParams{
		SiteID: siteID, Name: "Go Basics", Slug: "go-basics",
	})
	if err != nil {
		t.Fatalf("CreateSeries: %v", err)
	}

	for i, slug := range []string{"part-two", "part-one"} {
		order := 2 - i // insert out of order on purpose
		_, err := q.CreatePage(ctx, CreatePageParams{
			SiteID: siteID, Kind: KindArticle, Slug: slug, Title: slug,
			SectionID:     sql.NullInt64{Int64: sectionID, Valid: true},
			SeriesID:      sql.NullInt64{Int64: seriesID, Valid: true},
			SeriesOrder:   order,
			DatePublished: published,
		})
		if err != nil {
			t.Fatalf("CreatePage %s: %v", slug, err)
		}
	}

	articles, err := q.ListArticlesBySeries(ctx, seriesID, now)
	if err != nil {
		t.Fatalf("ListArticlesBySeries: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].Slug != "part-one" || articles[1].Slug != "part-two" {
		t.Errorf("wrong order: %s, %s", articles[0].Slug, articles[1].Slug)
	}
	if articles[0].Series == nil || articles[0].Series.Name != "Go Basics" {
		t.Errorf("Series = %+v", articles[0].Series)
	}
}

func TestMenus(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	siteID := seedSite(t, q)

	menuID, err := q.CreateMenu(ctx, CreateMenuParams{
		SiteID: siteID, AdminName: "Main Nav", Slug: "main-nav",
	})
	if err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}

	links := []CreateLinkParams{
		{MenuID: menuID, URL: "/", Title: "Home", Position: 1},
		{MenuID: menuID, URL: "/blog/", Title: "Blog", Position: 2},
	}
	for _, l := range links {
		if _, err := q.CreateLink(ctx, l); err != nil {
			t.Fatalf("CreateLink: %v", err)
		}
	}

	menu, err := q.GetMenuBySlug(ctx, siteID, "main-nav")
	if err != nil {
		t.Fatalf("GetMenuBySlug: %v", err)
	}
	if len(menu.Links) != 2 {
		t.Fatalf("got %d links, want 2", len(menu.Links))
	}
	if menu.Links[0].Title != "Home" || menu.Links[1].Title != "Blog" {
		t.Errorf("wrong link order: %+v", menu.Links)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db, "seeded.example.com", "Seeded Site", "en-us"); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Idempotent
	if err := Seed(ctx, db, "seeded.example.com", "Seeded Site", "en-us"); err != nil {
		t.Fatalf("Seed second run: %v", err)
	}

	q := New(db)
	site, err := q.GetSiteByDomain(ctx, "seeded.example.com")
	if err != nil {
		t.Fatalf("GetSiteByDomain: %v", err)
	}

	now := time.Now().Add(time.Minute)
	home, err := q.GetHomePage(ctx, site.ID, now)
	if err != nil {
		t.Fatalf("GetHomePage: %v", err)
	}
	if home.Title != "Seeded Site" {
		t.Errorf("home Title = %q", home.Title)
	}

	article, err := q.GetArticle(ctx, site.ID, "blog", "welcome", now)
	if err != nil {
		t.Fatalf("GetArticle: %v", err)
	}
	if article.Locale != "en_US" {
		t.Errorf("article Locale = %q", article.Locale)
	}
}
