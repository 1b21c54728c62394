// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/veselosky/commoncontent/internal/schemas"
)

// CreativeWork holds the properties common to all content, after
// https://schema.org/CreativeWork. Copyright information, publication
// status and editorial dates live here so every content type gets the
// same publishing semantics.
type CreativeWork struct {
	ID          int64          `json:"id"`
	SiteID      int64          `json:"site_id"`
	Title       string         `json:"title"`
	Status      schemas.Status `json:"status"`
	Description string         `json:"description"`
	AuthorID    sql.NullInt64  `json:"author_id,omitempty"`

	DateCreated   sql.NullTime `json:"date_created,omitempty"`
	DatePublished sql.NullTime `json:"date_published,omitempty"`
	DateModified  sql.NullTime `json:"date_modified,omitempty"`
	Expires       sql.NullTime `json:"expires,omitempty"`

	CustomCopyrightHolder string   `json:"custom_copyright_holder,omitempty"`
	CustomCopyrightNotice string   `json:"custom_copyright_notice,omitempty"`
	Locale                string   `json:"locale"`
	Tags                  []string `json:"tags,omitempty"`

	// Author is populated by the store when the work is loaded with its
	// relations. Nil when AuthorID is null or the relation was not loaded.
	Author *Author `json:"-"`
}

// IsLive reports whether the work should appear on the site: status is
// usable, the publish date is set and past, and the expiration date is
// unset or in the future.
func (w *CreativeWork) IsLive(now time.Time) bool {
	if w.Status != schemas.StatusUsable {
		return false
	}
	if !w.DatePublished.Valid || w.DatePublished.Time.After(now) {
		return false
	}
	if w.Expires.Valid && !w.Expires.Time.After(now) {
		return false
	}
	return true
}

// CopyrightYear is the year of first publication, falling back to the
// creation year, then the current year.
func (w *CreativeWork) CopyrightYear(now time.Time) int {
	if w.DatePublished.Valid {
		return w.DatePublished.Time.Year()
	}
	if w.DateCreated.Valid {
		return w.DateCreated.Time.Year()
	}
	return now.Year()
}

// CopyrightHolder resolves the copyright holder for the work: the work's
// own override, then the author's holder or name, then the site var,
// then the site name.
func (w *CreativeWork) CopyrightHolder(site *Site, vars Vars) string {
	if w.CustomCopyrightHolder != "" {
		return w.CustomCopyrightHolder
	}
	if w.Author != nil {
		if w.Author.CopyrightHolder != "" {
			return w.Author.CopyrightHolder
		}
		return w.Author.Name
	}
	return vars.Get(VarCopyrightHolder, site.Name)
}

// CopyrightNotice resolves the copyright notice for the work. Custom
// notices contain a "{}" placeholder where the year is inserted. The
// resolution order is the work's notice, the author's, the site var, and
// finally the application fallback.
func (w *CreativeWork) CopyrightNotice(site *Site, vars Vars, now time.Time) string {
	year := w.CopyrightYear(now)
	if w.CustomCopyrightNotice != "" {
		return insertYear(w.CustomCopyrightNotice, year)
	}
	if w.Author != nil && w.Author.CopyrightNotice != "" {
		return insertYear(w.Author.CopyrightNotice, year)
	}
	if notice := vars.Get(VarCopyrightNotice, ""); notice != "" {
		return insertYear(notice, year)
	}
	return fmt.Sprintf(FallbackCopyright, year, w.CopyrightHolder(site, vars))
}

func insertYear(notice string, year int) string {
	return strings.Replace(notice, "{}", fmt.Sprintf("%d", year), 1)
}

// baseOpenGraph builds the Open Graph object shared by all content
// types. Only properties from the base of the protocol appear here;
// subtype metadata (article tags, profile fields) is added by the types
// that own it.
func (w *CreativeWork) baseOpenGraph(site *Site, vars Vars, url, ogType string) (*schemas.OpenGraph, error) {
	locale := w.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	return schemas.NewOpenGraph(schemas.OpenGraph{
		Title:       w.Title,
		URL:         url,
		Type:        ogType,
		Description: w.Description,
		Locale:      locale,
		SiteName:    vars.Get(VarBrand, site.Name),
	})
}

// baseSchema builds the CreativeWork schema.org object shared by all
// content types. The author relation nests as a Person when loaded.
func (w *CreativeWork) baseSchema(url string) (schemas.CreativeWorkSchema, error) {
	cw, err := schemas.NewCreativeWorkSchema(schemas.CreativeWorkSchema{
		ThingSchema: schemas.ThingSchema{
			Description: w.Description,
			URL:         url,
		},
		CreativeWorkStatus: w.Status,
		DateCreated:        nullTimestamp(w.DateCreated),
		DatePublished:      nullTimestamp(w.DatePublished),
		DateModified:       nullTimestamp(w.DateModified),
		Expires:            nullTimestamp(w.Expires),
		Headline:           w.Title,
		Keywords:           w.Tags,
	})
	if err != nil {
		return schemas.CreativeWorkSchema{}, err
	}
	if w.Author != nil {
		author, err := w.Author.Schema(nil)
		if err != nil {
			return schemas.CreativeWorkSchema{}, err
		}
		cw.Author = author
	}
	return *cw, nil
}

// Schema returns the work as a plain CreativeWork schema.org object.
// Content types with a more specific schema type build on baseSchema
// through the label registry instead.
func (w *CreativeWork) Schema(site *Site) (schemas.Schema, error) {
	base, err := w.baseSchema(site.AbsoluteURL("/"))
	if err != nil {
		return nil, err
	}
	return schemas.ForLabel(schemas.LabelCreativeWork)(base), nil
}

func nullTimestamp(t sql.NullTime) schemas.Timestamp {
	if !t.Valid {
		return ""
	}
	return schemas.ISODateTime(t.Time)
}
