// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"database/sql"
	"fmt"

	"github.com/veselosky/commoncontent/internal/schemas"
)

// Author is a person or organization to whom credit is attributed. It
// provides attribution data, populates a profile page, and can store
// default copyright information for its works.
type Author struct {
	ID          int64         `json:"id"`
	SiteID      int64         `json:"site_id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	ShortBio    string        `json:"short_bio"`
	FullBio     string        `json:"full_bio"`
	ProfileID   sql.NullInt64 `json:"profile_image_id,omitempty"`
	LinksID     sql.NullInt64 `json:"social_links_id,omitempty"`

	CopyrightHolder string       `json:"copyright_holder,omitempty"`
	CopyrightNotice string       `json:"copyright_notice,omitempty"`
	DateModified    sql.NullTime `json:"date_modified,omitempty"`

	// Loaded relations.
	ProfileImage *Image `json:"-"`
	SocialLinks  *Menu  `json:"-"`
}

// Path returns the site-relative URL of the author's profile page.
func (a *Author) Path() string {
	return fmt.Sprintf("/author/%s/", a.Slug)
}

// URL returns the canonical URL of the author's profile page.
func (a *Author) URL(site *Site) string {
	return site.AbsoluteURL(a.Path())
}

// OpenGraph returns the author's profile page metadata as og:profile.
func (a *Author) OpenGraph(site *Site) (*schemas.OGProfile, error) {
	og, err := schemas.NewOGProfile(schemas.OGProfile{
		OpenGraph: schemas.OpenGraph{
			Title: a.Name,
			URL:   a.URL(site),
		},
	})
	if err != nil {
		return nil, err
	}
	if a.ProfileImage != nil {
		img, err := a.ProfileImage.ImageProp(site)
		if err != nil {
			return nil, err
		}
		og.Image = []schemas.ImageProp{*img}
	}
	return og, nil
}

// Schema returns the author as a schema.org Person. Site may be nil when
// the author appears nested inside another schema, in which case the URL
// is omitted.
func (a *Author) Schema(site *Site) (schemas.Schema, error) {
	thing := schemas.ThingSchema{
		Name:        a.Name,
		Description: a.ShortBio,
	}
	if site != nil {
		thing.URL = a.URL(site)
	}
	if a.ProfileImage != nil && site != nil {
		thing.Image = a.ProfileImage.MediaURL(site)
	}
	if _, err := schemas.NewThingSchema(thing); err != nil {
		return nil, err
	}
	return schemas.ForLabel(schemas.LabelPerson)(schemas.CreativeWorkSchema{ThingSchema: thing}), nil
}
