// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package schemas

import "strings"

// Open Graph object types produced by this package.
const (
	OGTypeWebsite = "website"
	OGTypeArticle = "article"
	OGTypeBook    = "book"
	OGTypeProfile = "profile"
)

// Gender is the og:profile gender vocabulary as defined at ogp.me.
type Gender string

// Gender values.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// OpenGraph is a generic Open Graph object (a page). Subtype-specific
// fields live on OGArticle, OGBook and OGProfile; the base renderer emits
// only the properties of the base protocol so that subtype fields never
// leak out under the wrong namespace.
type OpenGraph struct {
	Title string
	URL   string
	Type  string // defaults to "website"; forced by subtypes
	Image []ImageProp
	Audio []AudioProp
	Video []VideoProp

	Description     string
	Determiner      string
	Locale          string
	LocaleAlternate []string
	SiteName        string
}

// NewOpenGraph validates the object's URL and every structured property,
// and applies the default type. The returned value is ready to render.
func NewOpenGraph(og OpenGraph) (*OpenGraph, error) {
	if err := og.validate(); err != nil {
		return nil, err
	}
	if og.Type == "" {
		og.Type = OGTypeWebsite
	}
	return &og, nil
}

func (og *OpenGraph) validate() error {
	if err := validateField("url", og.URL); err != nil {
		return err
	}
	for _, p := range og.Image {
		if err := validateProp(p.URL, p.SecureURL); err != nil {
			return err
		}
	}
	for _, p := range og.Audio {
		if err := validateProp(p.URL, p.SecureURL); err != nil {
			return err
		}
	}
	for _, p := range og.Video {
		if err := validateProp(p.URL, p.SecureURL); err != nil {
			return err
		}
	}
	return nil
}

// Render serializes the base Open Graph properties as meta tag lines.
// og:url always comes first; everything else follows in field order,
// skipping unset fields. Order is significant and covered by tests.
func (og *OpenGraph) Render() string {
	var b strings.Builder
	b.WriteString(metaTag("og", "url", og.URL))
	if og.Title != "" {
		b.WriteString(metaTag("og", "title", og.Title))
	}
	if og.Type != "" {
		b.WriteString(metaTag("og", "type", og.Type))
	}
	for i := range og.Image {
		b.WriteString(og.Image[i].Render())
	}
	for i := range og.Audio {
		b.WriteString(og.Audio[i].Render())
	}
	for i := range og.Video {
		b.WriteString(og.Video[i].Render())
	}
	if og.Description != "" {
		b.WriteString(metaTag("og", "description", og.Description))
	}
	if og.Determiner != "" {
		b.WriteString(metaTag("og", "determiner", og.Determiner))
	}
	if og.Locale != "" {
		b.WriteString(metaTag("og", "locale", og.Locale))
	}
	for _, alt := range og.LocaleAlternate {
		b.WriteString(metaTag("og", "locale_alternate", alt))
	}
	if og.SiteName != "" {
		b.WriteString(metaTag("og", "site_name", og.SiteName))
	}
	return b.String()
}

// renderExtras emits a subtype's namespaced block: one tag per non-zero
// scalar field in list order, then one tag per entry of each list field.
func renderExtras(prefix string, scalars []field, lists []field) string {
	var b strings.Builder
	for _, f := range scalars {
		if isZero(f.value) {
			continue
		}
		b.WriteString(metaTag(prefix, f.name, f.value))
	}
	for _, f := range lists {
		entries, _ := f.value.([]string)
		for _, entry := range entries {
			b.WriteString(metaTag(prefix, f.name, entry))
		}
	}
	return b.String()
}

// OGArticle is the Open Graph article object. Section and Author hold
// display strings; callers resolve any content-model references before
// constructing the object.
type OGArticle struct {
	OpenGraph
	PublishedTime  Timestamp
	ModifiedTime   Timestamp
	ExpirationTime Timestamp
	Section        string
	Author         []string
	Tag            []string
}

// NewOGArticle validates the object and forces its type to "article".
// An article is definitionally type=article; caller input cannot
// override it.
func NewOGArticle(a OGArticle) (*OGArticle, error) {
	base, err := NewOpenGraph(a.OpenGraph)
	if err != nil {
		return nil, err
	}
	a.OpenGraph = *base
	a.Type = OGTypeArticle
	return &a, nil
}

// Render appends the article: namespace block to the base output.
func (a *OGArticle) Render() string {
	return a.OpenGraph.Render() + renderExtras("article",
		[]field{
			{"published_time", a.PublishedTime},
			{"modified_time", a.ModifiedTime},
			{"expiration_time", a.ExpirationTime},
			{"section", a.Section},
		},
		[]field{
			{"author", a.Author},
			{"tag", a.Tag},
		})
}

// OGBook is the Open Graph book object.
type OGBook struct {
	OpenGraph
	ISBN        string
	ReleaseDate Timestamp
	Author      []string
	Tag         []string
}

// NewOGBook validates the object and forces its type to "book".
func NewOGBook(bk OGBook) (*OGBook, error) {
	base, err := NewOpenGraph(bk.OpenGraph)
	if err != nil {
		return nil, err
	}
	bk.OpenGraph = *base
	bk.Type = OGTypeBook
	return &bk, nil
}

// Render appends the book: namespace block to the base output.
func (bk *OGBook) Render() string {
	return bk.OpenGraph.Render() + renderExtras("book",
		[]field{
			{"isbn", bk.ISBN},
			{"release_date", bk.ReleaseDate},
		},
		[]field{
			{"author", bk.Author},
			{"tag", bk.Tag},
		})
}

// OGProfile is Open Graph's person object.
type OGProfile struct {
	OpenGraph
	FirstName string
	LastName  string
	Username  string
	Gender    Gender
}

// NewOGProfile validates the object and forces its type to "profile".
func NewOGProfile(p OGProfile) (*OGProfile, error) {
	base, err := NewOpenGraph(p.OpenGraph)
	if err != nil {
		return nil, err
	}
	p.OpenGraph = *base
	p.Type = OGTypeProfile
	return &p, nil
}

// Render appends the profile: namespace block to the base output.
func (p *OGProfile) Render() string {
	return p.OpenGraph.Render() + renderExtras("profile",
		[]field{
			{"first_name", p.FirstName},
			{"last_name", p.LastName},
			{"username", p.Username},
			{"gender", p.Gender},
		},
		nil)
}
