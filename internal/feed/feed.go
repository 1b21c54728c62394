// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package feed produces RSS 2.0 documents for the site, its sections and
// its authors. Items carry the full excerpt in a content:encoded element
// alongside the plain description.
package feed

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/veselosky/commoncontent/internal/model"
)

// ContentNamespace declares the RSS content module used for the
// content:encoded item element.
const ContentNamespace = "http://purl.org/rss/1.0/modules/content/"

// AtomNamespace is used for the channel's self-referencing atom:link.
const AtomNamespace = "http://www.w3.org/2005/Atom"

// DCNamespace covers the dc:creator item element.
const DCNamespace = "http://purl.org/dc/elements/1.1/"

// MIMEType is the media type feeds are served with.
const MIMEType = "application/rss+xml; charset=utf-8"

// Feed is channel-level metadata plus the items to publish. Build one
// with SiteFeed, SectionFeed or AuthorFeed, then call Render.
type Feed struct {
	Title       string
	Link        string
	FeedURL     string
	Description string
	Language    string
	Copyright   string
	AuthorName  string
	Items       []Item
}

// Item is a single feed entry.
type Item struct {
	Title       string
	Link        string
	Description string
	Encoded     string
	AuthorName  string
	Categories  []string
	PubDate     time.Time
	Updated     time.Time
}

type rssXML struct {
	XMLName      xml.Name   `xml:"rss"`
	Version      string     `xml:"version,attr"`
	ContentXMLNS string     `xml:"xmlns:content,attr"`
	AtomXMLNS    string     `xml:"xmlns:atom,attr"`
	DCXMLNS      string     `xml:"xmlns:dc,attr"`
	Channel      rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	AtomLink      *atomLink `xml:"atom:link,omitempty"`
	Language      string    `xml:"language,omitempty"`
	Copyright     string    `xml:"copyright,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string      `xml:"title"`
	Link        string      `xml:"link"`
	Description string      `xml:"description,omitempty"`
	Encoded     *cdataValue `xml:"content:encoded,omitempty"`
	Author      string      `xml:"dc:creator,omitempty"`
	Categories  []string    `xml:"category,omitempty"`
	PubDate     string      `xml:"pubDate,omitempty"`
	GUID        rssGUID     `xml:"guid"`
}

type cdataValue struct {
	Value string `xml:",cdata"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Render serializes the feed as an RSS 2.0 document with the standard
// XML header.
func (f *Feed) Render() ([]byte, error) {
	doc := rssXML{
		Version:      "2.0",
		ContentXMLNS: ContentNamespace,
		AtomXMLNS:    AtomNamespace,
		DCXMLNS:      DCNamespace,
		Channel: rssChannel{
			Title:       f.Title,
			Link:        f.Link,
			Description: f.Description,
			Language:    f.Language,
			Copyright:   f.Copyright,
		},
	}
	if f.FeedURL != "" {
		doc.Channel.AtomLink = &atomLink{Href: f.FeedURL, Rel: "self", Type: "application/rss+xml"}
	}

	var lastBuild time.Time
	for _, item := range f.Items {
		entry := rssItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Author:      item.AuthorName,
			Categories:  item.Categories,
			GUID:        rssGUID{IsPermaLink: "true", Value: item.Link},
		}
		if item.Encoded != "" {
			entry.Encoded = &cdataValue{Value: item.Encoded}
		}
		if !item.PubDate.IsZero() {
			entry.PubDate = item.PubDate.Format(time.RFC1123Z)
		}
		updated := item.Updated
		if updated.IsZero() {
			updated = item.PubDate
		}
		if updated.After(lastBuild) {
			lastBuild = updated
		}
		doc.Channel.Items = append(doc.Channel.Items, entry)
	}
	if !lastBuild.IsZero() {
		doc.Channel.LastBuildDate = lastBuild.Format(time.RFC1123Z)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// SiteFeed builds the feed of recent articles across the whole site. The
// home page supplies the channel description and copyright when present.
func SiteFeed(site *model.Site, vars model.Vars, home *model.HomePage, articles []model.Article) *Feed {
	f := &Feed{
		Title:      site.Name,
		Link:       site.BaseURL() + "/",
		FeedURL:    site.AbsoluteURL("/index.rss"),
		AuthorName: vars.Get(model.VarAuthorName, ""),
	}
	if tagline := vars.Get(model.VarTagline, ""); tagline != "" {
		f.Title = site.Name + " -- " + tagline
	}
	if home != nil {
		f.Description = home.Description
		f.Language = feedLanguage(home.Locale)
		f.Copyright = home.CopyrightNotice(site, vars, time.Now())
	}
	f.Items = feedItems(site, vars, articles)
	return f
}

// SectionFeed builds the feed of recent articles within one section.
func SectionFeed(site *model.Site, vars model.Vars, section *model.Section, articles []model.Article) *Feed {
	f := &Feed{
		Title:       section.Title,
		Link:        site.AbsoluteURL(section.Path()),
		FeedURL:     site.AbsoluteURL(section.FeedPath()),
		Description: section.Description,
		Language:    feedLanguage(section.Locale),
		Copyright:   section.CopyrightNotice(site, vars, time.Now()),
		AuthorName:  vars.Get(model.VarAuthorName, ""),
	}
	if section.Author != nil {
		f.AuthorName = section.Author.Name
	}
	f.Items = feedItems(site, vars, articles)
	return f
}

// AuthorFeed builds the feed of recent articles by one author.
func AuthorFeed(site *model.Site, vars model.Vars, author *model.Author, articles []model.Article) *Feed {
	f := &Feed{
		Title:       author.Name,
		Link:        author.URL(site),
		FeedURL:     site.AbsoluteURL(author.Path() + "index.rss"),
		Description: author.Description,
		AuthorName:  author.Name,
	}
	f.Items = feedItems(site, vars, articles)
	return f
}

func feedItems(site *model.Site, vars model.Vars, articles []model.Article) []Item {
	items := make([]Item, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		item := Item{
			Title:       a.MetaTitle(),
			Link:        site.AbsoluteURL(a.Path()),
			Description: a.MetaDescription(),
			Encoded:     a.Excerpt(),
			Categories:  a.Tags,
			AuthorName:  vars.Get(model.VarAuthorName, ""),
		}
		if a.Author != nil {
			item.AuthorName = a.Author.Name
		}
		if a.DatePublished.Valid {
			item.PubDate = a.DatePublished.Time
		}
		if a.DateModified.Valid {
			item.Updated = a.DateModified.Time
		}
		items = append(items, item)
	}
	return items
}

// feedLanguage converts a locale code like en_US to the hyphenated
// lowercase form RSS expects.
func feedLanguage(locale string) string {
	if locale == "" {
		locale = model.DefaultLocale
	}
	return strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
}
