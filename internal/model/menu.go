// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"database/sql"
	"time"
)

// MainNavSlug is the menu slug automatically included in generic
// headers.
const MainNavSlug = "main-nav"

// Menu is a named list of links. The slug "main-nav" is picked up by the
// default header.
type Menu struct {
	ID        int64  `json:"id"`
	SiteID    int64  `json:"site_id"`
	AdminName string `json:"admin_name"`
	Slug      string `json:"slug"`
	Title     string `json:"title,omitempty"`

	// Links is populated by the store.
	Links []Link `json:"-"`
}

// Link is an entry in a menu. Links carry only the small subset of Open
// Graph properties the templates need.
type Link struct {
	ID           int64         `json:"id"`
	MenuID       int64         `json:"menu_id"`
	URL          string        `json:"url"`
	Title        string        `json:"title,omitempty"`
	CustomIcon   string        `json:"custom_icon,omitempty"`
	Description  string        `json:"description,omitempty"`
	ShareImageID sql.NullInt64 `json:"share_image_id,omitempty"`
}

// IconName returns the icon representing this link, falling back to a
// generic link icon.
func (l *Link) IconName(vars Vars) string {
	if l.CustomIcon != "" {
		return l.CustomIcon
	}
	return vars.Get(VarDefaultIcon, "link-45deg")
}

// NavItem is one entry in a synthesized navigation menu.
type NavItem struct {
	Title string
	URL   string
	Icon  string
}

// SectionMenu synthesizes a navigation menu from the site's live
// sections when no main-nav menu is stored: the home page first, then
// the sections ordered by title, then any extra pages.
func SectionMenu(site *Site, home *HomePage, sections []Section, pages []Page, now time.Time) []NavItem {
	items := make([]NavItem, 0, len(sections)+len(pages)+1)
	title := site.Name
	if home != nil && home.Title != "" {
		title = home.Title
	}
	items = append(items, NavItem{Title: title, URL: "/"})
	for i := range sections {
		if !sections[i].IsLive(now) {
			continue
		}
		items = append(items, NavItem{Title: sections[i].Title, URL: sections[i].Path()})
	}
	for i := range pages {
		if !pages[i].IsLive(now) {
			continue
		}
		items = append(items, NavItem{Title: pages[i].Title, URL: pages[i].Path()})
	}
	return items
}

// MenuNavItems converts a stored menu into nav items for the templates.
func MenuNavItems(m *Menu, vars Vars) []NavItem {
	items := make([]NavItem, 0, len(m.Links))
	for i := range m.Links {
		l := &m.Links[i]
		items = append(items, NavItem{Title: l.Title, URL: l.URL, Icon: l.IconName(vars)})
	}
	return items
}
