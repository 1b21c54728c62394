// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package model defines the content types served by commoncontent: sites,
// authors, pages, sections, articles, media objects, and menus. Every
// content type knows how to describe itself as Open Graph metatags and as
// a schema.org object for JSON-LD serialization.
package model

import (
	"strings"

	"golang.org/x/text/language"
)

// Site represents a website served by this instance. Content rows carry a
// site ID so one database can back multiple domains.
type Site struct {
	ID     int64  `json:"id"`
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

// BaseURL returns the canonical root URL for the site.
func (s *Site) BaseURL() string {
	return "https://" + s.Domain
}

// AbsoluteURL joins a site-relative path to the site's base URL.
func (s *Site) AbsoluteURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.BaseURL() + path
}

// Vars resolves named site variables. Lookups fall through stored values
// to application defaults, so model code can ask for a var without caring
// where it came from.
type Vars interface {
	// Get returns the value of the named var, or fallback when the var is
	// not set anywhere.
	Get(name, fallback string) string
}

// ToLocale converts a BCP 47 language tag like "en-us" into a POSIX-style
// locale like "en_US", the form Open Graph expects for og:locale.
func ToLocale(langTag string) string {
	tag, err := language.Parse(langTag)
	if err != nil {
		return strings.Replace(langTag, "-", "_", 1)
	}
	return strings.Replace(tag.String(), "-", "_", 1)
}

// DefaultLocale is used for content that does not declare a locale.
const DefaultLocale = "en_US"
