// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package seo

import (
	"strings"

	"github.com/veselosky/commoncontent/internal/model"
)

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	DisallowAll   bool     // block all crawlers, for staging sites
	DisallowPaths []string // extra paths to disallow
	ExtraRules    string   // appended verbatim after the standard rules
}

// GenerateRobots builds the robots.txt body for a site, referencing its
// sitemap when crawling is allowed.
func GenerateRobots(site *model.Site, cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	disallow := append([]string{"/media/"}, cfg.DisallowPaths...)
	for _, path := range disallow {
		sb.WriteString("Disallow: ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}
	sb.WriteString("Allow: /\n")

	if cfg.ExtraRules != "" {
		sb.WriteString("\n")
		sb.WriteString(cfg.ExtraRules)
		if !strings.HasSuffix(cfg.ExtraRules, "\n") {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nSitemap: ")
	sb.WriteString(site.AbsoluteURL("/sitemap.xml"))
	sb.WriteString("\n")
	return sb.String()
}
