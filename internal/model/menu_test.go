// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import "testing"

func TestLinkIconName(t *testing.T) {
	l := &Link{}
	if got := l.IconName(mapVars{}); got != "link-45deg" {
		t.Errorf("IconName() = %q, want link-45deg", got)
	}
	l.CustomIcon = "github"
	if got := l.IconName(mapVars{}); got != "github" {
		t.Errorf("IconName() = %q, want github", got)
	}
}

func TestMenuNavItems(t *testing.T) {
	m := &Menu{
		Slug: MainNavSlug,
		Links: []Link{
			{Title: "Home", URL: "/"},
			{Title: "GitHub", URL: "https://github.com/example", CustomIcon: "github"},
		},
	}
	items := MenuNavItems(m, mapVars{})
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "Home" || items[0].URL != "/" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Icon != "github" {
		t.Errorf("second item icon = %q", items[1].Icon)
	}
}
