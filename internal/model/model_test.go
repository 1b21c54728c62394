// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package model

import "testing"

func TestToLocale(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"en-us", "en_US"},
		{"en-US", "en_US"},
		{"fr", "fr"},
		{"pt-br", "pt_BR"},
		{"sr-latn", "sr_Latn"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ToLocale(tt.tag); got != tt.want {
				t.Errorf("ToLocale(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestSiteURLs(t *testing.T) {
	s := &Site{Domain: "example.com", Name: "Example"}
	if got := s.BaseURL(); got != "https://example.com" {
		t.Errorf("BaseURL() = %q", got)
	}
	if got := s.AbsoluteURL("/about/"); got != "https://example.com/about/" {
		t.Errorf("AbsoluteURL() = %q", got)
	}
	if got := s.AbsoluteURL("about/"); got != "https://example.com/about/" {
		t.Errorf("AbsoluteURL() without slash = %q", got)
	}
}
