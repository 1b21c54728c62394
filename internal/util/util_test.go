// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"accents", "Crème Brûlée", "creme-brulee"},
		{"multiple spaces", "too   many  spaces", "too-many-spaces"},
		{"leading trailing", " padded ", "padded"},
		{"already slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "my-page", "page2", "a-1-b"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "-lead", "trail-", "double--hyphen", "Upper", "spa ce", "unicodé"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple paragraph", "<p>Hello World</p>", "Hello World"},
		{"nested tags", "<div><p>Hello <strong>World</strong></p></div>", "Hello World"},
		{"no tags", "Plain text", "Plain text"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("Hello World and more text here", 15); got != "Hello World..." {
		t.Errorf("TruncateText = %q, want %q", got, "Hello World...")
	}
	if got := TruncateText("short", 100); got != "short" {
		t.Errorf("TruncateText = %q, want %q", got, "short")
	}
}

func TestTruncateWords(t *testing.T) {
	if got := TruncateWords("one two three four", 2); got != "one two..." {
		t.Errorf("TruncateWords = %q, want %q", got, "one two...")
	}
	if got := TruncateWords("one two", 5); got != "one two" {
		t.Errorf("TruncateWords = %q, want %q", got, "one two")
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("<p>three little words</p>"); got != 3 {
		t.Errorf("WordCount = %d, want 3", got)
	}
}

func TestMakeAbsoluteURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		siteURL string
		want    string
	}{
		{"relative with slash", "/images/x.jpg", "https://example.com", "https://example.com/images/x.jpg"},
		{"relative without slash", "images/x.jpg", "https://example.com", "https://example.com/images/x.jpg"},
		{"already absolute", "https://cdn.com/x.jpg", "https://example.com", "https://cdn.com/x.jpg"},
		{"empty", "", "https://example.com", ""},
		{"site trailing slash", "/x.jpg", "https://example.com/", "https://example.com/x.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeAbsoluteURL(tt.url, tt.siteURL); got != tt.want {
				t.Errorf("MakeAbsoluteURL(%q, %q) = %q, want %q", tt.url, tt.siteURL, got, tt.want)
			}
		})
	}
}
