// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package schemas

import (
	"encoding/json"
	"strings"
	"testing"
)

// extractJSONLD pulls the JSON payload out of the rendered script block.
func extractJSONLD(t *testing.T, rendered string) string {
	t.Helper()
	open := `<script id="schema-data" type="application/ld+json">`
	if !strings.HasPrefix(rendered, open) || !strings.HasSuffix(rendered, "</script>") {
		t.Fatalf("rendered output is not a JSON-LD script block:\n%s", rendered)
	}
	return strings.TrimSuffix(strings.TrimPrefix(rendered, open), "</script>")
}

func TestThingSchemaRoundTrip(t *testing.T) {
	thing, err := NewThingSchema(ThingSchema{
		Name:        "My Thing",
		Description: "A thing that is mine",
		URL:         "https://example.com/mything",
	})
	if err != nil {
		t.Fatalf("NewThingSchema() error: %v", err)
	}

	payload := extractJSONLD(t, string(thing.Render()))

	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		t.Fatalf("rendered JSON-LD does not parse: %v\n%s", err, payload)
	}
	want := map[string]string{
		"@context":    "https://schema.org",
		"@type":       "Thing",
		"name":        "My Thing",
		"description": "A thing that is mine",
		"url":         "https://example.com/mything",
	}
	for key, value := range want {
		if doc[key] != value {
			t.Errorf("doc[%q] = %v, want %q", key, doc[key], value)
		}
	}

	// Field order in the emitted JSON follows the declared order.
	last := -1
	for _, key := range []string{`"name"`, `"description"`, `"url"`, `"@context"`, `"@type"`} {
		idx := strings.Index(payload, key)
		if idx < 0 {
			t.Fatalf("payload missing key %s:\n%s", key, payload)
		}
		if idx < last {
			t.Errorf("key %s out of order in:\n%s", key, payload)
		}
		last = idx
	}
}

func TestThingSchemaURLValidated(t *testing.T) {
	if _, err := NewThingSchema(ThingSchema{Name: "X", URL: "not-a-url"}); err == nil {
		t.Fatal("NewThingSchema() with invalid URL: want error, got nil")
	}
}

func TestForLabel(t *testing.T) {
	base := CreativeWorkSchema{
		ThingSchema: ThingSchema{Name: "N"},
		Headline:    "H",
	}

	tests := []struct {
		label string
		want  string
	}{
		{"Thing", "Thing"},
		{"CreativeWork", "CreativeWork"},
		{"Article", "Article"},
		{"WebPage", "WebPage"},
		{"MediaObject", "MediaObject"},
		{"Person", "Person"},
		// Unknown labels resolve to the base type rather than failing.
		{"Recipe", "Thing"},
		{"", "Thing"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := ForLabel(tt.label)(base)
			if got.Label() != tt.want {
				t.Errorf("ForLabel(%q).Label() = %q, want %q", tt.label, got.Label(), tt.want)
			}
		})
	}
}

func TestForLabelSeedsCommonFields(t *testing.T) {
	base := CreativeWorkSchema{
		ThingSchema:   ThingSchema{Name: "Piece", Description: "About a piece", URL: "https://example.com/piece"},
		Headline:      "A Piece",
		DatePublished: "2024-05-01",
	}

	schema := ForLabel("Article")(base)
	payload := extractJSONLD(t, string(schema.Render()))
	for _, want := range []string{`"headline": "A Piece"`, `"datePublished": "2024-05-01"`, `"@type": "Article"`} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %s:\n%s", want, payload)
		}
	}

	// Person descends from Thing: creative-work fields are dropped.
	person := ForLabel("Person")(base)
	payload = extractJSONLD(t, string(person.Render()))
	if strings.Contains(payload, "headline") {
		t.Errorf("Person schema must not carry creative-work fields:\n%s", payload)
	}
	if !strings.Contains(payload, `"name": "Piece"`) {
		t.Errorf("Person schema should keep Thing fields:\n%s", payload)
	}
}

func TestSchemaEscapesMarkup(t *testing.T) {
	work, err := NewCreativeWorkSchema(CreativeWorkSchema{
		ThingSchema: ThingSchema{
			Name:        "Tricky <script>alert(1)</script> Title",
			Description: "Plain & <b>bold</b> text",
		},
	})
	if err != nil {
		t.Fatalf("NewCreativeWorkSchema() error: %v", err)
	}

	payload := extractJSONLD(t, string(work.Render()))
	if strings.Contains(payload, "<script>") || strings.Contains(payload, "<b>") {
		t.Errorf("markup must be stripped from values:\n%s", payload)
	}
	if strings.Contains(payload, "</script>") {
		t.Errorf("payload would terminate the script element early:\n%s", payload)
	}
}

func TestSchemaNestedAuthor(t *testing.T) {
	article := &ArticleSchema{
		CreativeWorkSchema: CreativeWorkSchema{
			ThingSchema: ThingSchema{Name: "Story"},
			Author: &PersonSchema{
				ThingSchema: ThingSchema{Name: "Jane Q. Public"},
				GivenName:   "Jane",
			},
			Keywords: []string{"news", "local"},
		},
		ArticleSection: "Metro",
		WordCount:      640,
	}

	payload := extractJSONLD(t, string(article.Render()))
	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		t.Fatalf("rendered JSON-LD does not parse: %v\n%s", err, payload)
	}

	author, ok := doc["author"].(map[string]any)
	if !ok {
		t.Fatalf("author is not a nested object: %v", doc["author"])
	}
	if author["@type"] != "Person" || author["name"] != "Jane Q. Public" {
		t.Errorf("nested author = %v", author)
	}
	if doc["wordCount"] != float64(640) {
		t.Errorf("wordCount = %v, want 640", doc["wordCount"])
	}
	keywords, ok := doc["keywords"].([]any)
	if !ok || len(keywords) != 2 || keywords[0] != "news" {
		t.Errorf("keywords = %v", doc["keywords"])
	}
}

func TestSchemaOmitsZeroFields(t *testing.T) {
	page := &WebPageSchema{
		CreativeWorkSchema: CreativeWorkSchema{
			ThingSchema: ThingSchema{Name: "About"},
		},
	}
	payload := extractJSONLD(t, string(page.Render()))
	for _, reject := range []string{"breadcrumb", "headline", "description", "wordCount"} {
		if strings.Contains(payload, reject) {
			t.Errorf("payload must omit zero field %q:\n%s", reject, payload)
		}
	}
}

func TestSchemaRenderIdempotent(t *testing.T) {
	thing, err := NewThingSchema(ThingSchema{Name: "Same", URL: "https://example.com/same"})
	if err != nil {
		t.Fatalf("NewThingSchema() error: %v", err)
	}
	if first, second := thing.Render(), thing.Render(); first != second {
		t.Error("Render() not idempotent")
	}
}

func TestMediaObjectSchemaFields(t *testing.T) {
	media := &MediaObjectSchema{
		CreativeWorkSchema: CreativeWorkSchema{
			ThingSchema: ThingSchema{Name: "picture.jpg"},
		},
		ContentURL:     "https://example.com/media/picture.jpg",
		EncodingFormat: "image/jpeg",
		Width:          "1280",
		Height:         "720",
		UploadDate:     "2024-02-02",
	}
	payload := extractJSONLD(t, string(media.Render()))
	for _, want := range []string{
		`"contentUrl": "https://example.com/media/picture.jpg"`,
		`"encodingFormat": "image/jpeg"`,
		`"uploadDate": "2024-02-02"`,
		`"@type": "MediaObject"`,
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %s:\n%s", want, payload)
		}
	}
}
