// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package markdown converts markdown documents with optional YAML front
// matter into article content. The front matter keys follow the common
// static site generator conventions, so Hugo exports import cleanly.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Document is a parsed markdown file.
type Document struct {
	Title       string
	Description string
	Draft       bool
	Tags        []string
	Published   time.Time
	Modified    time.Time
	Expires     time.Time
	HTML        string
}

// frontMatter captures YAML between leading triple-dash lines, and the
// content after it.
var frontMatter = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---\s*\n(.*)`)

// Date key aliases across static site generators.
var (
	dateKeys    = []string{"date", "publishDate", "published", "publishedAt"}
	modKeys     = []string{"lastmod", "lastModified", "updated", "updatedAt"}
	expiresKeys = []string{"expiryDate", "expires", "expiresAt"}
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse converts a markdown file into a Document. When the front matter
// has no title, the first heading in the content supplies one and is
// removed from the rendered body.
func Parse(src []byte) (*Document, error) {
	doc := &Document{}
	body := src

	if m := frontMatter.FindSubmatch(src); m != nil {
		meta := map[string]any{}
		if err := yaml.Unmarshal(m[1], &meta); err != nil {
			return nil, fmt.Errorf("parsing front matter: %w", err)
		}
		// Hugo nests custom fields under params.
		if params, ok := meta["params"].(map[string]any); ok {
			delete(meta, "params")
			for k, v := range params {
				meta[k] = v
			}
		}

		doc.Title, _ = meta["title"].(string)
		doc.Description, _ = meta["description"].(string)
		doc.Draft, _ = meta["draft"].(bool)
		doc.Tags = stringList(meta["tags"])
		doc.Published = firstDate(meta, dateKeys)
		doc.Modified = firstDate(meta, modKeys)
		doc.Expires = firstDate(meta, expiresKeys)
		body = m[2]
	}

	md := goldmark.New()
	tree := md.Parser().Parse(text.NewReader(body))

	if doc.Title == "" {
		if heading := firstHeading(tree); heading != nil {
			doc.Title = string(heading.Text(body))
			tree.RemoveChild(tree, heading)
		}
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, tree); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	doc.HTML = buf.String()
	return doc, nil
}

func firstHeading(tree ast.Node) ast.Node {
	for child := tree.FirstChild(); child != nil; child = child.NextSibling() {
		if _, ok := child.(*ast.Heading); ok {
			return child
		}
	}
	return nil
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// firstDate returns the value of the first present key, accepting either
// a YAML-native timestamp or a date string.
func firstDate(meta map[string]any, keys []string) time.Time {
	for _, key := range keys {
		v, ok := meta[key]
		if !ok {
			continue
		}
		switch x := v.(type) {
		case time.Time:
			return x
		case string:
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, x); err == nil {
					return t
				}
			}
		}
	}
	return time.Time{}
}
