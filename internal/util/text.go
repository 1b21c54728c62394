// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package util

import "strings"

// StripHTML removes HTML tags from a string and collapses whitespace.
func StripHTML(html string) string {
	var result strings.Builder
	inTag := false
	for _, r := range html {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			result.WriteRune(' ')
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

// TruncateText truncates text to maxLen characters at a word boundary,
// appending an ellipsis when text was cut.
func TruncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	truncated := text[:maxLen]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}

// TruncateWords returns at most max words of text, appending an ellipsis
// when words were dropped.
func TruncateWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[:max], " ") + "..."
}

// WordCount counts the words in a string, ignoring markup.
func WordCount(text string) int {
	return len(strings.Fields(StripHTML(text)))
}

// MakeAbsoluteURL ensures a URL is absolute by prepending the site URL
// when needed.
func MakeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
