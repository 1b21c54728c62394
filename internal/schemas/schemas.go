// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package schemas provides the metadata object model for content pages:
// Open Graph objects (https://ogp.me) that serialize to ordered <meta>
// tags, and Schema.org Thing objects that serialize to a JSON-LD script
// block. All objects are transient value objects: construct one from a
// content record, render it into the page head, discard it.
//
// Validation happens at construction time. Rendering never fails and is
// idempotent on an unmodified value.
package schemas

import (
	"fmt"
	"html/template"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// ValidationError reports a field value rejected at construction time.
// The failure is deterministic for a given input; callers should skip
// emitting metadata for the record rather than retry.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q %s", e.Field, e.Value, e.Reason)
}

// ValidateHTTPURL checks that value is an absolute http(s) URL. It returns
// the input unchanged on success; it never normalizes.
func ValidateHTTPURL(value string) (string, error) {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &ValidationError{Field: "url", Value: value, Reason: "is not a valid URL"}
	}
	if !strings.HasPrefix(parsed.Scheme, "http") {
		return "", &ValidationError{Field: "url", Value: value, Reason: "must start with http or https"}
	}
	return value, nil
}

// validateField runs ValidateHTTPURL but attributes the error to the named
// field, so construction errors identify which URL was malformed.
func validateField(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := ValidateHTTPURL(value); err != nil {
		verr := err.(*ValidationError)
		return &ValidationError{Field: field, Value: verr.Value, Reason: verr.Reason}
	}
	return nil
}

// Timestamp is a date or datetime already normalized to its ISO-8601
// string form. Callers convert native times with ISODate or ISODateTime
// before constructing a metadata object.
type Timestamp string

// ISODate renders a date-only timestamp (2006-01-02).
func ISODate(t time.Time) Timestamp {
	return Timestamp(t.Format("2006-01-02"))
}

// ISODateTime renders a full timestamp in RFC 3339 form.
func ISODateTime(t time.Time) Timestamp {
	return Timestamp(t.Format(time.RFC3339))
}

// metatag is the line format for a single Open Graph meta tag.
const metatag = "<meta property=\"%s:%s\" content=\"%s\" />\n"

// metaTag formats one meta tag line with the content attribute escaped.
func metaTag(namespace, name string, content any) string {
	return fmt.Sprintf(metatag, namespace, name, template.HTMLEscapeString(fmt.Sprint(content)))
}

// isZero reports whether a field value should be omitted from output.
// Zero values stand in for "not supplied" across the whole object model.
func isZero(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case Timestamp:
		return x == ""
	case Status:
		return x == ""
	case Gender:
		return x == ""
	case int:
		return x == 0
	case []string:
		return len(x) == 0
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
			return rv.IsNil()
		}
		return false
	}
}
