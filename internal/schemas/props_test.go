// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package schemas

import (
	"strings"
	"testing"
)

func TestAudioPropRender(t *testing.T) {
	url := "https://example.com/audio.mp3"
	a, err := NewAudioProp(AudioProp{URL: url, SecureURL: url, Type: "audio/mp3"})
	if err != nil {
		t.Fatalf("NewAudioProp() error: %v", err)
	}

	out := a.Render()
	for _, want := range []string{
		`property="og:audio"`,
		"og:audio:secure_url",
		"og:audio:type",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
	for _, reject := range []string{"audio:url", "_prefix"} {
		if strings.Contains(out, reject) {
			t.Errorf("Render() must not contain %q in:\n%s", reject, out)
		}
	}
}

func TestStructuredPropertyBaseIsInert(t *testing.T) {
	p, err := NewStructuredProperty(StructuredProperty{
		URL:       "https://example.com/file",
		SecureURL: "https://example.com/file",
		Type:      "application/octet-stream",
	})
	if err != nil {
		t.Fatalf("NewStructuredProperty() error: %v", err)
	}
	if out := p.Render(); out != "" {
		t.Errorf("base property Render() = %q, want empty string", out)
	}
}

func TestSecureURLMustBeHTTPS(t *testing.T) {
	// The plain url check alone would accept this value; the https
	// invariant on secure_url is a separate, stricter rule.
	_, err := NewAudioProp(AudioProp{
		URL:       "http://example.com/audio.mp3",
		SecureURL: "http://example.com/audio.mp3",
	})
	if err == nil {
		t.Fatal("NewAudioProp() with http secure_url: want error, got nil")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Field != "secure_url" {
		t.Errorf("Field = %q, want %q", verr.Field, "secure_url")
	}
}

func TestPropURLValidation(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{"valid https", "https://example.com/v.mp4", true},
		{"valid http", "http://example.com/v.mp4", true},
		{"relative", "/media/v.mp4", false},
		{"no scheme", "example.com/v.mp4", false},
		{"wrong scheme", "rtsp://example.com/v.mp4", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVideoProp(VideoProp{URL: tt.url})
			if tt.ok && err != nil {
				t.Errorf("NewVideoProp(%q) error: %v", tt.url, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("NewVideoProp(%q) = nil error, want failure", tt.url)
			}
		})
	}
}

func TestImagePropRenderFieldOrder(t *testing.T) {
	img, err := NewImageProp(ImageProp{
		URL:    "https://example.com/image.jpg",
		Type:   "image/jpeg",
		Width:  1280,
		Height: 720,
		Alt:    "alt text here",
	})
	if err != nil {
		t.Fatalf("NewImageProp() error: %v", err)
	}

	out := img.Render()
	lines := []string{
		`<meta property="og:image" content="https://example.com/image.jpg" />`,
		`<meta property="og:image:type" content="image/jpeg" />`,
		`<meta property="og:image:width" content="1280" />`,
		`<meta property="og:image:height" content="720" />`,
		`<meta property="og:image:alt" content="alt text here" />`,
	}
	last := -1
	for _, line := range lines {
		idx := strings.Index(out, line)
		if idx < 0 {
			t.Fatalf("Render() missing line %q in:\n%s", line, out)
		}
		if idx < last {
			t.Errorf("line %q out of order in:\n%s", line, out)
		}
		last = idx
	}
}

func TestVideoPropOmitsZeroDimensions(t *testing.T) {
	v, err := NewVideoProp(VideoProp{URL: "https://example.com/v.mp4"})
	if err != nil {
		t.Fatalf("NewVideoProp() error: %v", err)
	}
	out := v.Render()
	if strings.Contains(out, "og:video:width") || strings.Contains(out, "og:video:height") {
		t.Errorf("Render() should omit unset dimensions:\n%s", out)
	}
}
