// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package schemas

import "strings"

// field is one (name, value) pair in a type's serialization order. The
// order of these lists is a contract, not an artifact of declaration
// order, so each type spells its list out explicitly.
type field struct {
	name  string
	value any
}

// renderStructured emits the meta tags for a structured property: the
// bare og:{prefix} tag carrying the URL, then one og:{prefix}:{name} tag
// per non-zero extra field, in list order. A property with no prefix is
// inert and renders to the empty string.
func renderStructured(prefix, url string, extras []field) string {
	if prefix == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(metaTag("og", prefix, url))
	for _, f := range extras {
		if isZero(f.value) {
			continue
		}
		b.WriteString(metaTag("og:"+prefix, f.name, f.value))
	}
	return b.String()
}

// validateProp checks the url and secure_url invariants shared by all
// structured properties. secure_url must use the https scheme exactly;
// this is a second invariant on top of the general URL check.
func validateProp(url, secureURL string) error {
	if err := validateField("url", url); err != nil {
		return err
	}
	if secureURL != "" {
		if err := validateField("secure_url", secureURL); err != nil {
			return err
		}
		if !strings.HasPrefix(secureURL, "https:") {
			return &ValidationError{Field: "secure_url", Value: secureURL, Reason: "must use the https scheme"}
		}
	}
	return nil
}

// StructuredProperty is the prefix-less base of the Open Graph structured
// properties (audio, video, image). It carries the shared fields but has
// no namespace of its own, so it renders to nothing.
type StructuredProperty struct {
	Type      string
	URL       string
	SecureURL string
}

// NewStructuredProperty validates the base property. It is mostly useful
// to subtypes and tests; the base type never produces output.
func NewStructuredProperty(p StructuredProperty) (*StructuredProperty, error) {
	if err := validateProp(p.URL, p.SecureURL); err != nil {
		return nil, err
	}
	return &p, nil
}

// Render returns the empty string: the base type has no prefix.
func (p *StructuredProperty) Render() string {
	return renderStructured("", p.URL, nil)
}

// AudioProp is the og:audio structured property.
type AudioProp struct {
	Type      string
	URL       string
	SecureURL string
}

// NewAudioProp validates and returns an audio property.
func NewAudioProp(p AudioProp) (*AudioProp, error) {
	if err := validateProp(p.URL, p.SecureURL); err != nil {
		return nil, err
	}
	return &p, nil
}

// Render emits the og:audio tag group.
func (p *AudioProp) Render() string {
	return renderStructured("audio", p.URL, []field{
		{"type", p.Type},
		{"secure_url", p.SecureURL},
	})
}

// VideoProp is the og:video structured property. Width and Height are
// pixel dimensions; zero means unspecified.
type VideoProp struct {
	Type      string
	URL       string
	SecureURL string
	Width     int
	Height    int
}

// NewVideoProp validates and returns a video property.
func NewVideoProp(p VideoProp) (*VideoProp, error) {
	if err := validateProp(p.URL, p.SecureURL); err != nil {
		return nil, err
	}
	return &p, nil
}

// Render emits the og:video tag group.
func (p *VideoProp) Render() string {
	return renderStructured("video", p.URL, []field{
		{"type", p.Type},
		{"secure_url", p.SecureURL},
		{"width", p.Width},
		{"height", p.Height},
	})
}

// ImageProp is the og:image structured property. It carries the video
// dimensions plus alt text for accessibility.
type ImageProp struct {
	Type      string
	URL       string
	SecureURL string
	Width     int
	Height    int
	Alt       string
}

// NewImageProp validates and returns an image property.
func NewImageProp(p ImageProp) (*ImageProp, error) {
	if err := validateProp(p.URL, p.SecureURL); err != nil {
		return nil, err
	}
	return &p, nil
}

// Render emits the og:image tag group.
func (p *ImageProp) Render() string {
	return renderStructured("image", p.URL, []field{
		{"type", p.Type},
		{"secure_url", p.SecureURL},
		{"width", p.Width},
		{"height", p.Height},
		{"alt", p.Alt},
	})
}
