// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package schemas

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Schema is implemented by every Schema.org object in this package. A
// schema renders to a JSON-LD script block suitable for embedding in a
// document head.
type Schema interface {
	// Label is the Schema.org type name ("Thing", "Article", ...).
	Label() string
	// Render produces the <script type="application/ld+json"> block.
	Render() template.HTML
	// fields yields the object's values in serialization order.
	fields() []field
}

// Factory builds a schema of a registered type, seeded with the common
// creative-work fields. Types that descend only from Thing take the Thing
// subset and ignore the rest.
type Factory func(base CreativeWorkSchema) Schema

// Schema.org type labels registered by this package.
const (
	LabelThing        = "Thing"
	LabelCreativeWork = "CreativeWork"
	LabelArticle      = "Article"
	LabelWebPage      = "WebPage"
	LabelMediaObject  = "MediaObject"
	LabelPerson       = "Person"
)

// registry maps a type label to its factory. It is populated once during
// package init and read-only afterwards, so concurrent lookups need no
// locking.
var registry map[string]Factory

func init() {
	registry = map[string]Factory{
		LabelThing: func(base CreativeWorkSchema) Schema {
			t := base.ThingSchema
			return &t
		},
		LabelCreativeWork: func(base CreativeWorkSchema) Schema {
			return &base
		},
		LabelArticle: func(base CreativeWorkSchema) Schema {
			return &ArticleSchema{CreativeWorkSchema: base}
		},
		LabelWebPage: func(base CreativeWorkSchema) Schema {
			return &WebPageSchema{CreativeWorkSchema: base}
		},
		LabelMediaObject: func(base CreativeWorkSchema) Schema {
			return &MediaObjectSchema{CreativeWorkSchema: base}
		},
		LabelPerson: func(base CreativeWorkSchema) Schema {
			return &PersonSchema{ThingSchema: base.ThingSchema}
		},
	}
}

// ForLabel returns the factory registered for label. Content records
// store the label as a plain string; an unknown label resolves to the
// base Thing factory rather than failing.
func ForLabel(label string) Factory {
	if f, ok := registry[label]; ok {
		return f
	}
	return registry[LabelThing]
}

// Labels returns the registered type labels.
func Labels() []string {
	labels := make([]string, 0, len(registry))
	for label := range registry {
		labels = append(labels, label)
	}
	return labels
}

// stripPolicy removes all markup from string values before they are
// escaped into JSON-LD.
var stripPolicy = bluemonday.StrictPolicy()

// sanitize strips embedded markup and HTML-escapes the remainder.
func sanitize(s string) string {
	return stripPolicy.Sanitize(s)
}

// renderSchema wraps the object's JSON-LD in the script element embedded
// verbatim in the page head.
func renderSchema(s Schema) template.HTML {
	var b strings.Builder
	b.WriteString(`<script id="schema-data" type="application/ld+json">`)
	writeJSONLD(&b, s)
	b.WriteString(`</script>`)
	return template.HTML(b.String())
}

// writeJSONLD emits the schema as a JSON object: the non-zero fields in
// serialization order, then @context and @type. Nested schemas recurse.
// String values are sanitized; json.Marshal additionally escapes <, > and
// & so the output is safe inside a script element.
func writeJSONLD(b *strings.Builder, s Schema) {
	b.WriteByte('{')
	for _, f := range s.fields() {
		if isZero(f.value) {
			continue
		}
		writeKey(b, f.name)
		writeValue(b, f.value)
	}
	writeKey(b, "@context")
	writeString(b, "https://schema.org")
	writeKey(b, "@type")
	writeString(b, s.Label())
	b.WriteByte('}')
}

func writeKey(b *strings.Builder, name string) {
	if b.Len() > 1 && !strings.HasSuffix(b.String(), "{") {
		b.WriteString(", ")
	}
	writeString(b, name)
	b.WriteString(": ")
}

func writeString(b *strings.Builder, s string) {
	encoded, _ := json.Marshal(s)
	b.Write(encoded)
}

func writeValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case Schema:
		writeJSONLD(b, x)
	case string:
		writeString(b, sanitize(x))
	case Timestamp:
		writeString(b, string(x))
	case Status:
		writeString(b, string(x))
	case []string:
		b.WriteByte('[')
		for i, entry := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			writeString(b, sanitize(entry))
		}
		b.WriteByte(']')
	default:
		encoded, _ := json.Marshal(x)
		b.Write(encoded)
	}
}

// ThingSchema is the Schema.org base object. Image may hold a bare URL
// string or a nested Schema describing the image.
type ThingSchema struct {
	Name        string
	Description string
	URL         string
	Image       any
}

// NewThingSchema validates the URL field if present.
func NewThingSchema(t ThingSchema) (*ThingSchema, error) {
	if err := validateField("url", t.URL); err != nil {
		return nil, err
	}
	return &t, nil
}

// Label implements Schema.
func (t *ThingSchema) Label() string { return LabelThing }

// Render implements Schema.
func (t *ThingSchema) Render() template.HTML { return renderSchema(t) }

func (t *ThingSchema) fields() []field {
	return []field{
		{"name", t.Name},
		{"description", t.Description},
		{"url", t.URL},
		{"image", t.Image},
	}
}

// CreativeWorkSchema is the Schema.org CreativeWork object, the common
// ancestor of all content types. Author may hold a display string or a
// nested PersonSchema.
type CreativeWorkSchema struct {
	ThingSchema
	Abstract           string
	Author             any
	CopyrightHolder    string
	CopyrightNotice    string
	CopyrightYear      string
	CreativeWorkStatus Status
	DateCreated        Timestamp
	DatePublished      Timestamp
	DateModified       Timestamp
	Expires            Timestamp
	Headline           string
	Keywords           []string
}

// NewCreativeWorkSchema validates the URL field if present.
func NewCreativeWorkSchema(cw CreativeWorkSchema) (*CreativeWorkSchema, error) {
	if err := validateField("url", cw.URL); err != nil {
		return nil, err
	}
	return &cw, nil
}

// Label implements Schema.
func (cw *CreativeWorkSchema) Label() string { return LabelCreativeWork }

// Render implements Schema.
func (cw *CreativeWorkSchema) Render() template.HTML { return renderSchema(cw) }

func (cw *CreativeWorkSchema) fields() []field {
	return append(cw.ThingSchema.fields(),
		field{"abstract", cw.Abstract},
		field{"author", cw.Author},
		field{"copyrightHolder", cw.CopyrightHolder},
		field{"copyrightNotice", cw.CopyrightNotice},
		field{"copyrightYear", cw.CopyrightYear},
		field{"creativeWorkStatus", cw.CreativeWorkStatus},
		field{"dateCreated", cw.DateCreated},
		field{"datePublished", cw.DatePublished},
		field{"dateModified", cw.DateModified},
		field{"expires", cw.Expires},
		field{"headline", cw.Headline},
		field{"keywords", cw.Keywords},
	)
}

// ArticleSchema is the Schema.org Article object.
type ArticleSchema struct {
	CreativeWorkSchema
	ArticleBody    string
	ArticleSection string
	WordCount      int
}

// Label implements Schema.
func (a *ArticleSchema) Label() string { return LabelArticle }

// Render implements Schema.
func (a *ArticleSchema) Render() template.HTML { return renderSchema(a) }

func (a *ArticleSchema) fields() []field {
	return append(a.CreativeWorkSchema.fields(),
		field{"articleBody", a.ArticleBody},
		field{"articleSection", a.ArticleSection},
		field{"wordCount", a.WordCount},
	)
}

// WebPageSchema is the Schema.org WebPage object.
type WebPageSchema struct {
	CreativeWorkSchema
	Breadcrumb         string
	LastReviewed       Timestamp
	MainContentOfPage  string
	PrimaryImageOfPage string
	RelatedLink        string
	ReviewedBy         string
	SignificantLink    string
	SignificantLinks   string
}

// Label implements Schema.
func (w *WebPageSchema) Label() string { return LabelWebPage }

// Render implements Schema.
func (w *WebPageSchema) Render() template.HTML { return renderSchema(w) }

func (w *WebPageSchema) fields() []field {
	return append(w.CreativeWorkSchema.fields(),
		field{"breadcrumb", w.Breadcrumb},
		field{"lastReviewed", w.LastReviewed},
		field{"mainContentOfPage", w.MainContentOfPage},
		field{"primaryImageOfPage", w.PrimaryImageOfPage},
		field{"relatedLink", w.RelatedLink},
		field{"reviewedBy", w.ReviewedBy},
		field{"significantLink", w.SignificantLink},
		field{"significantLinks", w.SignificantLinks},
	)
}

// MediaObjectSchema is the Schema.org MediaObject object.
type MediaObjectSchema struct {
	CreativeWorkSchema
	ContentURL           string
	EmbedURL             string
	EncodingFormat       string
	FileSize             string
	Height               string
	PlayerType           string
	ProductionCompany    string
	RegionsAllowed       string
	RequiresSubscription string
	UploadDate           Timestamp
	Width                string
}

// Label implements Schema.
func (m *MediaObjectSchema) Label() string { return LabelMediaObject }

// Render implements Schema.
func (m *MediaObjectSchema) Render() template.HTML { return renderSchema(m) }

func (m *MediaObjectSchema) fields() []field {
	return append(m.CreativeWorkSchema.fields(),
		field{"contentUrl", m.ContentURL},
		field{"embedUrl", m.EmbedURL},
		field{"encodingFormat", m.EncodingFormat},
		field{"fileSize", m.FileSize},
		field{"height", m.Height},
		field{"playerType", m.PlayerType},
		field{"productionCompany", m.ProductionCompany},
		field{"regionsAllowed", m.RegionsAllowed},
		field{"requiresSubscription", m.RequiresSubscription},
		field{"uploadDate", m.UploadDate},
		field{"width", m.Width},
	)
}

// PersonSchema is the Schema.org Person object. It descends from Thing,
// not CreativeWork.
type PersonSchema struct {
	ThingSchema
	AdditionalName string
	Address        string
	BirthDate      Timestamp
	BirthPlace     string
	Brand          string
	ContactPoint   string
	DeathDate      Timestamp
	DeathPlace     string
	Email          string
	FamilyName     string
	GivenName      string
	Nationality    string
}

// Label implements Schema.
func (p *PersonSchema) Label() string { return LabelPerson }

// Render implements Schema.
func (p *PersonSchema) Render() template.HTML { return renderSchema(p) }

func (p *PersonSchema) fields() []field {
	return append(p.ThingSchema.fields(),
		field{"additionalName", p.AdditionalName},
		field{"address", p.Address},
		field{"birthDate", p.BirthDate},
		field{"birthPlace", p.BirthPlace},
		field{"brand", p.Brand},
		field{"contactPoint", p.ContactPoint},
		field{"deathDate", p.DeathDate},
		field{"deathPlace", p.DeathPlace},
		field{"email", p.Email},
		field{"familyName", p.FamilyName},
		field{"givenName", p.GivenName},
		field{"nationality", p.Nationality},
	)
}
