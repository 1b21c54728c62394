// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

// Package render executes the site templates. Every page is the base
// layout with header, content and footer blocks chosen at render time,
// so a site can swap presentation through its site vars without new
// templates.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/veselosky/commoncontent/internal/model"
	"github.com/veselosky/commoncontent/internal/schemas"
	"github.com/veselosky/commoncontent/internal/util"
)

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	// Root is the subdirectory of TemplatesFS holding the templates.
	// Defaults to "templates"; use "." when the FS root is the
	// template directory itself.
	Root  string
	IsDev bool // reparse templates on every render
}

// Renderer parses and executes templates. Template names are paths
// relative to the templates directory, e.g. "blocks/header_simple.html".
type Renderer struct {
	fsys      fs.FS
	root      string
	isDev     bool
	templates *template.Template
}

// New creates a Renderer with all templates parsed.
func New(cfg Config) (*Renderer, error) {
	if cfg.Root == "" {
		cfg.Root = "templates"
	}
	r := &Renderer{fsys: cfg.TemplatesFS, root: cfg.Root, isDev: cfg.IsDev}
	tmpl, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.templates = tmpl
	return r, nil
}

func (r *Renderer) parse() (*template.Template, error) {
	root := template.New("").Funcs(r.templateFuncs())
	err := fs.WalkDir(r.fsys, r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		content, err := fs.ReadFile(r.fsys, path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}
		name := path
		if r.root != "." {
			name = strings.TrimPrefix(path, r.root+"/")
		}
		if _, err := root.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"truncate": func(s string, length int) string {
			return util.TruncateText(s, length)
		},
		"safe": func(s string) template.HTML {
			return template.HTML(s)
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"include": func(name string, data any) (template.HTML, error) {
			if name == "" {
				return "", nil
			}
			buf := new(bytes.Buffer)
			if err := r.templates.ExecuteTemplate(buf, name, data); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	}
}

// Render executes the named template and writes the result. The output
// is buffered so a template error never produces a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, name string, data *Context) error {
	if r.isDev {
		tmpl, err := r.parse()
		if err != nil {
			return err
		}
		r.templates = tmpl
	}

	tmpl := r.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template %s not found", name)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
	return nil
}

// Paginator carries page navigation state for list templates.
type Paginator struct {
	Number  int
	Pages   int
	PrevURL string
	NextURL string
}

// Context is the data passed to templates.
type Context struct {
	Site    *model.Site
	Lang    string
	Brand   string
	Tagline string
	Nav     []model.NavItem

	Title       string
	Description string
	Canonical   string
	FeedURL     string
	OpenGraph   template.HTML
	SchemaLD    template.HTML

	HeaderTemplate  string
	FooterTemplate  string
	ContentTemplate string

	Content    any
	SeriesPart string
	Articles   []*model.Article
	Authors    []model.Author
	Paginator  *Paginator

	Copyright string
}

// NewContext builds a Context with the site-wide fields resolved from
// site vars.
func NewContext(site *model.Site, vars model.Vars) *Context {
	return &Context{
		Site:           site,
		Lang:           langCode(model.DefaultLocale),
		Brand:          vars.Get(model.VarBrand, site.Name),
		Tagline:        vars.Get(model.VarTagline, ""),
		HeaderTemplate: vars.Get(model.VarHeaderTemplate, model.Defaults[model.VarHeaderTemplate]),
		FooterTemplate: vars.Get(model.VarFooterTemplate, model.Defaults[model.VarFooterTemplate]),
	}
}

// UseDetail selects the content block for a detail page. An override on
// the object wins over the site var.
func (c *Context) UseDetail(vars model.Vars, override string) {
	c.ContentTemplate = vars.Get(model.VarContentTemplate, model.Defaults[model.VarContentTemplate])
	if override != "" {
		c.ContentTemplate = override
	}
}

// UseList selects the content block for a list page.
func (c *Context) UseList(vars model.Vars, override string) {
	c.ContentTemplate = vars.Get(model.VarListTemplate, model.Defaults[model.VarListTemplate])
	if override != "" {
		c.ContentTemplate = override
	}
}

// SetLocale sets the document language from a locale code like en_US.
func (c *Context) SetLocale(locale string) {
	if locale != "" {
		c.Lang = langCode(locale)
	}
}

// SetOpenGraph attaches rendered Open Graph meta tags to the head.
func (c *Context) SetOpenGraph(og interface{ Render() string }) {
	c.OpenGraph = template.HTML(og.Render())
}

// SetSchema attaches a JSON-LD script element to the head. Render
// already produces the complete script element, so it is embedded as is.
func (c *Context) SetSchema(s schemas.Schema) {
	c.SchemaLD = template.HTML(s.Render())
}

// ArticleRefs adapts a service result slice for template use, where
// pointer receivers require addressable articles.
func ArticleRefs(articles []model.Article) []*model.Article {
	refs := make([]*model.Article, len(articles))
	for i := range articles {
		refs[i] = &articles[i]
	}
	return refs
}

func langCode(locale string) string {
	return strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
}
