// Package content loads the site's static pages. Page metadata lives in
// pages.yaml and each page body is a markdown file rendered to HTML once
// at load time.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed pages.yaml datasets.yaml pages/*.md
var files embed.FS

// Page is a static informational page.
type Page struct {
	Slug    string `yaml:"slug"`
	Path    string `yaml:"path"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Legacy  string `yaml:"legacy"`
	Source  string `yaml:"body"`
	Topic   bool   `yaml:"topic"`

	Body template.HTML `yaml:"-"`
}

type catalogFile struct {
	Pages  []Page            `yaml:"pages"`
	Legacy map[string]string `yaml:"legacy"`
}

// Catalog is the immutable set of static pages plus the legacy filename
// whitelist. It is safe for concurrent use.
type Catalog struct {
	pages    []Page
	datasets *Datasets
	bySlug   map[string]int
	legacy   map[string]string
}

// Load parses the embedded catalog and renders every page body.
func Load() (*Catalog, error) {
	raw, err := files.ReadFile("pages.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	datasets, err := loadDatasets()
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	c := &Catalog{
		pages:    cf.Pages,
		datasets: datasets,
		bySlug:   make(map[string]int, len(cf.Pages)),
		legacy:   make(map[string]string, len(cf.Pages)+len(cf.Legacy)),
	}
	for i := range c.pages {
		p := &c.pages[i]
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate page slug %q", p.Slug)
		}
		c.bySlug[p.Slug] = i

		src, err := files.ReadFile(path.Join("pages", p.Source))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", p.Slug, err)
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("render page %s: %w", p.Slug, err)
		}
		// Bodies are trusted content compiled into the binary.
		p.Body = template.HTML(buf.String())

		if p.Legacy != "" {
			c.legacy[p.Legacy] = p.Path
		}
	}
	for name, target := range cf.Legacy {
		if _, dup := c.legacy[name]; dup {
			return nil, fmt.Errorf("duplicate legacy name %q", name)
		}
		c.legacy[name] = target
	}

	return c, nil
}

// Pages returns all pages in navigation order.
func (c *Catalog) Pages() []Page {
	return c.pages
}

// Datasets returns the dashboard indicator series.
func (c *Catalog) Datasets() *Datasets {
	return c.datasets
}

// Topics returns the pages flagged as topics.
func (c *Catalog) Topics() []Page {
	var topics []Page
	for _, p := range c.pages {
		if p.Topic {
			topics = append(topics, p)
		}
	}
	return topics
}

// Page looks a page up by slug.
func (c *Catalog) Page(slug string) (Page, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Page{}, false
	}
	return c.pages[i], true
}

// ResolveLegacy maps a historical filename such as "about.html" to the
// current path of the page it used to serve.
func (c *Catalog) ResolveLegacy(name string) (string, bool) {
	target, ok := c.legacy[name]
	return target, ok
}

// LegacyCount returns the number of whitelisted legacy filenames.
func (c *Catalog) LegacyCount() int {
	return len(c.legacy)
}
