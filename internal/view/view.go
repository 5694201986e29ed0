// Package view renders the site's HTML. Layouts are html/template files
// embedded in the binary and exposed as templ components so handlers render
// every page the same way.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/a-h/templ"
	"github.com/msomdec/ocean-watch/internal/content"
	"github.com/msomdec/ocean-watch/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// Assets returns the static files served under /assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	AlertDanger  = "danger"
	AlertWarning = "warning"
)

// Alert is a message shown above the signup form.
type Alert struct {
	Kind    string
	Message string
}

// JoinForm is the state of the signup form: what the visitor typed and
// what went wrong with it.
type JoinForm struct {
	Values domain.SignupInput
	Alerts []Alert
}

type navLink struct {
	Path  string
	Title string
}

type pageData struct {
	Title   string
	Current string
	Nav     []navLink
	Page    content.Page
	Topics  []content.Page
	Data    *content.Datasets
	Form    JoinForm
	Name    string
	Members []domain.Member
}

// Views holds the parsed templates and the navigation built from the page
// catalog.
type Views struct {
	nav       []navLink
	topics    []content.Page
	datasets  *content.Datasets
	templates map[string]*template.Template
}

var pageFiles = []string{"page.html", "join.html", "join_success.html", "members.html", "not_found.html"}

// New parses every template and builds the navigation from catalog.
func New(catalog *content.Catalog) (*Views, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	v := &Views{
		topics:    catalog.Topics(),
		datasets:  catalog.Datasets(),
		templates: make(map[string]*template.Template, len(pageFiles)),
	}
	for _, p := range catalog.Pages() {
		if p.Slug == "home" {
			continue
		}
		v.nav = append(v.nav, navLink{Path: p.Path, Title: p.Title})
	}

	for _, name := range pageFiles {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.templates[name] = t
	}
	return v, nil
}

func (v *Views) render(name string, data pageData) templ.Component {
	data.Nav = v.nav
	return templ.FromGoHTML(v.templates[name], data)
}

// StaticPage renders a catalog page. The home page also lists the topics and
// the dashboard adds the indicator series and hotspots.
func (v *Views) StaticPage(p content.Page) templ.Component {
	data := pageData{Title: p.Title, Current: p.Path, Page: p}
	if p.Slug == "home" {
		data.Topics = v.topics
	}
	if p.Slug == "dashboard" {
		data.Data = v.datasets
	}
	return v.render("page.html", data)
}

// JoinPage renders the signup form.
func (v *Views) JoinPage(form JoinForm) templ.Component {
	return v.render("join.html", pageData{Title: "Join", Current: "/join", Form: form})
}

// JoinSuccessPage renders the thank-you page. name may be empty.
func (v *Views) JoinSuccessPage(name string) templ.Component {
	return v.render("join_success.html", pageData{Title: "Welcome", Current: "/join", Name: name})
}

// MembersPage renders the full member table.
func (v *Views) MembersPage(members []domain.Member) templ.Component {
	return v.render("members.html", pageData{Title: "Members", Current: "/members", Members: members})
}

// MemberRows renders only the table rows, for patching into #member-rows.
func (v *Views) MemberRows(members []domain.Member) templ.Component {
	return templ.FromGoHTML(v.templates["members.html"].Lookup("member-rows"), members)
}

// NotFoundPage renders the 404 page body.
func (v *Views) NotFoundPage() templ.Component {
	return v.render("not_found.html", pageData{Title: "Not found"})
}
