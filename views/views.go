// Package views renders the portfolio pages. Every component receives the
// requester's capabilities explicitly through Page; nothing is read from
// the request context.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/richtext"
	"github.com/eringen/folio/viewmodel"
)

//go:embed templates/*.html
var templateFS embed.FS

// Site is the site-wide metadata shown in every page head.
type Site struct {
	Name        string
	URL         string
	Description string
}

// Page is the data handed to every component.
type Page struct {
	Site Site
	Meta content.PageMeta
	Caps content.Capabilities
	CSRF string
	// Snap is nil on error and login pages.
	Snap *viewmodel.Snapshot
	// JSONLD is a pre-encoded structured data block for the head.
	JSONLD string
	// Photo is the public URL of the profile photo, if one was uploaded.
	Photo string

	Form    *Form
	Confirm *Confirm
	Login   *Login
}

// Form is an open edit draft.
type Form struct {
	Draft  *viewmodel.Draft
	Error  string
	Fields []FormField
}

// Confirm asks the owner to confirm a delete.
type Confirm struct {
	Kind    content.Kind
	ID      int64
	Summary string
	Error   string
}

// Login is the state of the sign-in form.
type Login struct {
	Email   string
	Error   string
	Limited bool
}

var funcs = template.FuncMap{
	"str":       content.Str,
	"inline":    richtext.Inline,
	"paras":     richtext.Paragraphs,
	"safeURL":   safeURL,
	"jsonld":    func(s string) template.JS { return template.JS(s) },
	"interests": viewmodel.ParseInterests,
	"addURL":    func(k content.Kind) string { return "/edit/" + string(k) },
	"editURL":   editURL,
	"deleteURL": deleteURL,
	"item":      func(caps content.Capabilities, k content.Kind, id int64) itemRef { return itemRef{caps, k, id} },
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"home", "publications", "news", "edit", "confirm", "login", "error"} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
}

func render(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages[name].ExecuteTemplate(w, "layout", data)
	})
}

// Home is the landing page: about, research interests, education,
// experience, featured publications and recent news.
func Home(p Page) templ.Component { return render("home", p) }

// Publications lists every publication with abstract and BibTeX.
func Publications(p Page) templ.Component { return render("publications", p) }

// News lists every news item.
func News(p Page) templ.Component { return render("news", p) }

// EditForm renders the draft editor.
func EditForm(p Page) templ.Component { return render("edit", p) }

// ConfirmDelete asks before deleting a row.
func ConfirmDelete(p Page) templ.Component { return render("confirm", p) }

// LoginForm renders the owner sign-in form.
func LoginForm(p Page) templ.Component { return render("login", p) }

// NotFound renders the 404 page.
func NotFound(p Page) templ.Component {
	return render("error", errorPage{Page: p, Code: 404, Message: "Page not found."})
}

// ServerError renders the 500 page.
func ServerError(p Page) templ.Component {
	return render("error", errorPage{Page: p, Code: 500, Message: "Failed to fetch. Please try again later."})
}

// itemRef feeds the per-row edit and delete controls.
type itemRef struct {
	Caps content.Capabilities
	Kind content.Kind
	ID   int64
}

type errorPage struct {
	Page
	Code    int
	Message string
}

func editURL(k content.Kind, id int64) string {
	u := "/edit/" + string(k)
	if id != 0 {
		u += "?id=" + strconv.FormatInt(id, 10)
	}
	return u
}

func deleteURL(k content.Kind, id int64) string {
	return "/edit/" + string(k) + "/delete?id=" + strconv.FormatInt(id, 10)
}

// safeURL lets through only the link targets richtext accepts. The value is
// returned unescaped; html/template escapes it for the attribute.
func safeURL(s string) template.URL {
	if richtext.SafeURL(s) == "" {
		return ""
	}
	return template.URL(strings.TrimSpace(s))
}
