package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/viewmodel"
	"github.com/eringen/folio/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// basePage fills the fields every page shares.
func (a *App) basePage(c echo.Context, meta content.PageMeta) views.Page {
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	return views.Page{
		Site: views.Site{
			Name:        a.Config.Name,
			URL:         a.Config.URL,
			Description: a.Config.Description,
		},
		Meta:  meta,
		Caps:  Capabilities(c),
		CSRF:  CsrfToken(c),
		Photo: a.photo(),
	}
}

// snapshotPage builds a page around a loaded snapshot. The title and
// description default to the owner's name and title.
func (a *App) snapshotPage(c echo.Context, snap *viewmodel.Snapshot, title string, segments ...string) views.Page {
	meta := content.PageMeta{
		Title: a.Config.Name,
		URL:   BuildURL(a.Config.URL, segments...),
	}
	if p := snap.Profile; p != nil {
		meta.Title = p.Name
		meta.Description = p.Name + ", " + p.Title
		meta.OGType = "profile"
	}
	if title != "" {
		meta.Title = title + " | " + meta.Title
	}
	page := a.basePage(c, meta)
	page.Snap = snap
	return page
}

// load reads the aggregate snapshot for the requester of c.
func (a *App) load(c echo.Context) (*viewmodel.Snapshot, error) {
	return viewmodel.Load(c.Request().Context(), a.Services, Capabilities(c))
}
