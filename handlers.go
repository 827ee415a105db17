package folio

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/logger"
	"github.com/eringen/folio/viewmodel"
	"github.com/eringen/folio/views"
)

func (a *App) handleHome(c echo.Context) error {
	snap, err := a.load(c)
	if err != nil {
		return err
	}
	return Render(c, views.Home(a.homePage(c, snap)))
}

func (a *App) homePage(c echo.Context, snap *viewmodel.Snapshot) views.Page {
	page := a.snapshotPage(c, snap, "")
	page.JSONLD = PersonJsonLD(snap.Profile, snap.ResearchInterests(), a.Config)
	return page
}

func (a *App) handlePublications(c echo.Context) error {
	snap, err := a.load(c)
	if err != nil {
		return err
	}
	return Render(c, views.Publications(a.snapshotPage(c, snap, "Publications", "publications")))
}

func (a *App) handleNews(c echo.Context) error {
	snap, err := a.load(c)
	if err != nil {
		return err
	}
	return Render(c, views.News(a.snapshotPage(c, snap, "News", "news")))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFeed(c echo.Context) error {
	news, err := a.Services.ListNews(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, news)
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nDisallow: /edit/\nDisallow: /login\nDisallow: /api/\n\nSitemap: %s\n",
		BuildURL(a.Config.URL, "sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if isAPI(c) {
		if he, ok := err.(*echo.HTTPError); ok && he.Code < 500 {
			_ = c.JSON(he.Code, apiError{Error: http.StatusText(he.Code)})
			return
		}
		_ = a.apiFail(c, err)
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.errorPage(c, "Not found")))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error", logger.String("path", c.Request().URL.Path), logger.Error(err))
		_ = RenderStatus(c, code, views.ServerError(a.errorPage(c, "Error")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func (a *App) errorPage(c echo.Context, title string) views.Page {
	return a.basePage(c, content.PageMeta{Title: title + " | " + a.Config.Name})
}
