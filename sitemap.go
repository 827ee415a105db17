package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the public pages. lastmod follows the profile's last
// update, the only timestamp the portfolio keeps.
func (a *App) renderSitemap(c echo.Context) error {
	p, err := a.Services.GetProfile(c.Request().Context())
	if err != nil {
		return err
	}
	lastMod := ""
	if p != nil && !p.UpdatedAt.IsZero() {
		lastMod = p.UpdatedAt.UTC().Format("2006-01-02")
	}
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base), LastMod: lastMod},
		{Loc: BuildURL(base, "publications"), LastMod: lastMod},
		{Loc: BuildURL(base, "news"), LastMod: lastMod},
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
