package folio

import (
	"encoding/xml"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/richtext"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Category    string  `xml:"category,omitempty"`
	PubDate     string  `xml:"pubDate,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// newsDateLayouts are the free-text date forms accepted for pubDate. Items
// whose date matches none of them are published without one.
var newsDateLayouts = []string{"2006-01-02", "Jan 2006", "January 2006", "Jan 2, 2006", "January 2, 2006", "2006"}

func newsPubDate(s string) string {
	for _, layout := range newsDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.RFC1123Z)
		}
	}
	return ""
}

func (a *App) renderRSS(c echo.Context, news []content.NewsItem) error {
	base := a.Config.URL
	link := BuildURL(base, "news")
	items := make([]rssItem, 0, len(news))
	for _, n := range news {
		items = append(items, rssItem{
			Title:       n.Date,
			Link:        link,
			Description: string(richtext.Inline(n.Content)),
			Category:    string(n.Category),
			PubDate:     newsPubDate(n.Date),
			GUID:        rssGUID{Value: link + "#news-" + strconv.FormatInt(n.ID, 10)},
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name + " news",
			Link:        BuildURL(base),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
