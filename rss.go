package folio

import (
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	Copyright     string    `xml:"copyright,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// WriteRSS encodes docs as an RSS 2.0 feed.
func WriteRSS(w io.Writer, site SiteConfig, startYear int, docs []Document, now time.Time) error {
	base := site.URL
	items := make([]rssItem, 0, len(docs))
	for _, d := range docs {
		docURL := DocumentURL(base, d)
		items = append(items, rssItem{
			Title:       d.Title,
			Link:        docURL,
			Description: d.Description,
			PubDate:     d.PublishedOn.Format(time.RFC1123Z),
			GUID:        docURL,
			Categories:  d.Tags,
		})
	}

	holder := site.Author
	if holder == "" {
		holder = site.Name
	}
	years := strconv.Itoa(now.Year())
	if startYear > 0 && startYear < now.Year() {
		years = strconv.Itoa(startYear) + " - " + years
	}

	feed := rssXML{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         site.Name,
			Link:          BuildURL(base),
			Description:   site.Description,
			Language:      site.Language,
			Copyright:     "© " + years + " " + holder,
			LastBuildDate: now.Format(time.RFC1123Z),
			AtomLink: atomLink{
				Href: strings.TrimSuffix(base, "/") + "/rss.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}

func (a *App) renderRSS(c echo.Context, docs []Document) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteRSS(c.Response(), a.Config.Site, a.Config.StartYear, docs, a.now())
}
