package folio

import (
	"encoding/xml"
	"io"
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

// WriteSitemap lists the home page, every collection index and every
// document.
func WriteSitemap(w io.Writer, base string, collections []CollectionConfig, docs []Document) error {
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	for _, col := range collections {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, col.Name)})
	}
	for _, d := range SortByPublishedDescending(docs) {
		mod := d.PublishedOn
		if d.UpdatedOn != nil {
			mod = *d.UpdatedOn
		}
		urls = append(urls, sitemapURL{
			Loc:     DocumentURL(base, d),
			LastMod: mod.Format("2006-01-02"),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}

func (a *App) renderSitemap(c echo.Context, docs []Document) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), a.Config.Site.URL, a.Config.Collections, docs)
}
