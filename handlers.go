package folio

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/views"
)

const (
	recentLimit  = 3
	relatedLimit = 3
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

// collection returns the current Collection. A failed rebuild with an older
// collection available is logged and the older one is served.
func (a *App) collection(c echo.Context) (*Collection, error) {
	coll, err := a.Cache.Get(c.Request().Context())
	if err != nil {
		if coll == nil {
			return nil, err
		}
		c.Logger().Errorf("rebuild failed, serving previous collection: %v", err)
	}
	return coll, nil
}

func (a *App) collectionConfig(name string) (CollectionConfig, bool) {
	for _, col := range a.Config.Collections {
		if col.Name == name {
			return col, true
		}
	}
	return CollectionConfig{}, false
}

// primaryCollection feeds the home page and the RSS feed.
func (a *App) primaryCollection() string {
	return a.Config.Collections[0].Name
}

func (a *App) handleHome(c echo.Context) error {
	coll, err := a.collection(c)
	if err != nil {
		return err
	}
	recent := SortByPublishedDescending(coll.OfType(a.primaryCollection()))
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	var quote *views.Quote
	if q, err := a.Quotes.Today(a.now()); err != nil {
		c.Logger().Warnf("quote of the day: %v", err)
	} else {
		quote = &views.Quote{Author: q.Author, Text: q.Text}
	}

	site := a.Config.Site
	meta := views.Meta{
		Title:       site.Name,
		Description: site.Description,
		URL:         BuildURL(site.URL),
		JSONLD:      WebsiteJsonLD(site),
	}
	return Render(c, views.Layout(a.site(), meta, views.Home(a.site(), toEntries(recent), quote)))
}

// handleCollectionPath serves "/:collection/" and "/:collection/<params>/".
func (a *App) handleCollectionPath(c echo.Context) error {
	col, ok := a.collectionConfig(c.Param("collection"))
	if !ok {
		return echo.ErrNotFound
	}
	params := strings.Trim(c.Param("*"), "/")
	if params == "" {
		return a.handleCollectionIndex(c, col)
	}
	return a.handleDocument(c, col, params)
}

func (a *App) handleCollectionIndex(c echo.Context, col CollectionConfig) error {
	coll, err := a.collection(c)
	if err != nil {
		return err
	}
	docs := coll.OfType(col.Name)
	tags := Tags(docs)
	tag := normalizeTag(c.QueryParam("tag"))
	if tag != "" {
		docs = FilterByTag(docs, tag)
	}

	groups := GroupByYear(docs)
	viewGroups := make([]views.Group, 0, len(groups))
	for _, g := range groups {
		viewGroups = append(viewGroups, views.Group{Year: g.Year, Entries: toEntries(g.Documents)})
	}

	title := views.TagLabel(col.Name)
	href := "/" + col.Name + "/"
	meta := views.Meta{
		Title:       title,
		Description: a.Config.Site.Description,
		URL:         BuildURL(a.Config.Site.URL, col.Name),
	}
	body := views.CollectionIndex(title, "", href, viewGroups, tags, tag)
	return Render(c, views.Layout(a.site(), meta, body))
}

func (a *App) handleDocument(c echo.Context, col CollectionConfig, params string) error {
	coll, err := a.collection(c)
	if err != nil {
		return err
	}
	doc, ok := coll.FindByParams(col.Name, params)
	if !ok {
		return echo.ErrNotFound
	}

	site := a.Config.Site
	meta := views.Meta{
		Title:       doc.Title,
		Description: doc.Description,
		URL:         DocumentURL(site.URL, doc),
		Image:       openGraphImage(site.URL, doc),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(doc, site),
	}
	body := views.DocumentPage(toEntry(doc), "/"+col.Name+"/", toEntries(coll.Related(doc, relatedLimit)))
	return Render(c, views.Layout(a.site(), meta, body))
}

func (a *App) handleFeed(c echo.Context) error {
	coll, err := a.collection(c)
	if err != nil {
		return err
	}
	return a.renderRSS(c, SortByPublishedDescending(coll.OfType(a.primaryCollection())))
}

func (a *App) handleSitemap(c echo.Context) error {
	coll, err := a.collection(c)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, coll.All())
}

// handleRobots serves robots.txt from the static folder when present and
// generates one pointing at the sitemap otherwise.
func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	body := "User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimSuffix(a.Config.Site.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

// apiDocument is the JSON shape of a document. Body is only included when
// requested with ?body=true.
type apiDocument struct {
	Document
	Body *Body `json:"body,omitempty"`
}

func (a *App) handleAPICollection(c echo.Context) error {
	col, ok := a.collectionConfig(c.Param("collection"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown collection")
	}
	coll, err := a.collection(c)
	if err != nil {
		return err
	}
	docs := coll.OfType(col.Name)
	if tag := c.QueryParam("tag"); tag != "" {
		docs = FilterByTag(docs, tag)
	}
	withBody, _ := strconv.ParseBool(c.QueryParam("body"))

	out := make([]apiDocument, 0, len(docs))
	for _, d := range SortByPublishedDescending(docs) {
		item := apiDocument{Document: d}
		if withBody {
			body := d.Body
			item.Body = &body
		}
		out = append(out, item)
	}
	return c.JSON(http.StatusOK, out)
}

func (a *App) handleQuote(c echo.Context) error {
	q, err := a.Quotes.Today(a.now())
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, q)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		meta := views.Meta{Title: "Not found"}
		_ = RenderStatus(c, http.StatusNotFound, views.Layout(a.site(), meta, views.NotFound()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		meta := views.Meta{Title: "Error"}
		_ = RenderStatus(c, code, views.Layout(a.site(), meta, views.ServerError()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func (a *App) site() views.Site {
	s := a.Config.Site
	nav := make([]views.NavLink, 0, len(a.Config.Collections))
	for _, col := range a.Config.Collections {
		nav = append(nav, views.NavLink{Label: views.TagLabel(col.Name), Href: "/" + col.Name + "/"})
	}
	return views.Site{
		Name:        s.Name,
		URL:         s.URL,
		Description: s.Description,
		Author:      s.Author,
		Language:    s.Language,
		StartYear:   a.Config.StartYear,
		Nav:         nav,
	}
}

func toEntry(d Document) views.Entry {
	e := views.Entry{
		Title:       d.Title,
		Description: d.Description,
		Href:        d.Slug + "/",
		Date:        FormatDate(d.PublishedOn),
		ShortDate:   FormatShortDate(d.PublishedOn),
		ISODate:     d.PublishedOn.Format("2006-01-02"),
		ReadingTime: d.ReadingTime,
		Tags:        d.Tags,
		Image:       AssetURL(d.Image),
		ImageBlur:   d.ImageBlur,
		HTML:        d.Body.HTML,
		TOC:         d.TOC,
	}
	if d.UpdatedOn != nil {
		e.Updated = FormatDate(*d.UpdatedOn)
	}
	return e
}

func toEntries(docs []Document) []views.Entry {
	out := make([]views.Entry, 0, len(docs))
	for _, d := range docs {
		out = append(out, toEntry(d))
	}
	return out
}
